package conflict

import (
	"strings"
	"time"

	"github.com/noah-isme/course-conflict-checker/internal/models"
)

// ValidateRecords rejects records that cannot be projected onto the requested
// dimensions. Date ranges are only checked when DateRange is requested.
func ValidateRecords(records []models.MeetingRecord, dims ...Dimension) error {
	checkDates := false
	for _, d := range dims {
		if d == DateRange {
			checkDates = true
		}
	}

	seen := make(map[string]struct{}, len(records))
	for i := range records {
		r := &records[i]
		if strings.TrimSpace(r.ID) == "" {
			return &ValidationError{Kind: "record", Field: "id", Reason: "is required"}
		}
		if _, dup := seen[r.ID]; dup {
			return &ValidationError{Kind: "record", ID: r.ID, Field: "id", Reason: "is duplicated"}
		}
		seen[r.ID] = struct{}{}

		if r.HasMeeting() {
			for _, day := range r.Days {
				if day < time.Sunday || day > time.Saturday {
					return &ValidationError{Kind: "record", ID: r.ID, Field: "days", Reason: "contain an unknown weekday"}
				}
			}
			if r.StartMinute < 0 || r.EndMinute > models.MinutesPerDay {
				return &ValidationError{Kind: "record", ID: r.ID, Field: "time", Reason: "is outside the day"}
			}
			if r.StartMinute >= r.EndMinute {
				return &ValidationError{Kind: "record", ID: r.ID, Field: "time", Reason: "start must be before end"}
			}
		}
		if checkDates {
			if r.StartDate.IsZero() || r.EndDate.IsZero() {
				return &ValidationError{Kind: "record", ID: r.ID, Field: "dates", Reason: "are required"}
			}
			if epochDay(r.StartDate) >= epochDay(r.EndDate) {
				return &ValidationError{Kind: "record", ID: r.ID, Field: "dates", Reason: "start must be before end"}
			}
		}
	}
	return nil
}

// ValidateConstraints rejects groups with no identity, no codes or an unknown
// priority tag.
func ValidateConstraints(groups []models.ConstraintGroup) error {
	seen := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		if strings.TrimSpace(g.ID) == "" {
			return &ValidationError{Kind: "constraint", Field: "id", Reason: "is required"}
		}
		if _, dup := seen[g.ID]; dup {
			return &ValidationError{Kind: "constraint", ID: g.ID, Field: "id", Reason: "is duplicated"}
		}
		seen[g.ID] = struct{}{}
		if !g.Priority.Valid() {
			return &ValidationError{Kind: "constraint", ID: g.ID, Field: "priority", Reason: "is unknown"}
		}
		codes := 0
		for _, c := range g.Codes {
			if models.NormalizeCourseCode(c) != "" {
				codes++
			}
		}
		if codes == 0 {
			return &ValidationError{Kind: "constraint", ID: g.ID, Field: "codes", Reason: "must not be empty"}
		}
	}
	return nil
}
