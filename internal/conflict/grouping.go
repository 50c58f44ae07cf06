package conflict

import (
	"strings"

	"github.com/noah-isme/course-conflict-checker/internal/models"
)

// IgnoredCodes collects the course codes governed by ignored constraint
// groups. Records with these codes take no part in instructor or room checks.
func IgnoredCodes(groups []models.ConstraintGroup) map[string]struct{} {
	codes := make(map[string]struct{})
	for _, g := range groups {
		if !g.Ignored() {
			continue
		}
		for _, c := range g.Codes {
			if code := models.NormalizeCourseCode(c); code != "" {
				codes[code] = struct{}{}
			}
		}
	}
	return codes
}

func excluded(r *models.MeetingRecord, ignored map[string]struct{}) bool {
	_, ok := ignored[models.NormalizeCourseCode(r.CourseCode)]
	return ok
}

// GroupByInstructor partitions records per instructor. A record with several
// instructors joins each of their groups once. STAFF is dropped.
func GroupByInstructor(records []*models.MeetingRecord, ignored map[string]struct{}) map[models.Instructor][]*models.MeetingRecord {
	groups := make(map[models.Instructor][]*models.MeetingRecord)
	for _, r := range records {
		if excluded(r, ignored) {
			continue
		}
		joined := make(map[models.Instructor]struct{}, len(r.Instructors))
		for _, inst := range r.Instructors {
			if inst.IsStaff() {
				continue
			}
			if _, ok := joined[inst]; ok {
				continue
			}
			joined[inst] = struct{}{}
			groups[inst] = append(groups[inst], r)
		}
	}
	return groups
}

// GroupByRoom partitions records per room. Blank rooms are dropped.
func GroupByRoom(records []*models.MeetingRecord, ignored map[string]struct{}) map[string][]*models.MeetingRecord {
	groups := make(map[string][]*models.MeetingRecord)
	for _, r := range records {
		if excluded(r, ignored) {
			continue
		}
		room := strings.TrimSpace(r.Room)
		if room == "" {
			continue
		}
		groups[room] = append(groups[room], r)
	}
	return groups
}

// GroupByConstraint partitions records per non-ignored constraint group ID.
// Every non-ignored group gets an entry, even when no record matches it.
func GroupByConstraint(records []*models.MeetingRecord, groups []models.ConstraintGroup) map[string][]*models.MeetingRecord {
	out := make(map[string][]*models.MeetingRecord)
	for _, g := range groups {
		if g.Ignored() {
			continue
		}
		members := make([]*models.MeetingRecord, 0)
		for _, r := range records {
			if g.Governs(r.CourseCode) {
				members = append(members, r)
			}
		}
		out[g.ID] = members
	}
	return out
}
