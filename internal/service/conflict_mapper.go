package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/course-conflict-checker/internal/conflict"
	"github.com/noah-isme/course-conflict-checker/internal/dto"
	"github.com/noah-isme/course-conflict-checker/internal/models"
)

const dateLayout = "2006-01-02"

// recordsFromPayload converts submitted meetings into models. Records without
// an ID get a generated one.
func recordsFromPayload(payload []dto.MeetingRecordPayload, loc *time.Location) ([]models.MeetingRecord, error) {
	records := make([]models.MeetingRecord, 0, len(payload))
	for i, p := range payload {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			id = uuid.NewString()
		}
		days, err := models.ParseWeekdays(p.Days)
		if err != nil {
			return nil, fmt.Errorf("records[%d].days: %w", i, err)
		}
		record := models.MeetingRecord{
			ID:         id,
			CourseCode: models.NormalizeCourseCode(p.CourseCode),
			Section:    p.Section,
			Days:       days,
			Room:       strings.TrimSpace(p.Room),
		}
		if len(days) > 0 {
			if record.StartMinute, err = models.ParseClock(p.StartTime); err != nil {
				return nil, fmt.Errorf("records[%d].startTime: %w", i, err)
			}
			if record.EndMinute, err = models.ParseClock(p.EndTime); err != nil {
				return nil, fmt.Errorf("records[%d].endTime: %w", i, err)
			}
		}
		if p.StartDate != "" {
			if record.StartDate, err = time.ParseInLocation(dateLayout, p.StartDate, loc); err != nil {
				return nil, fmt.Errorf("records[%d].startDate: %w", i, err)
			}
		}
		if p.EndDate != "" {
			if record.EndDate, err = time.ParseInLocation(dateLayout, p.EndDate, loc); err != nil {
				return nil, fmt.Errorf("records[%d].endDate: %w", i, err)
			}
		}
		for _, inst := range p.Instructors {
			record.Instructors = append(record.Instructors, models.Instructor{
				LastName:  strings.TrimSpace(inst.LastName),
				FirstName: strings.TrimSpace(inst.FirstName),
			})
		}
		records = append(records, record)
	}
	return records, nil
}

func constraintsFromPayload(payload []dto.ConstraintGroupPayload) []models.ConstraintGroup {
	groups := make([]models.ConstraintGroup, 0, len(payload))
	for _, p := range payload {
		codes := make([]string, 0, len(p.Codes))
		for _, c := range p.Codes {
			codes = append(codes, models.NormalizeCourseCode(c))
		}
		groups = append(groups, models.ConstraintGroup{
			ID:       strings.TrimSpace(p.ID),
			Name:     p.Name,
			Codes:    codes,
			Priority: models.ConstraintPriority(p.Priority),
		})
	}
	return groups
}

// datedRecordIDs lists the records that carry both dates. A record with only
// one of them is rejected.
func datedRecordIDs(records []models.MeetingRecord) ([]string, error) {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		hasStart, hasEnd := !r.StartDate.IsZero(), !r.EndDate.IsZero()
		if hasStart != hasEnd {
			return nil, &conflict.ValidationError{Kind: "record", ID: r.ID, Field: "dates", Reason: "need both a start and an end"}
		}
		if hasStart {
			ids = append(ids, r.ID)
		}
	}
	return ids, nil
}

func buildReport(report *conflict.Report, constraints []models.ConstraintGroup, records int) dto.ConflictReport {
	out := dto.ConflictReport{
		CheckID:     uuid.NewString(),
		Instructors: []dto.GroupConflicts{},
		Rooms:       []dto.GroupConflicts{},
		Constraints: []dto.ConstraintConflicts{},
		Dates:       clusterViews(report.Dates),
		GeneratedAt: time.Now().UTC(),
	}

	for inst, set := range report.Instructors.Conflicting() {
		out.Instructors = append(out.Instructors, dto.GroupConflicts{Key: inst.String(), Clusters: clusterViews(set)})
	}
	for room, set := range report.Rooms.Conflicting() {
		out.Rooms = append(out.Rooms, dto.GroupConflicts{Key: room, Clusters: clusterViews(set)})
	}
	sortGroups(out.Instructors)
	sortGroups(out.Rooms)

	byID := make(map[string]models.ConstraintGroup, len(constraints))
	for _, g := range constraints {
		byID[g.ID] = g
	}
	for id, set := range report.Constraints.Conflicting() {
		out.Constraints = append(out.Constraints, constraintView(byID[id], id, set))
	}
	sort.Slice(out.Constraints, func(i, j int) bool { return out.Constraints[i].ID < out.Constraints[j].ID })

	out.Summary = dto.ConflictSummary{
		Records:                 records,
		InstructorGroupsChecked: report.Instructors.Len(),
		InstructorClusters:      report.Instructors.ClusterCount(),
		RoomGroupsChecked:       report.Rooms.Len(),
		RoomClusters:            report.Rooms.ClusterCount(),
		ConstraintGroupsChecked: report.Constraints.Len(),
		ConstraintClusters:      report.Constraints.ClusterCount(),
		DateClusters:            report.Dates.Len(),
	}
	return out
}

func constraintView(group models.ConstraintGroup, id string, set conflict.ClusterSet) dto.ConstraintConflicts {
	return dto.ConstraintConflicts{
		ID:       id,
		Name:     group.Name,
		Priority: string(group.Priority),
		Clusters: clusterViews(set),
	}
}

func sortGroups(groups []dto.GroupConflicts) {
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
}

func clusterViews(set conflict.ClusterSet) []dto.ClusterView {
	clusters := set.Clusters()
	views := make([]dto.ClusterView, 0, len(clusters))
	for _, c := range clusters {
		members := c.Members()
		meetings := make([]dto.MeetingView, 0, len(members))
		for i := range members {
			meetings = append(meetings, meetingView(&members[i]))
		}
		views = append(views, dto.ClusterView{RecordIDs: c.IDs(), Meetings: meetings})
	}
	return views
}

func meetingView(r *models.MeetingRecord) dto.MeetingView {
	view := dto.MeetingView{
		ID:         r.ID,
		CourseCode: r.CourseCode,
		Section:    r.Section,
		Room:       r.Room,
	}
	if r.HasMeeting() {
		view.Days = r.Days.String()
		view.StartTime = models.FormatClock(r.StartMinute)
		view.EndTime = models.FormatClock(r.EndMinute)
	}
	if !r.StartDate.IsZero() {
		view.StartDate = r.StartDate.Format(dateLayout)
	}
	if !r.EndDate.IsZero() {
		view.EndDate = r.EndDate.Format(dateLayout)
	}
	for _, inst := range r.Instructors {
		view.Instructors = append(view.Instructors, inst.String())
	}
	return view
}
