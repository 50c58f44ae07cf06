package conflict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-conflict-checker/internal/models"
)

type recordOption func(*models.MeetingRecord)

func withCode(code string) recordOption {
	return func(r *models.MeetingRecord) { r.CourseCode = code }
}

func withRoom(room string) recordOption {
	return func(r *models.MeetingRecord) { r.Room = room }
}

func withInstructors(names ...models.Instructor) recordOption {
	return func(r *models.MeetingRecord) { r.Instructors = names }
}

func withDays(days ...time.Weekday) recordOption {
	return func(r *models.MeetingRecord) { r.Days = days }
}

func withDates(startDay, endDay int) recordOption {
	base := time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)
	return func(r *models.MeetingRecord) {
		r.StartDate = base.AddDate(0, 0, startDay)
		r.EndDate = base.AddDate(0, 0, endDay)
	}
}

// meeting builds a Monday record between two "HH:MM" clock times.
func meeting(t *testing.T, id, start, end string, opts ...recordOption) models.MeetingRecord {
	t.Helper()
	startMinute, err := models.ParseClock(start)
	require.NoError(t, err)
	endMinute, err := models.ParseClock(end)
	require.NoError(t, err)
	r := models.MeetingRecord{
		ID:          id,
		CourseCode:  "cs121",
		Section:     "1",
		Days:        models.Weekdays{time.Monday},
		StartMinute: startMinute,
		EndMinute:   endMinute,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func dateOnly(id string, startDay, endDay int) models.MeetingRecord {
	r := models.MeetingRecord{ID: id, CourseCode: "cs121"}
	withDates(startDay, endDay)(&r)
	return r
}

func constraint(id string, priority models.ConstraintPriority, codes ...string) models.ConstraintGroup {
	return models.ConstraintGroup{ID: id, Name: id, Codes: codes, Priority: priority}
}

func resolveValues(t *testing.T, records []models.MeetingRecord, dim Dimension) ClusterSet {
	t.Helper()
	set, err := Resolve(pointers(records), dim)
	require.NoError(t, err)
	return set
}

func clusterIDs(set ClusterSet) [][]string {
	var out [][]string
	for _, c := range set.Clusters() {
		out = append(out, c.IDs())
	}
	return out
}
