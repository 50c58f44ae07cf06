// Package conflict detects overlapping course meetings.
//
// Records are projected onto a one-dimensional timeline (weekly time or
// calendar dates), indexed per group, and every record's own intervals are used
// as queries. Each query that hits at least two distinct records becomes a
// cluster; clusters are de-duplicated by member set.
package conflict

import (
	"fmt"
	"time"

	"github.com/noah-isme/course-conflict-checker/internal/models"
)

// Dimension selects how a record is projected onto the timeline.
type Dimension int

const (
	// WeeklyTime encodes weekday and time of day as day*1440 + minute.
	WeeklyTime Dimension = iota
	// DateRange uses the record's first and last meeting dates as calendar days.
	DateRange
)

func (d Dimension) String() string {
	switch d {
	case WeeklyTime:
		return "weekly_time"
	case DateRange:
		return "date_range"
	default:
		return fmt.Sprintf("dimension(%d)", int(d))
	}
}

// Interval is a half-open [start, end) range. The zero value is empty and
// never produced by NewInterval.
type Interval struct {
	start int64
	end   int64
}

// NewInterval returns [start, end). Empty or inverted ranges are rejected.
func NewInterval(start, end int64) (Interval, error) {
	if start >= end {
		return Interval{}, fmt.Errorf("invalid interval [%d, %d): start must be before end", start, end)
	}
	return Interval{start: start, end: end}, nil
}

// Start returns the inclusive lower bound.
func (i Interval) Start() int64 { return i.start }

// End returns the exclusive upper bound.
func (i Interval) End() int64 { return i.end }

// Overlaps reports whether i and o share at least one point. Touching
// endpoints do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.start < o.end && o.start < i.end
}

func (i Interval) String() string {
	return fmt.Sprintf("[%d, %d)", i.start, i.end)
}

// Intervals projects a record onto the given dimension. A record without
// recurrence days has no weekly intervals.
func Intervals(r *models.MeetingRecord, dim Dimension) ([]Interval, error) {
	switch dim {
	case WeeklyTime:
		return weeklyIntervals(r)
	case DateRange:
		iv, err := NewInterval(epochDay(r.StartDate), epochDay(r.EndDate))
		if err != nil {
			return nil, fmt.Errorf("record %s date range: %w", r.ID, err)
		}
		return []Interval{iv}, nil
	default:
		return nil, fmt.Errorf("unsupported dimension %s", dim)
	}
}

func weeklyIntervals(r *models.MeetingRecord) ([]Interval, error) {
	days := r.Days.Normalize()
	if len(days) == 0 {
		return nil, nil
	}
	out := make([]Interval, 0, len(days))
	for _, day := range days {
		base := int64(models.MondayOrdinal(day)) * models.MinutesPerDay
		iv, err := NewInterval(base+int64(r.StartMinute), base+int64(r.EndMinute))
		if err != nil {
			return nil, fmt.Errorf("record %s on %s: %w", r.ID, day, err)
		}
		out = append(out, iv)
	}
	return out, nil
}

// epochDay maps the calendar date of t (in its own location) to days since
// 1970-01-01.
func epochDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}
