package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// MinutesPerDay bounds StartMinute/EndMinute.
const MinutesPerDay = 24 * 60

// MeetingRecord is a single scheduled class meeting pattern.
type MeetingRecord struct {
	ID          string       `db:"id" json:"id"`
	TermID      string       `db:"term_id" json:"term_id"`
	CourseCode  string       `db:"course_code" json:"course_code"`
	Section     string       `db:"section" json:"section"`
	Days        Weekdays     `db:"days" json:"days"`
	StartMinute int          `db:"start_minute" json:"start_minute"`
	EndMinute   int          `db:"end_minute" json:"end_minute"`
	StartDate   time.Time    `db:"start_date" json:"start_date"`
	EndDate     time.Time    `db:"end_date" json:"end_date"`
	Room        string       `db:"room" json:"room"`
	Instructors []Instructor `db:"-" json:"instructors"`
}

// HasMeeting reports whether the record recurs on at least one weekday.
func (r *MeetingRecord) HasMeeting() bool {
	return r != nil && len(r.Days) > 0
}

// NormalizeCourseCode lower-cases and strips whitespace so "CS 121" matches "cs121".
func NormalizeCourseCode(code string) string {
	return strings.ToLower(strings.Join(strings.Fields(code), ""))
}

// Weekdays is the recurrence set of a meeting. Stored as a compact letter string.
type Weekdays []time.Weekday

var weekdayLetters = map[time.Weekday]byte{
	time.Monday:    'M',
	time.Tuesday:   'T',
	time.Wednesday: 'W',
	time.Thursday:  'R',
	time.Friday:    'F',
	time.Saturday:  'S',
	time.Sunday:    'U',
}

var letterWeekdays = func() map[byte]time.Weekday {
	out := make(map[byte]time.Weekday, len(weekdayLetters))
	for day, letter := range weekdayLetters {
		out[letter] = day
	}
	return out
}()

var weekdayNames = map[string]time.Weekday{
	"MONDAY":    time.Monday,
	"TUESDAY":   time.Tuesday,
	"WEDNESDAY": time.Wednesday,
	"THURSDAY":  time.Thursday,
	"FRIDAY":    time.Friday,
	"SATURDAY":  time.Saturday,
	"SUNDAY":    time.Sunday,
}

// ParseWeekdays accepts the letter form ("MWF", "M W F"), the "Th" digraph
// ("TTh") and full day names separated by commas or spaces.
func ParseWeekdays(raw string) (Weekdays, error) {
	var days Weekdays
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' }) {
		if day, ok := weekdayNames[strings.ToUpper(part)]; ok {
			days = append(days, day)
			continue
		}
		letters, err := parseDayLetters(part)
		if err != nil {
			return nil, err
		}
		days = append(days, letters...)
	}
	return days.Normalize(), nil
}

func parseDayLetters(part string) (Weekdays, error) {
	upper := strings.ToUpper(part)
	var days Weekdays
	for i := 0; i < len(upper); i++ {
		if upper[i] == 'T' && i+1 < len(upper) && upper[i+1] == 'H' {
			days = append(days, time.Thursday)
			i++
			continue
		}
		day, ok := letterWeekdays[upper[i]]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		days = append(days, day)
	}
	return days, nil
}

// Normalize returns a sorted copy without duplicates, Monday first.
func (w Weekdays) Normalize() Weekdays {
	if len(w) == 0 {
		return nil
	}
	seen := make(map[time.Weekday]struct{}, len(w))
	out := make(Weekdays, 0, len(w))
	for _, day := range w {
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool { return MondayOrdinal(out[i]) < MondayOrdinal(out[j]) })
	return out
}

// MondayOrdinal maps Monday..Sunday to 0..6.
func MondayOrdinal(day time.Weekday) int {
	return (int(day) + 6) % 7
}

// String renders the letter form.
func (w Weekdays) String() string {
	var b strings.Builder
	for _, day := range w.Normalize() {
		b.WriteByte(weekdayLetters[day])
	}
	return b.String()
}

// Value implements driver.Valuer.
func (w Weekdays) Value() (driver.Value, error) {
	return w.String(), nil
}

// Scan implements sql.Scanner.
func (w *Weekdays) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*w = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("weekdays: unsupported scan type %T", src)
	}
	days, err := ParseWeekdays(raw)
	if err != nil {
		return err
	}
	*w = days
	return nil
}

// MarshalJSON encodes the letter form.
func (w Weekdays) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

// UnmarshalJSON accepts the letter form or full day names.
func (w *Weekdays) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	days, err := ParseWeekdays(raw)
	if err != nil {
		return err
	}
	*w = days
	return nil
}
