package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/course-conflict-checker/internal/models"
)

const meetingColumns = "id, term_id, course_code, section, days, start_minute, end_minute, start_date, end_date, room"

// MeetingRecordRepository reads scheduled meetings and their instructors.
type MeetingRecordRepository struct {
	db *sqlx.DB
}

// NewMeetingRecordRepository constructs a MeetingRecordRepository.
func NewMeetingRecordRepository(db *sqlx.DB) *MeetingRecordRepository {
	return &MeetingRecordRepository{db: db}
}

type meetingRow struct {
	ID          string          `db:"id"`
	TermID      string          `db:"term_id"`
	CourseCode  string          `db:"course_code"`
	Section     string          `db:"section"`
	Days        models.Weekdays `db:"days"`
	StartMinute int             `db:"start_minute"`
	EndMinute   int             `db:"end_minute"`
	StartDate   sql.NullTime    `db:"start_date"`
	EndDate     sql.NullTime    `db:"end_date"`
	Room        string          `db:"room"`
}

type instructorRow struct {
	MeetingID string `db:"meeting_id"`
	LastName  string `db:"last_name"`
	FirstName string `db:"first_name"`
}

// ListByTerm returns every meeting of the term with instructors attached, in
// ID order.
func (r *MeetingRecordRepository) ListByTerm(ctx context.Context, termID string) ([]models.MeetingRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM meeting_records WHERE term_id = $1 ORDER BY id", meetingColumns)
	var rows []meetingRow
	if err := r.db.SelectContext(ctx, &rows, query, termID); err != nil {
		return nil, fmt.Errorf("list meeting records: %w", err)
	}
	if len(rows) == 0 {
		return []models.MeetingRecord{}, nil
	}

	records := make([]models.MeetingRecord, len(rows))
	ids := make([]string, len(rows))
	position := make(map[string]int, len(rows))
	for i, row := range rows {
		records[i] = row.toModel()
		ids[i] = row.ID
		position[row.ID] = i
	}

	var instructors []instructorRow
	if err := r.db.SelectContext(ctx, &instructors,
		"SELECT meeting_id, last_name, first_name FROM meeting_instructors WHERE meeting_id = ANY($1) ORDER BY meeting_id, position",
		pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("list meeting instructors: %w", err)
	}
	for _, inst := range instructors {
		i, ok := position[inst.MeetingID]
		if !ok {
			continue
		}
		records[i].Instructors = append(records[i].Instructors, models.Instructor{LastName: inst.LastName, FirstName: inst.FirstName})
	}

	return records, nil
}

func (row meetingRow) toModel() models.MeetingRecord {
	record := models.MeetingRecord{
		ID:          row.ID,
		TermID:      row.TermID,
		CourseCode:  models.NormalizeCourseCode(row.CourseCode),
		Section:     row.Section,
		Days:        row.Days,
		StartMinute: row.StartMinute,
		EndMinute:   row.EndMinute,
		Room:        row.Room,
	}
	if row.StartDate.Valid {
		record.StartDate = row.StartDate.Time
	}
	if row.EndDate.Valid {
		record.EndDate = row.EndDate.Time
	}
	return record
}
