package conflict

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/course-conflict-checker/internal/models"
)

// EngineConfig tunes group evaluation.
type EngineConfig struct {
	// Workers caps how many groups are resolved at once. Values below 2 run
	// groups sequentially.
	Workers int
}

// Engine runs the instructor, room, constraint and date checks. It holds no
// state between calls and is safe for concurrent use.
type Engine struct {
	workers int
	logger  *zap.Logger
}

// NewEngine constructs an Engine.
func NewEngine(logger *zap.Logger, cfg EngineConfig) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Engine{workers: cfg.Workers, logger: logger}
}

// Input is the snapshot handed to Run.
type Input struct {
	Records     []models.MeetingRecord
	Constraints []models.ConstraintGroup
	// DateRecordIDs narrows the date-range check. Empty means all records.
	DateRecordIDs []string
	// SkipDates leaves Report.Dates empty.
	SkipDates bool
}

// Report bundles the outcome of every check.
type Report struct {
	Instructors *Result[models.Instructor]
	Rooms       *Result[string]
	Constraints *Result[string]
	Dates       ClusterSet
}

// CheckInstructors finds overlapping meetings taught by the same instructor.
func (e *Engine) CheckInstructors(records []models.MeetingRecord, constraints []models.ConstraintGroup) (*Result[models.Instructor], error) {
	if err := validateInput(records, constraints, WeeklyTime); err != nil {
		return nil, err
	}
	groups := GroupByInstructor(pointers(records), IgnoredCodes(constraints))
	return resolveGroups(e, "instructor", groups, WeeklyTime)
}

// CheckRooms finds overlapping meetings booked into the same room.
func (e *Engine) CheckRooms(records []models.MeetingRecord, constraints []models.ConstraintGroup) (*Result[string], error) {
	if err := validateInput(records, constraints, WeeklyTime); err != nil {
		return nil, err
	}
	groups := GroupByRoom(pointers(records), IgnoredCodes(constraints))
	return resolveGroups(e, "room", groups, WeeklyTime)
}

// CheckConstraints finds overlapping meetings inside each non-ignored
// constraint group.
func (e *Engine) CheckConstraints(records []models.MeetingRecord, constraints []models.ConstraintGroup) (*Result[string], error) {
	if err := validateInput(records, constraints, WeeklyTime); err != nil {
		return nil, err
	}
	groups := GroupByConstraint(pointers(records), constraints)
	return resolveGroups(e, "constraint", groups, WeeklyTime)
}

// CheckDates finds records whose overall date spans overlap. The caller picks
// which records take part.
func (e *Engine) CheckDates(records []models.MeetingRecord) (ClusterSet, error) {
	if err := ValidateRecords(records, DateRange); err != nil {
		return ClusterSet{}, err
	}
	start := time.Now()
	set, err := Resolve(pointers(records), DateRange)
	if err != nil {
		return ClusterSet{}, err
	}
	e.logger.Debug("date check finished",
		zap.Int("records", len(records)),
		zap.Int("clusters", set.Len()),
		zap.Duration("took", time.Since(start)),
	)
	return set, nil
}

// Run validates the input once and performs all four checks.
func (e *Engine) Run(in Input) (*Report, error) {
	if err := validateInput(in.Records, in.Constraints, WeeklyTime); err != nil {
		return nil, err
	}
	dateRecords := in.Records
	if len(in.DateRecordIDs) > 0 {
		dateRecords = selectRecords(in.Records, in.DateRecordIDs)
		if len(dateRecords) != len(uniqueStrings(in.DateRecordIDs)) {
			return nil, &ValidationError{Kind: "date check", Field: "record ids", Reason: "reference unknown records"}
		}
	}

	instructors, err := e.CheckInstructors(in.Records, in.Constraints)
	if err != nil {
		return nil, err
	}
	rooms, err := e.CheckRooms(in.Records, in.Constraints)
	if err != nil {
		return nil, err
	}
	constraints, err := e.CheckConstraints(in.Records, in.Constraints)
	if err != nil {
		return nil, err
	}
	var dates ClusterSet
	if !in.SkipDates {
		if dates, err = e.CheckDates(dateRecords); err != nil {
			return nil, err
		}
	}
	return &Report{Instructors: instructors, Rooms: rooms, Constraints: constraints, Dates: dates}, nil
}

func resolveGroups[K comparable](e *Engine, kind string, groups map[K][]*models.MeetingRecord, dim Dimension) (*Result[K], error) {
	start := time.Now()
	result := newResult[K](len(groups))
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(e.workers)
	for key, members := range groups {
		key, members := key, members
		g.Go(func() error {
			set, err := Resolve(members, dim)
			if err != nil {
				return fmt.Errorf("%s group %v: %w", kind, key, err)
			}
			mu.Lock()
			result.groups[key] = set
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	e.logger.Debug("group check finished",
		zap.String("kind", kind),
		zap.Int("groups", result.Len()),
		zap.Int("clusters", result.ClusterCount()),
		zap.Duration("took", time.Since(start)),
	)
	return result, nil
}

func validateInput(records []models.MeetingRecord, constraints []models.ConstraintGroup, dims ...Dimension) error {
	if err := ValidateRecords(records, dims...); err != nil {
		return err
	}
	return ValidateConstraints(constraints)
}

func pointers(records []models.MeetingRecord) []*models.MeetingRecord {
	out := make([]*models.MeetingRecord, len(records))
	for i := range records {
		out[i] = &records[i]
	}
	return out
}

func selectRecords(records []models.MeetingRecord, ids []string) []models.MeetingRecord {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	out := make([]models.MeetingRecord, 0, len(ids))
	for _, r := range records {
		if _, ok := wanted[r.ID]; ok {
			out = append(out, r)
		}
	}
	return out
}

func uniqueStrings(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, s := range in {
		out[s] = struct{}{}
	}
	return out
}
