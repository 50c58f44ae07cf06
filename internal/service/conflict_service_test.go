package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/course-conflict-checker/internal/conflict"
	"github.com/noah-isme/course-conflict-checker/internal/dto"
	"github.com/noah-isme/course-conflict-checker/internal/models"
	appErrors "github.com/noah-isme/course-conflict-checker/pkg/errors"
)

type recordRepoStub struct {
	records map[string][]models.MeetingRecord
	err     error
	calls   int
}

func (s *recordRepoStub) ListByTerm(ctx context.Context, termID string) ([]models.MeetingRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.records[termID], nil
}

type constraintRepoStub struct {
	groups map[string][]models.ConstraintGroup
	calls  int
}

func (s *constraintRepoStub) ListByTerm(ctx context.Context, termID string) ([]models.ConstraintGroup, error) {
	s.calls++
	return s.groups[termID], nil
}

type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = raw
	return nil
}

func (m *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.items {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.items, key)
		}
	}
	return nil
}

func clock(t *testing.T, raw string) int {
	t.Helper()
	m, err := models.ParseClock(raw)
	require.NoError(t, err)
	return m
}

func termFixture(t *testing.T) (*recordRepoStub, *constraintRepoStub) {
	mon := models.Weekdays{time.Monday}
	inst := []models.Instructor{{LastName: "Kuenning", FirstName: "Geoff"}}
	records := []models.MeetingRecord{
		{ID: "R1", CourseCode: "cs121", Days: mon, StartMinute: clock(t, "13:00"), EndMinute: clock(t, "13:45"), Room: "A", Instructors: inst},
		{ID: "R2", CourseCode: "cs121", Days: mon, StartMinute: clock(t, "14:00"), EndMinute: clock(t, "14:45"), Room: "A"},
		{ID: "R3", CourseCode: "cs121", Days: mon, StartMinute: clock(t, "15:00"), EndMinute: clock(t, "15:45"), Room: "A", Instructors: inst},
		{ID: "R4", CourseCode: "cs221", Days: mon, StartMinute: clock(t, "15:00"), EndMinute: clock(t, "15:45"), Room: "A", Instructors: inst},
		{ID: "L1", CourseCode: "cs121l", Days: mon, StartMinute: clock(t, "15:00"), EndMinute: clock(t, "15:45"), Room: "A"},
	}
	groups := []models.ConstraintGroup{
		{ID: "core", TermID: "sp19", Name: "Core", Codes: []string{"cs121", "cs221"}, Priority: models.ConstraintPriorityActive},
		{ID: "labs", TermID: "sp19", Name: "Labs", Codes: []string{"cs121l"}, Priority: models.ConstraintPriorityIgnored},
	}
	return &recordRepoStub{records: map[string][]models.MeetingRecord{"sp19": records}},
		&constraintRepoStub{groups: map[string][]models.ConstraintGroup{"sp19": groups}}
}

func newConflictServiceForTest(records MeetingRecordReader, constraints ConstraintGroupReader, cache *CacheService, cfg ConflictServiceConfig) *ConflictService {
	engine := conflict.NewEngine(zap.NewNop(), conflict.EngineConfig{Workers: 2})
	return NewConflictService(records, constraints, engine, cache, NewMetricsService(), validator.New(), zap.NewNop(), cfg)
}

func TestConflictServiceCheckTerm(t *testing.T) {
	records, constraints := termFixture(t)
	svc := newConflictServiceForTest(records, constraints, nil, ConflictServiceConfig{})

	report, err := svc.CheckTerm(context.Background(), "sp19")
	require.NoError(t, err)

	assert.Equal(t, "sp19", report.TermID)
	assert.NotEmpty(t, report.CheckID)
	require.Len(t, report.Constraints, 1)
	assert.Equal(t, "core", report.Constraints[0].ID)
	assert.Equal(t, "PRIORITY", report.Constraints[0].Priority)
	require.Len(t, report.Constraints[0].Clusters, 1)
	assert.Equal(t, []string{"R3", "R4"}, report.Constraints[0].Clusters[0].RecordIDs)
	assert.Equal(t, "15:00", report.Constraints[0].Clusters[0].Meetings[0].StartTime)

	require.Len(t, report.Rooms, 1)
	assert.Equal(t, "A", report.Rooms[0].Key)
	assert.Equal(t, []string{"R3", "R4"}, report.Rooms[0].Clusters[0].RecordIDs, "ignored lab is excluded from rooms")

	require.Len(t, report.Instructors, 1)
	assert.Equal(t, "Kuenning, Geoff", report.Instructors[0].Key)

	assert.Empty(t, report.Dates)
	assert.Equal(t, 5, report.Summary.Records)
	assert.Equal(t, 1, report.Summary.ConstraintGroupsChecked)
}

func TestConflictServiceCheckTermErrors(t *testing.T) {
	records, constraints := termFixture(t)
	svc := newConflictServiceForTest(records, constraints, nil, ConflictServiceConfig{})

	_, err := svc.CheckTerm(context.Background(), "fa30")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.CheckTerm(context.Background(), " ")
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	records.err = errors.New("connection reset")
	_, err = svc.CheckTerm(context.Background(), "sp19")
	assert.Equal(t, http.StatusInternalServerError, appErrors.FromError(err).Status)

	unconfigured := NewConflictService(nil, nil, nil, nil, nil, nil, nil, ConflictServiceConfig{})
	_, err = unconfigured.CheckTerm(context.Background(), "sp19")
	assert.ErrorIs(t, err, appErrors.ErrUnavailable)
}

func TestConflictServiceConstraintConflicts(t *testing.T) {
	records, constraints := termFixture(t)
	svc := newConflictServiceForTest(records, constraints, nil, ConflictServiceConfig{})
	ctx := context.Background()

	got, err := svc.ConstraintConflicts(ctx, "sp19", "core")
	require.NoError(t, err)
	assert.Equal(t, "Core", got.Name)
	require.Len(t, got.Clusters, 1)
	assert.Equal(t, []string{"R3", "R4"}, got.Clusters[0].RecordIDs)

	_, err = svc.ConstraintConflicts(ctx, "sp19", "labs")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.ErrorIs(t, err, conflict.ErrGroupNotChecked)

	_, err = svc.ConstraintConflicts(ctx, "sp19", "missing")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestConflictServiceCachesConstraints(t *testing.T) {
	records, constraints := termFixture(t)
	backend := newMemoryCache()
	cache := NewCacheService(backend, nil, "conflicts", time.Minute, nil, true)
	svc := newConflictServiceForTest(records, constraints, cache, ConflictServiceConfig{})
	ctx := context.Background()

	_, err := svc.CheckTerm(ctx, "sp19")
	require.NoError(t, err)
	_, err = svc.CheckTerm(ctx, "sp19")
	require.NoError(t, err)
	assert.Equal(t, 1, constraints.calls)
	assert.Contains(t, backend.items, "conflicts:constraints:sp19")

	require.NoError(t, svc.InvalidateConstraints(ctx, "sp19"))
	assert.Empty(t, backend.items)

	_, err = svc.CheckTerm(ctx, "sp19")
	require.NoError(t, err)
	assert.Equal(t, 2, constraints.calls)
	assert.Equal(t, 3, records.calls)

	assert.ErrorIs(t, svc.InvalidateConstraints(ctx, ""), appErrors.ErrValidation)
}

func TestConflictServiceCheckPayload(t *testing.T) {
	svc := newConflictServiceForTest(nil, nil, nil, ConflictServiceConfig{MaxRecords: 10})

	req := dto.CheckConflictsRequest{
		Records: []dto.MeetingRecordPayload{
			{ID: "a", CourseCode: "CS 121", Days: "MW", StartTime: "09:00", EndTime: "10:15", Room: "Shan 2460", StartDate: "2019-01-22", EndDate: "2019-05-10"},
			{ID: "b", CourseCode: "cs70", Days: "W", StartTime: "10:00", EndTime: "11:00", Room: "Shan 2460", StartDate: "2019-01-22", EndDate: "2019-03-08"},
			{CourseCode: "math189", Days: "TR", StartTime: "09:00", EndTime: "10:00"},
		},
		Constraints: []dto.ConstraintGroupPayload{
			{ID: "cs", Codes: []string{"cs121", "CS 70"}, Priority: "NON_PRIORITY"},
		},
		TimeZone: "America/Los_Angeles",
	}

	report, err := svc.Check(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, report.Rooms, 1)
	assert.Equal(t, []string{"a", "b"}, report.Rooms[0].Clusters[0].RecordIDs)
	require.Len(t, report.Constraints, 1)
	assert.Equal(t, "NON_PRIORITY", report.Constraints[0].Priority)
	require.Len(t, report.Dates, 1)
	assert.Equal(t, []string{"a", "b"}, report.Dates[0].RecordIDs)
	assert.Equal(t, "2019-01-22", report.Dates[0].Meetings[0].StartDate)
	assert.Equal(t, 3, report.Summary.Records)
}

func TestConflictServiceCheckPayloadRejects(t *testing.T) {
	svc := newConflictServiceForTest(nil, nil, nil, ConflictServiceConfig{MaxRecords: 2})
	ctx := context.Background()
	valid := dto.MeetingRecordPayload{CourseCode: "cs121", Days: "M", StartTime: "09:00", EndTime: "10:00"}

	cases := []struct {
		name string
		req  dto.CheckConflictsRequest
		want *appErrors.Error
	}{
		{name: "no records", req: dto.CheckConflictsRequest{}, want: appErrors.ErrValidation},
		{name: "too many", req: dto.CheckConflictsRequest{Records: []dto.MeetingRecordPayload{valid, valid, valid}}, want: appErrors.ErrPayloadTooLarge},
		{name: "bad priority", req: dto.CheckConflictsRequest{
			Records:     []dto.MeetingRecordPayload{valid},
			Constraints: []dto.ConstraintGroupPayload{{ID: "g", Codes: []string{"cs121"}, Priority: "URGENT"}},
		}, want: appErrors.ErrValidation},
		{name: "missing time", req: dto.CheckConflictsRequest{
			Records: []dto.MeetingRecordPayload{{CourseCode: "cs121", Days: "M"}},
		}, want: appErrors.ErrValidation},
		{name: "bad day", req: dto.CheckConflictsRequest{
			Records: []dto.MeetingRecordPayload{{CourseCode: "cs121", Days: "MX", StartTime: "09:00", EndTime: "10:00"}},
		}, want: appErrors.ErrValidation},
		{name: "end before start", req: dto.CheckConflictsRequest{
			Records: []dto.MeetingRecordPayload{{CourseCode: "cs121", Days: "M", StartTime: "11:00", EndTime: "10:00"}},
		}, want: appErrors.ErrValidation},
		{name: "duplicate ids", req: dto.CheckConflictsRequest{
			Records: []dto.MeetingRecordPayload{{ID: "x", CourseCode: "cs121"}, {ID: "x", CourseCode: "cs221"}},
		}, want: appErrors.ErrValidation},
		{name: "unknown date record", req: dto.CheckConflictsRequest{
			Records:       []dto.MeetingRecordPayload{valid},
			DateRecordIDs: []string{"nope"},
		}, want: appErrors.ErrValidation},
		{name: "one date only", req: dto.CheckConflictsRequest{
			Records: []dto.MeetingRecordPayload{valid, {ID: "half", CourseCode: "cs70", StartDate: "2019-01-22"}},
		}, want: appErrors.ErrValidation},
		{name: "bad zone", req: dto.CheckConflictsRequest{
			Records:  []dto.MeetingRecordPayload{valid},
			TimeZone: "Mars/Olympus",
		}, want: appErrors.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Check(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestConflictServiceCancelledContext(t *testing.T) {
	records, constraints := termFixture(t)
	svc := newConflictServiceForTest(records, constraints, nil, ConflictServiceConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Check(ctx, dto.CheckConflictsRequest{Records: []dto.MeetingRecordPayload{{CourseCode: "cs121"}}})
	assert.ErrorIs(t, err, appErrors.ErrUnavailable)
}
