package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-conflict-checker/internal/conflict"
	"github.com/noah-isme/course-conflict-checker/internal/dto"
	"github.com/noah-isme/course-conflict-checker/internal/models"
	appErrors "github.com/noah-isme/course-conflict-checker/pkg/errors"
)

// MeetingRecordReader loads the stored meetings of a term.
type MeetingRecordReader interface {
	ListByTerm(ctx context.Context, termID string) ([]models.MeetingRecord, error)
}

// ConstraintGroupReader loads the stored constraint groups of a term.
type ConstraintGroupReader interface {
	ListByTerm(ctx context.Context, termID string) ([]models.ConstraintGroup, error)
}

// ConflictServiceConfig tunes the conflict service.
type ConflictServiceConfig struct {
	// MaxRecords caps submitted payloads. Zero disables the cap.
	MaxRecords         int
	ConstraintCacheTTL time.Duration
}

// ConflictService runs conflict checks over submitted payloads and stored terms.
type ConflictService struct {
	records     MeetingRecordReader
	constraints ConstraintGroupReader
	engine      *conflict.Engine
	cache       *CacheService
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
	cfg         ConflictServiceConfig
}

// NewConflictService constructs a ConflictService.
func NewConflictService(
	records MeetingRecordReader,
	constraints ConstraintGroupReader,
	engine *conflict.Engine,
	cache *CacheService,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg ConflictServiceConfig,
) *ConflictService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = conflict.NewEngine(logger, conflict.EngineConfig{})
	}
	return &ConflictService{
		records:     records,
		constraints: constraints,
		engine:      engine,
		cache:       cache,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
		cfg:         cfg,
	}
}

// Check runs every conflict check over a submitted schedule snapshot.
func (s *ConflictService) Check(ctx context.Context, req dto.CheckConflictsRequest) (*dto.ConflictReport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid conflict check payload")
	}
	if s.cfg.MaxRecords > 0 && len(req.Records) > s.cfg.MaxRecords {
		return nil, appErrors.Clone(appErrors.ErrPayloadTooLarge, fmt.Sprintf("at most %d meeting records per check", s.cfg.MaxRecords))
	}

	loc := time.UTC
	if req.TimeZone != "" {
		var err error
		if loc, err = time.LoadLocation(req.TimeZone); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unknown time zone")
		}
	}
	records, err := recordsFromPayload(req.Records, loc)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	constraints := constraintsFromPayload(req.Constraints)

	return s.run(ctx, SourcePayload, "", records, constraints, req.DateRecordIDs)
}

// CheckTerm runs every conflict check over the stored schedule of a term.
func (s *ConflictService) CheckTerm(ctx context.Context, termID string) (*dto.ConflictReport, error) {
	records, constraints, err := s.loadTerm(ctx, termID)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, SourceTerm, termID, records, constraints, nil)
}

// ConstraintConflicts checks a single stored constraint group. Ignored and
// unknown groups are reported as not found.
func (s *ConflictService) ConstraintConflicts(ctx context.Context, termID, constraintID string) (*dto.ConstraintConflicts, error) {
	records, constraints, err := s.loadTerm(ctx, termID)
	if err != nil {
		return nil, err
	}

	var target *models.ConstraintGroup
	for i := range constraints {
		if constraints[i].ID == constraintID {
			target = &constraints[i]
			break
		}
	}
	if target == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "constraint group not found")
	}

	result, err := s.engine.CheckConstraints(records, []models.ConstraintGroup{*target})
	if err != nil {
		return nil, s.mapEngineError(err)
	}
	set, err := result.Clusters(constraintID)
	if err != nil {
		if errors.Is(err, conflict.ErrGroupNotChecked) {
			return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "constraint group is ignored")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read constraint result")
	}
	view := constraintView(*target, constraintID, set)
	return &view, nil
}

// InvalidateConstraints drops the cached constraint groups of a term.
func (s *ConflictService) InvalidateConstraints(ctx context.Context, termID string) error {
	termID = strings.TrimSpace(termID)
	if termID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "term id is required")
	}
	if err := s.cache.Invalidate(ctx, constraintCacheKey(termID)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to invalidate constraint cache")
	}
	s.logger.Info("constraint cache invalidated", zap.String("term_id", termID))
	return nil
}

func (s *ConflictService) run(ctx context.Context, source, termID string, records []models.MeetingRecord, constraints []models.ConstraintGroup, dateIDs []string) (*dto.ConflictReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "request cancelled")
	}

	input := conflict.Input{Records: records, Constraints: constraints, DateRecordIDs: dateIDs}
	if len(dateIDs) == 0 {
		ids, err := datedRecordIDs(records)
		if err != nil {
			return nil, s.mapEngineError(err)
		}
		input.DateRecordIDs = ids
		input.SkipDates = len(input.DateRecordIDs) == 0
	}

	start := time.Now()
	report, err := s.engine.Run(input)
	stats := CheckStats{Source: source, Records: len(records)}
	if err != nil {
		s.metrics.ObserveCheck(stats, time.Since(start), err)
		return nil, s.mapEngineError(err)
	}

	out := buildReport(report, constraints, len(records))
	out.TermID = termID
	stats.InstructorClusters = out.Summary.InstructorClusters
	stats.RoomClusters = out.Summary.RoomClusters
	stats.ConstraintClusters = out.Summary.ConstraintClusters
	stats.DateClusters = out.Summary.DateClusters
	s.metrics.ObserveCheck(stats, time.Since(start), nil)

	s.logger.Info("conflict check finished",
		zap.String("check_id", out.CheckID),
		zap.String("source", source),
		zap.String("term_id", termID),
		zap.Int("records", len(records)),
		zap.Int("instructor_clusters", stats.InstructorClusters),
		zap.Int("room_clusters", stats.RoomClusters),
		zap.Int("constraint_clusters", stats.ConstraintClusters),
		zap.Int("date_clusters", stats.DateClusters),
	)
	return &out, nil
}

func (s *ConflictService) loadTerm(ctx context.Context, termID string) ([]models.MeetingRecord, []models.ConstraintGroup, error) {
	termID = strings.TrimSpace(termID)
	if termID == "" {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "term id is required")
	}
	if s.records == nil || s.constraints == nil {
		return nil, nil, appErrors.Clone(appErrors.ErrUnavailable, "schedule storage is not configured")
	}

	start := time.Now()
	records, err := s.records.ListByTerm(ctx, termID)
	s.metrics.ObserveDBQuery("meeting_records_by_term", time.Since(start))
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load meeting records")
	}

	constraints, err := s.loadConstraints(ctx, termID)
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 && len(constraints) == 0 {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "term not found")
	}
	return records, constraints, nil
}

func (s *ConflictService) loadConstraints(ctx context.Context, termID string) ([]models.ConstraintGroup, error) {
	key := constraintCacheKey(termID)
	var cached []models.ConstraintGroup
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	start := time.Now()
	groups, err := s.constraints.ListByTerm(ctx, termID)
	s.metrics.ObserveDBQuery("constraint_groups_by_term", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load constraint groups")
	}
	_ = s.cache.Set(ctx, key, groups, s.cfg.ConstraintCacheTTL)
	return groups, nil
}

func (s *ConflictService) mapEngineError(err error) error {
	var vErr *conflict.ValidationError
	if errors.As(err, &vErr) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, vErr.Error())
	}
	s.logger.Error("conflict engine failed", zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "conflict check failed")
}

func constraintCacheKey(termID string) string {
	return "constraints:" + termID
}
