package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-conflict-checker/internal/models"
)

// ConstraintGroupRepository reads the constraint groups defined for a term.
type ConstraintGroupRepository struct {
	db *sqlx.DB
}

// NewConstraintGroupRepository constructs a ConstraintGroupRepository.
func NewConstraintGroupRepository(db *sqlx.DB) *ConstraintGroupRepository {
	return &ConstraintGroupRepository{db: db}
}

// ListByTerm returns the term's constraint groups ordered by ID.
func (r *ConstraintGroupRepository) ListByTerm(ctx context.Context, termID string) ([]models.ConstraintGroup, error) {
	var groups []models.ConstraintGroup
	if err := r.db.SelectContext(ctx, &groups,
		"SELECT id, term_id, name, codes, priority FROM constraint_groups WHERE term_id = $1 ORDER BY id", termID); err != nil {
		return nil, fmt.Errorf("list constraint groups: %w", err)
	}
	if groups == nil {
		groups = []models.ConstraintGroup{}
	}
	return groups, nil
}
