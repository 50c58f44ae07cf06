package models

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// ConstraintPriority tags how a constraint group is treated.
type ConstraintPriority string

const (
	// ConstraintPriorityActive is checked and reported as a primary conflict.
	ConstraintPriorityActive ConstraintPriority = "PRIORITY"
	// ConstraintPrioritySecondary is checked identically; only reporting differs.
	ConstraintPrioritySecondary ConstraintPriority = "NON_PRIORITY"
	// ConstraintPriorityIgnored is skipped and also removes its courses from
	// instructor and room checks.
	ConstraintPriorityIgnored ConstraintPriority = "IGNORE"
)

// ParseConstraintPriority accepts the stored tags case-insensitively.
func ParseConstraintPriority(raw string) (ConstraintPriority, error) {
	switch p := ConstraintPriority(strings.ToUpper(strings.TrimSpace(raw))); p {
	case ConstraintPriorityActive, ConstraintPrioritySecondary, ConstraintPriorityIgnored:
		return p, nil
	}
	return "", fmt.Errorf("unknown constraint priority %q", raw)
}

// Valid reports whether p is one of the three known tags.
func (p ConstraintPriority) Valid() bool {
	_, err := ParseConstraintPriority(string(p))
	return err == nil
}

// ConstraintGroup is a user-defined set of courses that must not overlap.
type ConstraintGroup struct {
	ID       string             `db:"id" json:"id"`
	TermID   string             `db:"term_id" json:"term_id"`
	Name     string             `db:"name" json:"name"`
	Codes    pq.StringArray     `db:"codes" json:"codes"`
	Priority ConstraintPriority `db:"priority" json:"priority"`
}

// Ignored reports whether the group is excluded from checking.
func (g ConstraintGroup) Ignored() bool {
	return g.Priority == ConstraintPriorityIgnored
}

// Governs reports whether the course code belongs to the group.
func (g ConstraintGroup) Governs(code string) bool {
	code = NormalizeCourseCode(code)
	if code == "" {
		return false
	}
	for _, c := range g.Codes {
		if NormalizeCourseCode(c) == code {
			return true
		}
	}
	return false
}
