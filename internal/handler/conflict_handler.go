package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-conflict-checker/internal/dto"
	"github.com/noah-isme/course-conflict-checker/internal/middleware"
	appErrors "github.com/noah-isme/course-conflict-checker/pkg/errors"
	"github.com/noah-isme/course-conflict-checker/pkg/response"
)

type conflictChecker interface {
	Check(ctx context.Context, req dto.CheckConflictsRequest) (*dto.ConflictReport, error)
	CheckTerm(ctx context.Context, termID string) (*dto.ConflictReport, error)
	ConstraintConflicts(ctx context.Context, termID, constraintID string) (*dto.ConstraintConflicts, error)
	InvalidateConstraints(ctx context.Context, termID string) error
}

// ConflictHandler exposes the conflict check endpoints.
type ConflictHandler struct {
	service conflictChecker
}

// NewConflictHandler constructs the handler.
func NewConflictHandler(svc conflictChecker) *ConflictHandler {
	return &ConflictHandler{service: svc}
}

// Check godoc
// @Summary Check a schedule snapshot for conflicts
// @Description Runs the instructor, room, constraint group and date range checks over the submitted meetings.
// @Tags Conflicts
// @Accept json
// @Produce json
// @Param payload body dto.CheckConflictsRequest true "Schedule snapshot"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Router /conflicts/check [post]
func (h *ConflictHandler) Check(c *gin.Context) {
	var req dto.CheckConflictsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid conflict check payload"))
		return
	}

	report, err := h.service.Check(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, middleware.ResponseMeta(c))
}

// CheckTerm godoc
// @Summary Check a stored term for conflicts
// @Tags Conflicts
// @Produce json
// @Param termId path string true "Term ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /terms/{termId}/conflicts [get]
func (h *ConflictHandler) CheckTerm(c *gin.Context) {
	report, err := h.service.CheckTerm(c.Request.Context(), c.Param("termId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, middleware.ResponseMeta(c))
}

// ConstraintConflicts godoc
// @Summary Check one constraint group of a stored term
// @Description Ignored and unknown groups respond with 404.
// @Tags Conflicts
// @Produce json
// @Param termId path string true "Term ID"
// @Param constraintId path string true "Constraint group ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /terms/{termId}/conflicts/constraints/{constraintId} [get]
func (h *ConflictHandler) ConstraintConflicts(c *gin.Context) {
	result, err := h.service.ConstraintConflicts(c.Request.Context(), c.Param("termId"), c.Param("constraintId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, middleware.ResponseMeta(c))
}

// InvalidateConstraints godoc
// @Summary Drop cached constraint groups of a term
// @Tags Conflicts
// @Param termId path string true "Term ID"
// @Success 204
// @Failure 503 {object} response.Envelope
// @Router /terms/{termId}/constraints/cache [delete]
func (h *ConflictHandler) InvalidateConstraints(c *gin.Context) {
	if err := h.service.InvalidateConstraints(c.Request.Context(), c.Param("termId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
