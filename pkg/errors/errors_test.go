package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	err := Clone(ErrNotFound, "term not found")
	got := FromError(err)
	assert.Same(t, err, got)
	assert.Equal(t, http.StatusNotFound, got.Status)
}

func TestFromErrorWrapsPlainErrors(t *testing.T) {
	cause := errors.New("boom")
	got := FromError(cause)
	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.ErrorIs(t, got, cause)
}

func TestIsMatchesByCode(t *testing.T) {
	err := Wrap(errors.New("bad input"), ErrValidation.Code, ErrValidation.Status, "invalid payload")
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, Clone(ErrCacheMiss, ""), ErrCacheMiss)
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	clone := Clone(ErrForbidden, "scheduler role required")
	assert.Equal(t, "forbidden", ErrForbidden.Message)
	assert.Equal(t, "scheduler role required", clone.Message)
	assert.Nil(t, Clone(nil, "x"))
}
