package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-conflict-checker/internal/models"
	appErrors "github.com/noah-isme/course-conflict-checker/pkg/errors"
)

func TestTokenServiceRoundTrip(t *testing.T) {
	svc := NewTokenService("secret", "registrar")
	token, err := svc.Issue("u-1", models.RoleScheduler, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, models.RoleScheduler, claims.Role)
}

func TestTokenServiceRejects(t *testing.T) {
	svc := NewTokenService("secret", "registrar")

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewTokenService("other", "registrar").Issue("u-1", models.RoleAdmin, time.Hour)
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := NewTokenService("secret", "elsewhere").Issue("u-1", models.RoleAdmin, time.Hour)
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	})

	t.Run("expired", func(t *testing.T) {
		past := NewTokenService("secret", "registrar")
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := past.Issue("u-1", models.RoleAdmin, time.Hour)
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		require.Error(t, err)
		assert.Equal(t, "token expired", appErrors.FromError(err).Message)
	})

	t.Run("other algorithm", func(t *testing.T) {
		claims := &models.JWTClaims{UserID: "u-1", Role: models.RoleAdmin}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	})

	t.Run("missing role", func(t *testing.T) {
		token, err := svc.Issue("u-1", "", time.Hour)
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	})
}
