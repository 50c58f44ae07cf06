package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 4, cfg.Checker.Workers)
	assert.Equal(t, 5000, cfg.Checker.MaxRecords)
	assert.True(t, cfg.Checker.ConstraintCacheEnabled)
	assert.Equal(t, 15*time.Minute, cfg.Checker.ConstraintCacheTTL)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CHECKER_WORKERS", "0")
	t.Setenv("CONSTRAINT_CACHE_TTL", "not-a-duration")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("ENABLE_CONSTRAINT_CACHE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Checker.Workers)
	assert.Equal(t, 15*time.Minute, cfg.Checker.ConstraintCacheTTL)
	assert.False(t, cfg.Checker.ConstraintCacheEnabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
