package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCache struct{ *memoryCache }

func (f *failingCache) Get(ctx context.Context, key string, dest interface{}) error {
	return errors.New("redis down")
}

func TestCacheServiceDisabled(t *testing.T) {
	svc := NewCacheService(newMemoryCache(), nil, "x", 0, nil, false)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "k", "v", 0))
	var got string
	hit, err := svc.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	var nilSvc *CacheService
	assert.False(t, nilSvc.Enabled())
	assert.NoError(t, nilSvc.Invalidate(ctx, "*"))
}

func TestCacheServiceRoundTrip(t *testing.T) {
	backend := newMemoryCache()
	metrics := NewMetricsService()
	svc := NewCacheService(backend, metrics, "conflicts", time.Minute, nil, true)
	ctx := context.Background()

	var got []string
	hit, err := svc.Get(ctx, "constraints:sp19", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(ctx, "constraints:sp19", []string{"core"}, 0))
	hit, err = svc.Get(ctx, "constraints:sp19", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"core"}, got)

	require.NoError(t, svc.Invalidate(ctx, "constraints:*"))
	hit, _ = svc.Get(ctx, "constraints:sp19", &got)
	assert.False(t, hit)
}

func TestCacheServiceBackendFailure(t *testing.T) {
	svc := NewCacheService(&failingCache{memoryCache: newMemoryCache()}, nil, "", time.Minute, nil, true)
	var got string
	hit, err := svc.Get(context.Background(), "k", &got)
	assert.False(t, hit)
	assert.Error(t, err)
}
