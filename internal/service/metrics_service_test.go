package service

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceObserveCheck(t *testing.T) {
	m := NewMetricsService()

	m.ObserveCheck(CheckStats{Source: SourceTerm, Records: 40, RoomClusters: 2, ConstraintClusters: 1}, 10*time.Millisecond, nil)
	m.ObserveCheck(CheckStats{Source: SourcePayload, RoomClusters: 5}, time.Millisecond, errors.New("invalid"))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.checksTotal.WithLabelValues(SourceTerm, "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.checksTotal.WithLabelValues(SourcePayload, "error")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.clustersFound.WithLabelValues("room")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.clustersFound.WithLabelValues("constraint")))
}

func TestMetricsServiceCacheRatio(t *testing.T) {
	m := NewMetricsService()
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)

	assert.InDelta(t, 2.0/3.0, testutil.ToFloat64(m.cacheHitRatio), 1e-9)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.cacheHits))
}

func TestMetricsServiceHandler(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/terms/:termId/conflicts", http.StatusOK, time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")

	var nilMetrics *MetricsService
	w = httptest.NewRecorder()
	nilMetrics.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	nilMetrics.ObserveCheck(CheckStats{}, 0, nil)
}
