package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/riskibarqy/gotlocks/internal/domain/grading"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveGradingRun(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.ObserveGradingRun(grading.OutcomeSuccess, 200*time.Millisecond)
	m.ObserveGradingRun(grading.OutcomeUpstreamError, time.Second)
	m.ObserveGradingRun(grading.OutcomeSuccess, 300*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.gradingRuns.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gradingRuns.WithLabelValues("upstream_error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.gradingRuns.WithLabelValues("transport_error")))
}

func TestMetrics_HandlerExposesSeries(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.ObserveHTTPRequest("GET /healthz", http.StatusOK, 5*time.Millisecond)
	m.ObserveHTTPRequest("", http.StatusNotFound, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `gotlocks_http_requests_total{route="GET /healthz",status="200"} 1`))
	assert.True(t, strings.Contains(body, `gotlocks_http_requests_total{route="unmatched",status="404"} 1`))
	assert.True(t, strings.Contains(body, "gotlocks_grading_run_duration_seconds_bucket"))
}

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.ObserveGradingRun(grading.OutcomeSuccess, time.Second)
	m.ObserveHTTPRequest("x", 200, time.Second)
}
