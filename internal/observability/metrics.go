package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riskibarqy/gotlocks/internal/domain/grading"
)

const metricsNamespace = "gotlocks"

// Metrics owns the service's Prometheus registry.
type Metrics struct {
	registry        *prometheus.Registry
	gradingRuns     *prometheus.CounterVec
	gradingDuration prometheus.Histogram
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		gradingRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "grading_runs_total",
			Help:      "Grading relay runs by outcome.",
		}, []string{"outcome"}),
		gradingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "grading_run_duration_seconds",
			Help:      "Wall time of grading relay runs including the upstream call.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.gradingRuns,
		m.gradingDuration,
		m.httpRequests,
		m.httpDuration,
	)
	for _, outcome := range []grading.Outcome{grading.OutcomeSuccess, grading.OutcomeUpstreamError, grading.OutcomeTransportError} {
		m.gradingRuns.WithLabelValues(string(outcome))
	}

	return m
}

func (m *Metrics) ObserveGradingRun(outcome grading.Outcome, d time.Duration) {
	if m == nil {
		return
	}
	m.gradingRuns.WithLabelValues(string(outcome)).Inc()
	m.gradingDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveHTTPRequest(route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
