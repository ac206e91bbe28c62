// Package metrics defines the Prometheus collectors of the server on a
// private registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pdstore"

// Outcome label values.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics bundles the collectors. All methods are safe for concurrent use.
type Metrics struct {
	registry *prometheus.Registry

	authAttempts      *prometheus.CounterVec
	surveySubmissions *prometheus.CounterVec
	tokenRejections   *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	storeUp           prometheus.Gauge
}

// New registers every collector, plus the Go and process collectors, on a
// fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Signup and login attempts by operation and outcome.",
		}, []string{"op", "outcome"}),
		surveySubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "survey_submissions_total",
			Help:      "Survey submissions by outcome.",
		}, []string{"outcome"}),
		tokenRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_rejections_total",
			Help:      "Requests refused by the bearer guard, by reason.",
		}, []string{"reason"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		storeUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_up",
			Help:      "1 if the last database health check succeeded.",
		}),
	}

	m.registry.MustRegister(
		m.authAttempts,
		m.surveySubmissions,
		m.tokenRejections,
		m.httpRequests,
		m.httpDuration,
		m.storeUp,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// AuthAttempt counts a signup or login attempt.
func (m *Metrics) AuthAttempt(op, outcome string) {
	m.authAttempts.WithLabelValues(op, outcome).Inc()
}

// SurveySubmission counts a survey submission.
func (m *Metrics) SurveySubmission(outcome string) {
	m.surveySubmissions.WithLabelValues(outcome).Inc()
}

// TokenRejected counts a request refused by the guard.
func (m *Metrics) TokenRejected(reason string) {
	m.tokenRejections.WithLabelValues(reason).Inc()
}

// ObserveHTTP records one finished request.
func (m *Metrics) ObserveHTTP(method, route string, code int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// SetStoreUp records the result of a database health check.
func (m *Metrics) SetStoreUp(up bool) {
	if up {
		m.storeUp.Set(1)
		return
	}
	m.storeUp.Set(0)
}
