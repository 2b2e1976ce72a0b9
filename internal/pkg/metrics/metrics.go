package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rfpcred"

// Validation outcomes.
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
	OutcomeMissing = "missing"
)

// Metrics groups the service collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry prometheus.Gatherer

	validations  *prometheus.CounterVec
	patIssued    prometheus.Counter
	patRevoked   prometheus.Counter
	usageDropped prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credential_validations_total",
			Help:      "Bearer credential checks by credential source and outcome.",
		}, []string{"source", "outcome"}),
		patIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pat_issued_total",
			Help:      "Personal access tokens issued.",
		}),
		patRevoked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pat_revoked_total",
			Help:      "Personal access tokens revoked.",
		}),
		usageDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pat_usage_dropped_total",
			Help:      "last_used_at updates dropped because the recorder queue was full.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		m.validations, m.patIssued, m.patRevoked, m.usageDropped,
		m.httpRequests, m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

func (m *Metrics) ObserveValidation(source, outcome string) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(source, outcome).Inc()
}

func (m *Metrics) PATIssued() {
	if m == nil {
		return
	}
	m.patIssued.Inc()
}

func (m *Metrics) PATRevoked() {
	if m == nil {
		return
	}
	m.patRevoked.Inc()
}

func (m *Metrics) UsageDropped() {
	if m == nil {
		return
	}
	m.usageDropped.Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, statusLabel(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(seconds)
}

func statusLabel(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
