package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "assettrack"

// APIMetrics records request, rate-limit and audit telemetry.
type APIMetrics struct {
	requestDuration *prometheus.HistogramVec
	rateLimited     *prometheus.CounterVec
	auditFailures   *prometheus.CounterVec
	overdueFlipped  prometheus.Counter
}

// NewAPIMetrics registers the API metrics on the provided registerer. A nil
// registerer yields a no-op recorder.
func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	if reg == nil {
		return &APIMetrics{}
	}
	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests by route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	rateLimited := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Requests rejected by a rate limit policy.",
	}, []string{"policy"})
	auditFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_failures_total",
		Help:      "Audit log entries that could not be written.",
	}, []string{"log_type", "action"})
	overdueFlipped := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_marked_overdue_total",
		Help:      "Reminders moved to Overdue by the sweep.",
	})
	reg.MustRegister(requestDuration, rateLimited, auditFailures, overdueFlipped)
	return &APIMetrics{
		requestDuration: requestDuration,
		rateLimited:     rateLimited,
		auditFailures:   auditFailures,
		overdueFlipped:  overdueFlipped,
	}
}

// ObserveRequest records one served request.
func (m *APIMetrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil || m.requestDuration == nil {
		return
	}
	m.requestDuration.
		WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).
		Observe(duration.Seconds())
}

func (m *APIMetrics) IncRateLimited(policy string) {
	if m == nil || m.rateLimited == nil {
		return
	}
	m.rateLimited.WithLabelValues(normalizeLabel(policy)).Inc()
}

func (m *APIMetrics) IncAuditFailure(logType, action string) {
	if m == nil || m.auditFailures == nil {
		return
	}
	m.auditFailures.WithLabelValues(normalizeLabel(logType), normalizeLabel(action)).Inc()
}

func (m *APIMetrics) AddOverdueFlipped(n int64) {
	if m == nil || m.overdueFlipped == nil || n <= 0 {
		return
	}
	m.overdueFlipped.Add(float64(n))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
