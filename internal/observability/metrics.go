package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce        sync.Once
	adminRequestsTotal  *prometheus.CounterVec
	adminLatencySeconds *prometheus.HistogramVec
	adminErrorsTotal    *prometheus.CounterVec
	auditWriteFailures  prometheus.Counter
	emailsTotal         *prometheus.CounterVec
	bulkOperationsTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		adminRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_requests_total",
			Help: "Total number of admin API requests served.",
		}, []string{"method", "route", "status"})

		adminLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "admin_latency_seconds",
			Help:    "Latency distribution for admin API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		adminErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_errors_total",
			Help: "Total number of error responses returned by admin endpoints.",
		}, []string{"method", "route", "status"})

		auditWriteFailures = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "audit_write_failures_total",
			Help: "Audit records dropped because the store write failed.",
		})

		emailsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notification_emails_total",
			Help: "Outbound notification emails by type and outcome.",
		}, []string{"type", "outcome"})

		bulkOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bulk_operations_total",
			Help: "Bulk admin workflows by kind and per-record outcome.",
		}, []string{"kind", "outcome"})

		prometheus.MustRegister(
			adminRequestsTotal,
			adminLatencySeconds,
			adminErrorsTotal,
			auditWriteFailures,
			emailsTotal,
			bulkOperationsTotal,
		)
	})
}

// AdminRequests exposes the counter for admin requests.
func AdminRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return adminRequestsTotal
}

// AdminLatency exposes the latency histogram for admin requests.
func AdminLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return adminLatencySeconds
}

// AdminErrors exposes the counter for admin error responses.
func AdminErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return adminErrorsTotal
}

// AuditWriteFailures exposes the counter for dropped audit records.
func AuditWriteFailures() prometheus.Counter {
	RegisterMetrics()
	return auditWriteFailures
}

// Emails exposes the counter for outbound notification emails.
func Emails() *prometheus.CounterVec {
	RegisterMetrics()
	return emailsTotal
}

// BulkOperations exposes the counter for bulk workflow outcomes.
func BulkOperations() *prometheus.CounterVec {
	RegisterMetrics()
	return bulkOperationsTotal
}
