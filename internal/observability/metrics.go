package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	httpRequestsTotal    *prometheus.CounterVec
	httpLatencySeconds   *prometheus.HistogramVec
	httpErrorsTotal      *prometheus.CounterVec
	uploadRequestsTotal  *prometheus.CounterVec
	uploadRejectedTotal  *prometheus.CounterVec
	uploadLatencySeconds prometheus.Histogram
	authAttemptsTotal    *prometheus.CounterVec
	mailDispatchedTotal  *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors exported on /metrics.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "therapy_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "therapy_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "therapy_http_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		uploadRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "therapy_document_uploads_total",
			Help: "Documents stored, by normalised MIME type.",
		}, []string{"mime"})

		uploadRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "therapy_document_uploads_rejected_total",
			Help: "Document uploads rejected, by reason.",
		}, []string{"reason"})

		uploadLatencySeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "therapy_document_upload_latency_seconds",
			Help:    "Time spent validating and storing a document upload.",
			Buckets: prometheus.DefBuckets,
		})

		authAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "therapy_auth_attempts_total",
			Help: "Authentication flow outcomes, by flow and result.",
		}, []string{"flow", "result"})

		mailDispatchedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "therapy_mail_dispatched_total",
			Help: "Transactional mails handed to the dispatcher, by kind and result.",
		}, []string{"kind", "result"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			uploadRequestsTotal,
			uploadRejectedTotal,
			uploadLatencySeconds,
			authAttemptsTotal,
			mailDispatchedTotal,
		)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// UploadRequests exposes the counter for stored documents.
func UploadRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadRequestsTotal
}

// UploadRejected exposes the counter for rejected uploads.
func UploadRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadRejectedTotal
}

// UploadLatency exposes the upload latency histogram.
func UploadLatency() prometheus.Histogram {
	RegisterMetrics()
	return uploadLatencySeconds
}

// AuthAttempts exposes the counter for login, reset and invite outcomes.
func AuthAttempts() *prometheus.CounterVec {
	RegisterMetrics()
	return authAttemptsTotal
}

// MailDispatched exposes the counter for queued transactional mail.
func MailDispatched() *prometheus.CounterVec {
	RegisterMetrics()
	return mailDispatchedTotal
}
