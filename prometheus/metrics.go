package prometheus

import (
	"time"

	"github.com/apper-canvas/staffhub-core-dash/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthErrorsCounter   prometheus.Counter

	// Database operation metrics
	DbOperationDuration *prometheus.HistogramVec

	// Record metrics
	RecordOperationsCounter *prometheus.CounterVec

	// Custom field metrics
	CustomFieldOperationsCounter *prometheus.CounterVec

	// Query engine metrics
	QueryFallbackCounter *prometheus.CounterVec
)

// InitMetrics registers the service metrics on the default registry
func InitMetrics(config *config.Config) {
	InitMetricsWith(prometheus.DefaultRegisterer, config.Metrics.Prefix)
}

// InitMetricsWith registers the service metrics on reg. Tests pass a fresh registry.
func InitMetricsWith(reg prometheus.Registerer, prefix string) {
	factory := promauto.With(reg)

	// HTTP request metrics
	HttpRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Authentication metrics
	AuthAttemptsCounter = factory.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of bearer token checks",
		},
	)

	AuthErrorsCounter = factory.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of rejected bearer tokens",
		},
	)

	// Database operation metrics
	DbOperationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of repository operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	RecordOperationsCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_record_operations_total",
			Help: "Total number of record operations by kind",
		},
		[]string{"kind", "operation"},
	)

	CustomFieldOperationsCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_custom_field_operations_total",
			Help: "Total number of custom field mutations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	QueryFallbackCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_query_fallbacks_total",
			Help: "Total number of list requests served unfiltered after invalid query input",
		},
		[]string{"kind"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if DbOperationDuration == nil {
			return
		}
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordHTTPRequest observes one served request
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if HttpRequestsTotal == nil {
		return
	}
	HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordAuthAttempt counts a bearer token check and whether it failed
func RecordAuthAttempt(failed bool) {
	if AuthAttemptsCounter == nil {
		return
	}
	AuthAttemptsCounter.Inc()
	if failed {
		AuthErrorsCounter.Inc()
	}
}

// RecordOperation increments the counter for record operations
func RecordOperation(kind, operation string) {
	if RecordOperationsCounter == nil {
		return
	}
	RecordOperationsCounter.WithLabelValues(kind, operation).Inc()
}

// RecordCustomFieldOperation increments the counter for custom field mutations
func RecordCustomFieldOperation(operation string, err error) {
	if CustomFieldOperationsCounter == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	CustomFieldOperationsCounter.WithLabelValues(operation, outcome).Inc()
}

// RecordQueryFallback counts a list served without filtering
func RecordQueryFallback(kind string) {
	if QueryFallbackCounter == nil {
		return
	}
	QueryFallbackCounter.WithLabelValues(kind).Inc()
}
