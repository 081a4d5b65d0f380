// Package metrics provides Prometheus metrics for the estimator service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EstimatesTotal counts computed estimates by workflow mode.
	EstimatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agentstudio",
			Subsystem: "estimator",
			Name:      "estimates_total",
			Help:      "Total number of estimates computed, by workflow mode",
		},
		[]string{"mode"},
	)

	// EstimateDuration tracks engine computation time.
	EstimateDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "agentstudio",
			Subsystem: "estimator",
			Name:      "estimate_duration_seconds",
			Help:      "Engine computation time in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"mode"},
	)

	// EstimatedMinutes tracks the distribution of estimated workflow durations.
	EstimatedMinutes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "agentstudio",
			Subsystem: "estimator",
			Name:      "estimated_minutes",
			Help:      "Estimated workflow wall-clock duration in minutes",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"mode"},
	)

	// WarningsTotal counts advisory warnings attached to estimates.
	WarningsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "agentstudio",
			Subsystem: "estimator",
			Name:      "warnings_total",
			Help:      "Total number of advisory warnings emitted",
		},
	)

	// ValidationFailuresTotal counts rejected estimate requests.
	ValidationFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "agentstudio",
			Subsystem: "estimator",
			Name:      "validation_failures_total",
			Help:      "Total number of requests rejected by schema validation",
		},
	)

	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agentstudio",
			Subsystem: "estimator",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "agentstudio",
			Subsystem: "estimator",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// StoreOperations counts estimate store operations.
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agentstudio",
			Subsystem: "estimator",
			Name:      "store_operations_total",
			Help:      "Total number of estimate store operations",
		},
		[]string{"operation", "result"},
	)
)
