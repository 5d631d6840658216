package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SchemaRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autoschema_renders_total",
			Help: "Total number of schema renders by format",
		},
		[]string{"format"},
	)

	SchemaValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autoschema_validations_total",
			Help: "Total number of validations by target and outcome",
		},
		[]string{"target", "valid"},
	)

	SavedSchemaOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autoschema_saved_operations_total",
			Help: "Total number of saved schema operations by operation and result",
		},
		[]string{"operation", "result"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "autoschema_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// ObserveSavedOperation records the outcome of a saved schema operation.
func ObserveSavedOperation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	SavedSchemaOperations.WithLabelValues(operation, result).Inc()
}
