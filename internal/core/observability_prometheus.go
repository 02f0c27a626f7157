package core

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetricsRecorder exports catalog operation outcomes as a
// result-labelled counter and a latency histogram.
type PrometheusMetricsRecorder struct {
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
}

// NewPrometheusMetricsRecorder registers the catalog collectors on reg.
// A nil registerer falls back to the process-default one.
func NewPrometheusMetricsRecorder(reg prometheus.Registerer) (*PrometheusMetricsRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittingcore",
		Subsystem: "catalog",
		Name:      "operations_total",
		Help:      "Catalog operations by result.",
	}, []string{"operation", "result"})
	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fittingcore",
		Subsystem: "catalog",
		Name:      "operation_duration_seconds",
		Help:      "Catalog operation latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
	for _, collector := range []prometheus.Collector{operations, durations} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register catalog metrics: %w", err)
		}
	}
	return &PrometheusMetricsRecorder{operations: operations, durations: durations}, nil
}

// Observe records a catalog operation outcome.
func (r *PrometheusMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	result := "error"
	if success {
		result = "success"
	}
	r.operations.WithLabelValues(operation, result).Inc()
	r.durations.WithLabelValues(operation).Observe(duration.Seconds())
}

var _ MetricsRecorder = (*PrometheusMetricsRecorder)(nil)
