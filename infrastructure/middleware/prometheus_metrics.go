// Package middleware provides cross-cutting concerns for the report engine:
// Prometheus metrics and OpenTelemetry instrumentation around report units.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/ports"
)

const metricNamespace = "scorereport"

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It tracks execution latency and outcomes of report runs and
// units, cohort-level gauges such as cohort size and at-risk count, and
// percentage distributions such as class averages.
type PrometheusMetrics struct {
	executionLatency *prometheus.HistogramVec
	operationCounter *prometheus.CounterVec
	stateGauges      *prometheus.GaugeVec
	percentages      *prometheus.HistogramVec
}

// NewPrometheusMetrics creates a new PrometheusMetrics instance and registers
// its collectors on reg. Pass prometheus.DefaultRegisterer to expose them on
// the global registry, or a fresh prometheus.NewRegistry() in tests.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		executionLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricNamespace,
				Name:      "execution_duration_seconds",
				Help:      "Execution time of report runs and report units.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation", "unit"},
		),
		operationCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      "operations_total",
				Help:      "Total number of report operations by outcome.",
			},
			[]string{"operation", "status", "unit"},
		),
		stateGauges: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricNamespace,
				Name:      "cohort_state",
				Help:      "Latest cohort-level values such as cohort size and at-risk count.",
			},
			[]string{"metric", "unit"},
		),
		percentages: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricNamespace,
				Name:      "percentage",
				Help:      "Distribution of percentages such as cohort means.",
				Buckets:   prometheus.LinearBuckets(10, 10, 10),
			},
			[]string{"metric", "unit"},
		),
	}
}

func unitLabel(labels map[string]string) string {
	if unit := labels["unit"]; unit != "" {
		return unit
	}
	return "unknown"
}

// RecordLatency implements the MetricsCollector interface by recording
// execution latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	labels map[string]string,
) {
	pm.executionLatency.WithLabelValues(operation, unitLabel(labels)).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing a
// Prometheus counter. The "status" label defaults to "success".
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	status := labels["status"]
	if status == "" {
		status = "success"
	}
	pm.operationCounter.WithLabelValues(metric, status, unitLabel(labels)).Add(value)
}

// RecordGauge implements the MetricsCollector interface by setting
// Prometheus gauge values.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, labels map[string]string,
) {
	pm.stateGauges.WithLabelValues(metric, unitLabel(labels)).Set(value)
}

// RecordHistogram implements the MetricsCollector interface by observing a
// percentage in [0, 100].
func (pm *PrometheusMetrics) RecordHistogram(
	metric string, value float64, labels map[string]string,
) {
	pm.percentages.WithLabelValues(metric, unitLabel(labels)).Observe(value)
}

// Compile-time verification that PrometheusMetrics implements MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)
