package ports

import (
	"context"
	"time"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
)

// RosterSource supplies the data a report is computed over. Implementations
// return subjects and students already filtered by academic year, program,
// class and assessment; the engine never queries anything itself.
type RosterSource interface {
	// Load returns the roster. It should honour ctx cancellation while
	// reading.
	Load(ctx context.Context) (domain.Roster, error)
}

// MetricsCollector records operational metrics of report runs.
// Implementations integrate with Prometheus or similar backends and must be
// safe for concurrent use.
type MetricsCollector interface {
	// RecordLatency records how long an operation took.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter adds value to a counter metric.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets the current value of a gauge metric, such as the size
	// of the cohort being reported on.
	RecordGauge(metric string, value float64, labels map[string]string)

	// RecordHistogram observes value in a histogram, such as a class average.
	RecordHistogram(metric string, value float64, labels map[string]string)
}

// ReportWriter renders a finished report to an output format.
type ReportWriter interface {
	Write(ctx context.Context, report domain.Report) error
}
