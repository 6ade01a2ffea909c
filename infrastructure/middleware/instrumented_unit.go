package middleware

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/ports"
)

const tracerName = "scorereport/units"

var _ ports.Unit = (*InstrumentedUnit)(nil)

// InstrumentedUnit wraps a report unit with an OpenTelemetry span, latency
// and outcome metrics, and debug logging. It follows the decorator pattern:
// the wrapped unit's name, validation and outputs are passed through
// unchanged. It is stateless and safe for concurrent execution.
type InstrumentedUnit struct {
	next    ports.Unit
	tracer  trace.Tracer
	metrics ports.MetricsCollector
	logger  *slog.Logger
}

// Option configures an InstrumentedUnit.
type Option func(*InstrumentedUnit)

// WithTracer sets the tracer; it defaults to the global otel tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(u *InstrumentedUnit) {
		if tracer != nil {
			u.tracer = tracer
		}
	}
}

// WithMetricsCollector records unit metrics on collector.
func WithMetricsCollector(collector ports.MetricsCollector) Option {
	return func(u *InstrumentedUnit) { u.metrics = collector }
}

// WithLogger sets the logger; it defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(u *InstrumentedUnit) {
		if logger != nil {
			u.logger = logger
		}
	}
}

// NewInstrumentedUnit wraps next. It panics if next is nil.
func NewInstrumentedUnit(next ports.Unit, opts ...Option) *InstrumentedUnit {
	if next == nil {
		panic("instrumented unit: next unit is required")
	}
	u := &InstrumentedUnit{
		next:   next,
		tracer: otel.Tracer(tracerName),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Instrument returns a decorator that wraps every unit it is given with the
// same options. It is meant for DefaultUnitRegistry.Use.
func Instrument(opts ...Option) func(ports.Unit) ports.Unit {
	return func(next ports.Unit) ports.Unit {
		return NewInstrumentedUnit(next, opts...)
	}
}

// Name returns the wrapped unit's name.
func (u *InstrumentedUnit) Name() string { return u.next.Name() }

// Validate delegates to the wrapped unit.
func (u *InstrumentedUnit) Validate() error { return u.next.Validate() }

// Unwrap returns the wrapped unit.
func (u *InstrumentedUnit) Unwrap() ports.Unit { return u.next }

// Execute runs the wrapped unit inside a span and records its outcome.
func (u *InstrumentedUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	name := u.next.Name()
	attrs := []attribute.KeyValue{attribute.String("unit.name", name)}
	if reportID, ok := domain.Get(state, domain.KeyReportID); ok {
		attrs = append(attrs, attribute.String("report.id", reportID))
	}
	if plan, ok := domain.Get(state, domain.KeyPlanName); ok {
		attrs = append(attrs, attribute.String("report.plan", plan))
	}

	ctx, span := u.tracer.Start(ctx, "Unit.Execute", trace.WithAttributes(attrs...))
	defer span.End()

	start := time.Now()
	out, err := u.next.Execute(ctx, state)
	elapsed := time.Since(start)

	labels := map[string]string{"unit": name}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if u.metrics != nil {
			u.metrics.RecordLatency("unit_execute", elapsed, labels)
			u.metrics.RecordCounter("unit_executions", 1, map[string]string{"unit": name, "status": "error"})
		}
		u.logger.Warn("unit failed", "unit", name, "elapsed", elapsed, "error", err)
		return out, err
	}

	span.SetAttributes(attribute.StringSlice("state.keys", out.Keys()))
	u.observeOutputs(span, producedKeys(state, out), out, labels)
	span.SetStatus(codes.Ok, "")

	if u.metrics != nil {
		u.metrics.RecordLatency("unit_execute", elapsed, labels)
		u.metrics.RecordCounter("unit_executions", 1, map[string]string{"unit": name, "status": "success"})
	}
	u.logger.Debug("unit executed", "unit", name, "elapsed", elapsed)
	return out, nil
}

// producedKeys returns the names of keys present in out but not in in.
func producedKeys(in, out domain.State) map[string]bool {
	before := make(map[string]bool)
	for _, k := range in.Keys() {
		before[k] = true
	}
	produced := make(map[string]bool)
	for _, k := range out.Keys() {
		if !before[k] {
			produced[k] = true
		}
	}
	return produced
}

// observeOutputs turns the unit's results into span events and metrics.
// Only keys the unit added are inspected, so results flowing through a
// pipeline are not counted twice.
func (u *InstrumentedUnit) observeOutputs(span trace.Span, produced map[string]bool, out domain.State, labels map[string]string) {
	if produced[domain.KeyAtRisk.Name()] {
		atRisk, _ := domain.Get(out, domain.KeyAtRisk)
		span.AddEvent("ranking.at_risk", trace.WithAttributes(attribute.Int("count", len(atRisk))))
		if u.metrics != nil {
			u.metrics.RecordGauge("at_risk_count", float64(len(atRisk)), labels)
		}
	}

	if produced[domain.KeyGaps.Name()] {
		gaps, _ := domain.Get(out, domain.KeyGaps)
		var urgent int
		for _, g := range gaps {
			if g.Priority == domain.PriorityUrgent {
				urgent++
			}
		}
		span.AddEvent("gaps.classified", trace.WithAttributes(
			attribute.Int("total", len(gaps)),
			attribute.Int("urgent", urgent),
		))
		if u.metrics != nil {
			u.metrics.RecordGauge("urgent_gaps", float64(urgent), labels)
		}
	}

	if produced[domain.KeyCohortStats.Name()] && u.metrics != nil {
		stats, _ := domain.Get(out, domain.KeyCohortStats)
		for _, s := range stats {
			if s.Scope != "total" || s.Stats.Count == 0 {
				continue
			}
			u.metrics.RecordHistogram("cohort_mean", s.Stats.Mean, labels)
			if s.ClassID == "" {
				u.metrics.RecordGauge("cohort_size", float64(s.Stats.Count), labels)
			}
		}
	}
}
