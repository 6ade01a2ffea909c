package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/ports"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/scoring"
)

// ErrNilPlan is returned when Run is called without a compiled plan.
var ErrNilPlan = errors.New("report plan is required")

// ReportRunner validates a roster, executes a compiled report plan over it
// and assembles the resulting domain.Report.
type ReportRunner struct {
	logger  *slog.Logger
	metrics ports.MetricsCollector
	now     func() time.Time
	newID   func() string
}

// RunnerOption configures a ReportRunner.
type RunnerOption func(*ReportRunner)

// WithLogger sets the runner's logger; it defaults to slog.Default().
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *ReportRunner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records run latency and cohort gauges on collector.
func WithMetrics(collector ports.MetricsCollector) RunnerOption {
	return func(r *ReportRunner) { r.metrics = collector }
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *ReportRunner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator overrides the report ID source.
func WithIDGenerator(newID func() string) RunnerOption {
	return func(r *ReportRunner) {
		if newID != nil {
			r.newID = newID
		}
	}
}

// NewReportRunner creates a runner with a UUID report ID generator and the
// wall clock.
func NewReportRunner(opts ...RunnerOption) *ReportRunner {
	r := &ReportRunner{
		logger: slog.Default(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run validates roster against its own catalog, executes plan and returns
// the assembled report. Sections the plan does not produce stay empty.
func (r *ReportRunner) Run(ctx context.Context, roster domain.Roster, plan *CompiledPlan) (domain.Report, error) {
	if plan == nil || plan.Graph == nil {
		return domain.Report{}, ErrNilPlan
	}

	if _, err := scoring.ValidateRoster(roster); err != nil {
		return domain.Report{}, fmt.Errorf("invalid roster: %w", err)
	}

	reportID := r.newID()
	planName := plan.Name()
	logger := r.logger.With("report_id", reportID, "plan", planName)

	state := domain.NewState()
	state = domain.With(state, domain.KeyRoster, roster)
	state = domain.With(state, domain.KeyPlanName, planName)
	state = domain.With(state, domain.KeyReportID, reportID)

	logger.Info("running report",
		"students", len(roster.Students),
		"subjects", len(roster.Subjects))

	start := time.Now()
	final, err := plan.Graph.Execute(ctx, state)
	elapsed := time.Since(start)
	labels := map[string]string{"unit": "runner", "plan": planName}

	if err != nil {
		r.recordCounter("report_runs", labels, "error")
		logger.Error("report failed", "elapsed", elapsed, "error", err)
		return domain.Report{}, fmt.Errorf("plan %s: %w", planName, err)
	}

	report := assembleReport(final)
	report.ID = reportID
	report.Plan = planName
	report.GeneratedAt = r.now().UTC()

	if r.metrics != nil {
		r.metrics.RecordLatency("report_run", elapsed, labels)
		r.metrics.RecordGauge("cohort_size", float64(len(roster.Students)), labels)
		r.metrics.RecordGauge("at_risk_count", float64(len(report.AtRisk)), labels)
	}
	r.recordCounter("report_runs", labels, "success")

	logger.Info("report complete",
		"elapsed", elapsed,
		"standings", len(report.Standings),
		"gaps", len(report.Gaps),
		"at_risk", len(report.AtRisk))

	return report, nil
}

func (r *ReportRunner) recordCounter(metric string, labels map[string]string, status string) {
	if r.metrics == nil {
		return
	}
	withStatus := maps.Clone(labels)
	withStatus["status"] = status
	r.metrics.RecordCounter(metric, 1, withStatus)
}

// assembleReport copies every report section present in state.
func assembleReport(state domain.State) domain.Report {
	var report domain.Report
	report.StudentResults, _ = domain.Get(state, domain.KeyStudentResults)
	report.CohortStats, _ = domain.Get(state, domain.KeyCohortStats)
	report.Standings, _ = domain.Get(state, domain.KeyStandings)
	report.Top, _ = domain.Get(state, domain.KeyTopPerformers)
	report.Bottom, _ = domain.Get(state, domain.KeyBottomPerformers)
	report.AtRisk, _ = domain.Get(state, domain.KeyAtRisk)
	report.Gaps, _ = domain.Get(state, domain.KeyGaps)
	report.Radar, _ = domain.Get(state, domain.KeyRadar)
	return report
}
