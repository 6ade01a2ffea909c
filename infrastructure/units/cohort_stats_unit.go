package units

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/ports"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/scoring"
)

// ScopeTotal labels statistics over total percentages.
const ScopeTotal = "total"

var _ ports.Unit = (*CohortStatsUnit)(nil)

// CohortStatsUnit computes box-plot statistics (mean, population standard
// deviation, quartiles, whiskers and outliers) over the cohort's total
// percentages and, optionally, each subject's percentages. With
// GroupByClass the same statistics are repeated for every class.
//
// State Requirements:
//   - domain.KeyRoster: the validated roster
//
// State Updates:
//   - domain.KeyCohortStats: school-wide entries first, then per class in
//     order of first appearance; within a group "total" precedes subjects
//
// The unit is stateless and thread-safe for concurrent execution.
type CohortStatsUnit struct {
	name   string
	config CohortStatsConfig
}

// CohortStatsConfig defines the configuration parameters for the
// CohortStatsUnit.
type CohortStatsConfig struct {
	// SubjectCodes restricts the curriculum; empty means every subject.
	SubjectCodes []string `yaml:"subject_codes" json:"subject_codes" validate:"dive,required"`

	// PerSubject adds one statistics entry per subject next to the total.
	PerSubject bool `yaml:"per_subject" json:"per_subject"`

	// GroupByClass repeats the statistics for each class of the roster.
	GroupByClass bool `yaml:"group_by_class" json:"group_by_class"`
}

// NewCohortStatsUnit creates a new CohortStatsUnit with the specified
// configuration.
func NewCohortStatsUnit(name string, config CohortStatsConfig) (*CohortStatsUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &CohortStatsUnit{name: name, config: config}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *CohortStatsUnit) Name() string { return u.name }

// Execute computes the configured statistics.
func (u *CohortStatsUnit) Execute(_ context.Context, state domain.State) (domain.State, error) {
	roster, err := rosterFrom(state, u.name)
	if err != nil {
		return state, err
	}
	subjects, err := selectSubjects(roster.Subjects, u.config.SubjectCodes)
	if err != nil {
		return state, fmt.Errorf("select subjects: %w", err)
	}

	stats := u.statsFor(roster.Students, subjects, "")
	if u.config.GroupByClass {
		for _, classID := range roster.ClassIDs() {
			stats = append(stats, u.statsFor(roster.StudentsInClass(classID), subjects, classID)...)
		}
	}
	return domain.With(state, domain.KeyCohortStats, stats), nil
}

func (u *CohortStatsUnit) statsFor(cohort []domain.Student, subjects []domain.Subject, classID string) []domain.ScopedStats {
	out := []domain.ScopedStats{{
		Scope:   ScopeTotal,
		ClassID: classID,
		Stats:   scoring.CohortStatistics(scoring.TotalPercentages(cohort, subjects)),
	}}
	if !u.config.PerSubject {
		return out
	}
	for _, subj := range subjects {
		out = append(out, domain.ScopedStats{
			Scope:   subj.Code,
			ClassID: classID,
			Stats:   scoring.CohortStatistics(scoring.SubjectPercentages(cohort, subj)),
		})
	}
	return out
}

// Validate checks if the unit is properly configured and ready for execution.
func (u *CohortStatsUnit) Validate() error {
	if err := validate.Struct(u.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters replaces the unit's configuration from YAML.
func (u *CohortStatsUnit) UnmarshalParameters(params yaml.Node) error {
	cfg := DefaultCohortStatsConfig()
	if err := decodeNode(params, &cfg); err != nil {
		return err
	}
	u.config = cfg
	return nil
}

// DefaultCohortStatsConfig returns school-wide total and per-subject
// statistics without a class breakdown.
func DefaultCohortStatsConfig() CohortStatsConfig {
	return CohortStatsConfig{PerSubject: true}
}

// NewCohortStatsFromConfig creates a CohortStatsUnit from a plan's parameter
// map.
func NewCohortStatsFromConfig(id string, params map[string]any) (ports.Unit, error) {
	cfg := DefaultCohortStatsConfig()
	if err := decodeParams(id, params, &cfg); err != nil {
		return nil, err
	}
	return NewCohortStatsUnit(id, cfg)
}
