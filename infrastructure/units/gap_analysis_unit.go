package units

import (
	"context"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/ports"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/scoring"
)

var _ ports.Unit = (*GapAnalysisUnit)(nil)

// GapAnalysisUnit classifies every sub-topic by the cohort's average
// percentage and lists them weakest first, feeding remediation
// recommendations.
//
// State Requirements:
//   - domain.KeyRoster: the validated roster
//
// State Updates:
//   - domain.KeyGaps: ascending by average percentage; filtering and the
//     limit never reorder entries
type GapAnalysisUnit struct {
	name   string
	config GapAnalysisConfig
}

// GapAnalysisConfig defines the configuration parameters for the
// GapAnalysisUnit.
type GapAnalysisConfig struct {
	// SubjectCodes restricts the analysed subjects; empty means all.
	SubjectCodes []string `yaml:"subject_codes" json:"subject_codes" validate:"dive,required"`

	// ClassID restricts the cohort to one class.
	ClassID string `yaml:"class_id" json:"class_id"`

	// Priorities keeps only gaps of the listed priorities. Empty keeps all.
	Priorities []domain.Priority `yaml:"priorities" json:"priorities" validate:"dive,oneof=urgent moderate low"`

	// Limit caps the number of gaps reported; 0 reports every gap.
	Limit int `yaml:"limit" json:"limit" validate:"min=0"`
}

// NewGapAnalysisUnit creates a new GapAnalysisUnit with the specified
// configuration.
func NewGapAnalysisUnit(name string, config GapAnalysisConfig) (*GapAnalysisUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &GapAnalysisUnit{name: name, config: config}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *GapAnalysisUnit) Name() string { return u.name }

// Execute runs the gap analysis and applies the priority filter and limit.
func (u *GapAnalysisUnit) Execute(_ context.Context, state domain.State) (domain.State, error) {
	roster, err := rosterFrom(state, u.name)
	if err != nil {
		return state, err
	}
	subjects, err := selectSubjects(roster.Subjects, u.config.SubjectCodes)
	if err != nil {
		return state, fmt.Errorf("select subjects: %w", err)
	}

	cohort, err := cohortFor(roster, u.config.ClassID)
	if err != nil {
		return state, err
	}

	gaps := scoring.GapAnalysis(subjects, cohort)
	if len(u.config.Priorities) > 0 {
		gaps = slices.DeleteFunc(gaps, func(g domain.SubTopicGap) bool {
			return !slices.Contains(u.config.Priorities, g.Priority)
		})
	}
	if u.config.Limit > 0 && len(gaps) > u.config.Limit {
		gaps = gaps[:u.config.Limit]
	}
	return domain.With(state, domain.KeyGaps, gaps), nil
}

// Validate checks if the unit is properly configured and ready for execution.
func (u *GapAnalysisUnit) Validate() error {
	if err := validate.Struct(u.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters replaces the unit's configuration from YAML.
func (u *GapAnalysisUnit) UnmarshalParameters(params yaml.Node) error {
	cfg := DefaultGapAnalysisConfig()
	if err := decodeNode(params, &cfg); err != nil {
		return err
	}
	u.config = cfg
	return nil
}

// DefaultGapAnalysisConfig reports every gap of every subject.
func DefaultGapAnalysisConfig() GapAnalysisConfig {
	return GapAnalysisConfig{}
}

// NewGapAnalysisFromConfig creates a GapAnalysisUnit from a plan's parameter
// map.
func NewGapAnalysisFromConfig(id string, params map[string]any) (ports.Unit, error) {
	cfg := DefaultGapAnalysisConfig()
	if err := decodeParams(id, params, &cfg); err != nil {
		return nil, err
	}
	return NewGapAnalysisUnit(id, cfg)
}
