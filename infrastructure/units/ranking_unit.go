package units

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/ports"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/scoring"
)

var _ ports.Unit = (*RankingUnit)(nil)

// RankingUnit ranks the cohort by total percentage and extracts the top
// performers, the bottom performers and the students needing attention.
//
// Ties keep roster order. The top list is best first; the bottom and
// at-risk lists are weakest first.
//
// State Requirements:
//   - domain.KeyRoster: the validated roster
//
// State Updates:
//   - domain.KeyStandings
//   - domain.KeyTopPerformers
//   - domain.KeyBottomPerformers
//   - domain.KeyAtRisk
type RankingUnit struct {
	name   string
	config RankingConfig
}

// RankingConfig defines the configuration parameters for the RankingUnit.
type RankingConfig struct {
	// SubjectCodes restricts the curriculum; empty means every subject.
	SubjectCodes []string `yaml:"subject_codes" json:"subject_codes" validate:"dive,required"`

	// ClassID restricts the cohort to one class. Empty ranks the whole
	// roster.
	ClassID string `yaml:"class_id" json:"class_id"`

	// TopFraction is the share of the cohort reported as top performers.
	TopFraction float64 `yaml:"top_fraction" json:"top_fraction" validate:"gt=0,lte=1"`

	// BottomFraction is the share of the cohort reported as bottom
	// performers; the at-risk list is drawn from the same slice.
	BottomFraction float64 `yaml:"bottom_fraction" json:"bottom_fraction" validate:"gt=0,lte=1"`

	// AtRiskCutoff is the percentage strictly below which a bottom
	// performer is at risk.
	AtRiskCutoff float64 `yaml:"at_risk_cutoff" json:"at_risk_cutoff" validate:"min=0,max=100"`
}

// NewRankingUnit creates a new RankingUnit with the specified configuration.
func NewRankingUnit(name string, config RankingConfig) (*RankingUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &RankingUnit{name: name, config: config}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *RankingUnit) Name() string { return u.name }

// Execute ranks the cohort and writes the four ranking sections.
func (u *RankingUnit) Execute(_ context.Context, state domain.State) (domain.State, error) {
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

	top, err := scoring.TopRefs(cohort, subjects, u.config.TopFraction)
	if err != nil {
		return state, fmt.Errorf("top performers: %w", err)
	}
	bottom, err := scoring.BottomRefs(cohort, subjects, u.config.BottomFraction)
	if err != nil {
		return state, fmt.Errorf("bottom performers: %w", err)
	}
	atRisk, err := scoring.AtRiskRefs(cohort, subjects, u.config.BottomFraction, u.config.AtRiskCutoff)
	if err != nil {
		return state, fmt.Errorf("at-risk students: %w", err)
	}

	state = domain.With(state, domain.KeyStandings, scoring.Standings(cohort, subjects))
	state = domain.With(state, domain.KeyTopPerformers, top)
	state = domain.With(state, domain.KeyBottomPerformers, bottom)
	return domain.With(state, domain.KeyAtRisk, atRisk), nil
}

// Validate checks if the unit is properly configured and ready for execution.
func (u *RankingUnit) Validate() error {
	if err := validate.Struct(u.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters replaces the unit's configuration from YAML. Fields
// absent from params keep their defaults.
func (u *RankingUnit) UnmarshalParameters(params yaml.Node) error {
	cfg := DefaultRankingConfig()
	if err := decodeNode(params, &cfg); err != nil {
		return err
	}
	u.config = cfg
	return nil
}

// DefaultRankingConfig returns the dashboard defaults: top and bottom 10%
// with the standard at-risk cutoff.
func DefaultRankingConfig() RankingConfig {
	return RankingConfig{
		TopFraction:    0.1,
		BottomFraction: 0.1,
		AtRiskCutoff:   scoring.DefaultAtRiskCutoff,
	}
}

// NewRankingFromConfig creates a RankingUnit from a plan's parameter map.
func NewRankingFromConfig(id string, params map[string]any) (ports.Unit, error) {
	cfg := DefaultRankingConfig()
	if err := decodeParams(id, params, &cfg); err != nil {
		return nil, err
	}
	return NewRankingUnit(id, cfg)
}
