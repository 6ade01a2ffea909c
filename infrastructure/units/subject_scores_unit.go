package units

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/ports"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/scoring"
)

var _ ports.Unit = (*SubjectScoresUnit)(nil)

// SubjectScoresUnit computes every student's per-subject and total score
// summaries, the data behind score tables and student deep dives.
//
// State Requirements:
//   - domain.KeyRoster: the validated roster
//
// State Updates:
//   - domain.KeyStudentResults: one entry per student, in roster order
//
// The unit is stateless and thread-safe for concurrent execution.
type SubjectScoresUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// config contains the validated configuration parameters.
	config SubjectScoresConfig
}

// SubjectScoresConfig defines the configuration parameters for the
// SubjectScoresUnit.
type SubjectScoresConfig struct {
	// SubjectCodes restricts the curriculum the totals are computed over.
	// Empty means every subject of the roster.
	SubjectCodes []string `yaml:"subject_codes" json:"subject_codes" validate:"dive,required"`
}

// NewSubjectScoresUnit creates a new SubjectScoresUnit with the specified
// configuration. Returns an error if the name is empty or the configuration
// is invalid.
func NewSubjectScoresUnit(name string, config SubjectScoresConfig) (*SubjectScoresUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &SubjectScoresUnit{name: name, config: config}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *SubjectScoresUnit) Name() string { return u.name }

// Execute computes the score summaries of every roster student.
func (u *SubjectScoresUnit) Execute(_ context.Context, state domain.State) (domain.State, error) {
	roster, err := rosterFrom(state, u.name)
	if err != nil {
		return state, err
	}
	subjects, err := selectSubjects(roster.Subjects, u.config.SubjectCodes)
	if err != nil {
		return state, fmt.Errorf("select subjects: %w", err)
	}

	results := make([]domain.StudentResult, len(roster.Students))
	for i, st := range roster.Students {
		results[i] = scoring.StudentResult(st, subjects)
	}
	return domain.With(state, domain.KeyStudentResults, results), nil
}

// Validate checks if the unit is properly configured and ready for execution.
func (u *SubjectScoresUnit) Validate() error {
	if err := validate.Struct(u.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters replaces the unit's configuration from YAML.
// It is not safe to call concurrently with Execute.
func (u *SubjectScoresUnit) UnmarshalParameters(params yaml.Node) error {
	cfg := DefaultSubjectScoresConfig()
	if err := decodeNode(params, &cfg); err != nil {
		return err
	}
	u.config = cfg
	return nil
}

// DefaultSubjectScoresConfig returns a configuration covering every subject.
func DefaultSubjectScoresConfig() SubjectScoresConfig {
	return SubjectScoresConfig{}
}

// NewSubjectScoresFromConfig creates a SubjectScoresUnit from a plan's
// parameter map.
func NewSubjectScoresFromConfig(id string, params map[string]any) (ports.Unit, error) {
	cfg := DefaultSubjectScoresConfig()
	if err := decodeParams(id, params, &cfg); err != nil {
		return nil, err
	}
	return NewSubjectScoresUnit(id, cfg)
}
