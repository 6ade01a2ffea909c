package units

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/ports"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/scoring"
)

var _ ports.Unit = (*RadarUnit)(nil)

// RadarUnit builds a skill-profile comparison: series A is the focus (one
// class or one student), series B is the whole roster, both as per-subject
// average percentages.
//
// State Requirements:
//   - domain.KeyRoster: the validated roster
//
// State Updates:
//   - domain.KeyRadar: one point per subject code
type RadarUnit struct {
	name   string
	config RadarConfig
}

// RadarConfig defines the configuration parameters for the RadarUnit.
// Exactly one of FocusClassID and FocusStudentID must be set.
type RadarConfig struct {
	SubjectCodes []string `yaml:"subject_codes" json:"subject_codes" validate:"dive,required"`

	FocusClassID string `yaml:"focus_class_id" json:"focus_class_id" validate:"required_without=FocusStudentID,excluded_with=FocusStudentID"`

	FocusStudentID string `yaml:"focus_student_id" json:"focus_student_id" validate:"required_without=FocusClassID,excluded_with=FocusClassID"`
}

// NewRadarUnit creates a new RadarUnit with the specified configuration.
func NewRadarUnit(name string, config RadarConfig) (*RadarUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &RadarUnit{name: name, config: config}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *RadarUnit) Name() string { return u.name }

// Execute computes both series and reshapes them into radar points. A focus
// student or focus class missing from the roster is an InvalidInputError.
func (u *RadarUnit) Execute(_ context.Context, state domain.State) (domain.State, error) {
	roster, err := rosterFrom(state, u.name)
	if err != nil {
		return state, err
	}
	subjects, err := selectSubjects(roster.Subjects, u.config.SubjectCodes)
	if err != nil {
		return state, fmt.Errorf("select subjects: %w", err)
	}

	focus, err := u.focusCohort(roster)
	if err != nil {
		return state, err
	}

	points := scoring.RadarSeries(
		scoring.SubjectAverages(focus, subjects),
		scoring.SubjectAverages(roster.Students, subjects),
	)
	return domain.With(state, domain.KeyRadar, points), nil
}

func (u *RadarUnit) focusCohort(roster domain.Roster) ([]domain.Student, error) {
	if u.config.FocusClassID != "" {
		focus, err := cohortFor(roster, u.config.FocusClassID)
		if err != nil {
			return nil, fmt.Errorf("radar focus: %w", err)
		}
		return focus, nil
	}
	for _, s := range roster.Students {
		if s.ID == u.config.FocusStudentID {
			return []domain.Student{s}, nil
		}
	}
	return nil, domain.NewInvalidInputError("student", u.config.FocusStudentID, domain.ErrStudentNotInCohort).
		WithDetail("radar focus")
}

// Validate checks if the unit is properly configured and ready for execution.
func (u *RadarUnit) Validate() error {
	if err := validate.Struct(u.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters replaces the unit's configuration from YAML.
func (u *RadarUnit) UnmarshalParameters(params yaml.Node) error {
	var cfg RadarConfig
	if err := decodeNode(params, &cfg); err != nil {
		return err
	}
	u.config = cfg
	return nil
}

// NewRadarFromConfig creates a RadarUnit from a plan's parameter map. There
// are no defaults: the focus must always be given.
func NewRadarFromConfig(id string, params map[string]any) (ports.Unit, error) {
	var cfg RadarConfig
	if err := decodeParams(id, params, &cfg); err != nil {
		return nil, err
	}
	return NewRadarUnit(id, cfg)
}
