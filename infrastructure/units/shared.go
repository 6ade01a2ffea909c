// Package units provides the report units that implement ports.Unit for the
// score reporting engine. Every unit reads the validated roster from the
// State, runs one family of scoring computations over it and writes its
// results under its own State keys.
package units

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/ports"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/scoring"
)

// Common errors returned by report units.
var (
	// ErrEmptyUnitName is returned when attempting to create a unit with an empty name.
	ErrEmptyUnitName = errors.New("unit name cannot be empty")

	// ErrRosterMissing is returned when a unit runs on a State without a roster.
	ErrRosterMissing = errors.New("roster not found in state")
)

// Unit type names as they appear in report plans.
const (
	TypeSubjectScores = "subject_scores"
	TypeCohortStats   = "cohort_stats"
	TypeRanking       = "ranking"
	TypeGapAnalysis   = "gap_analysis"
	TypeRadar         = "radar"
)

// Package-level validator instance for configuration validation.
var validate = validator.New()

// rosterFrom reads the roster every unit operates on.
func rosterFrom(state domain.State, unit string) (domain.Roster, error) {
	roster, err := domain.MustGet(state, domain.KeyRoster, unit)
	if err != nil {
		return domain.Roster{}, fmt.Errorf("%w: %w", ErrRosterMissing, err)
	}
	return roster, nil
}

// selectSubjects narrows subjects to the given codes, keeping catalog order.
// Codes match case-insensitively; an empty list selects every subject.
func selectSubjects(subjects []domain.Subject, codes []string) ([]domain.Subject, error) {
	if len(codes) == 0 {
		return subjects, nil
	}

	wanted := make(map[string]bool, len(codes))
	for _, c := range codes {
		wanted[scoring.NormalizeCode(c)] = false
	}

	var out []domain.Subject
	for _, s := range subjects {
		code := scoring.NormalizeCode(s.Code)
		if _, ok := wanted[code]; ok {
			wanted[code] = true
			out = append(out, s)
		}
	}

	for _, c := range codes {
		if !wanted[scoring.NormalizeCode(c)] {
			return nil, domain.NewInvalidInputError("subject", c, domain.ErrUnknownSubject)
		}
	}
	return out, nil
}

// cohortFor returns the roster's students, restricted to classID when set.
// A classID that matches no class in the roster is an InvalidInputError.
func cohortFor(roster domain.Roster, classID string) ([]domain.Student, error) {
	if classID == "" {
		return roster.Students, nil
	}
	if !slices.Contains(roster.ClassIDs(), classID) {
		return nil, domain.NewInvalidInputError("class", classID, domain.ErrUnknownClass)
	}
	return roster.StudentsInClass(classID), nil
}

// decodeParams overlays params onto cfg, rejecting unknown fields, and
// validates the result. cfg must be a pointer to a config struct that
// already holds its defaults.
func decodeParams(id string, params map[string]any, cfg any) error {
	if len(params) > 0 {
		data, err := yaml.Marshal(params)
		if err != nil {
			return ports.NewConfigError(id, fmt.Errorf("marshal config: %w", err))
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return ports.NewConfigError(id, fmt.Errorf("parse config: %w", err))
		}
	}
	if err := validate.Struct(cfg); err != nil {
		return ports.NewConfigError(id, fmt.Errorf("configuration validation failed: %w", err))
	}
	return nil
}

// decodeNode is the yaml.Node counterpart of decodeParams used by
// UnmarshalParameters.
func decodeNode(params yaml.Node, cfg any) error {
	if err := params.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	return nil
}

// SupportedTypes lists the built-in unit types in sorted order.
func SupportedTypes() []string {
	types := []string{TypeSubjectScores, TypeCohortStats, TypeRanking, TypeGapAnalysis, TypeRadar}
	slices.Sort(types)
	return types
}
