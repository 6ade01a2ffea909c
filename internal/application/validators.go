package application

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/infrastructure/units"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/ports"
)

var nodeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// unitParamCheckers maps each built-in unit type to its config-backed
// constructor. Building a throwaway unit is the parameter validation: the
// constructors decode strictly and run the config's validate tags.
var unitParamCheckers = map[string]ports.UnitFactory{
	units.TypeSubjectScores: units.NewSubjectScoresFromConfig,
	units.TypeCohortStats:   units.NewCohortStatsFromConfig,
	units.TypeRanking:       units.NewRankingFromConfig,
	units.TypeGapAnalysis:   units.NewGapAnalysisFromConfig,
	units.TypeRadar:         units.NewRadarFromConfig,
}

// ValidateUnitParameters validates the parameters for a specific unit type,
// rejecting unknown fields and values outside the config's constraints.
func ValidateUnitParameters(unitType, unitID string, params yaml.Node) error {
	check, ok := unitParamCheckers[unitType]
	if !ok {
		return fmt.Errorf("unknown unit type: %s", unitType)
	}

	paramMap, err := decodeParameterMap(params)
	if err != nil {
		return err
	}
	if _, err := check(unitID, paramMap); err != nil {
		return err
	}
	return nil
}

// decodeParameterMap converts a unit's parameters node to a map. An absent
// parameters block yields a nil map.
func decodeParameterMap(params yaml.Node) (map[string]any, error) {
	if params.Kind == 0 {
		return nil, nil
	}
	var paramMap map[string]any
	if err := params.Decode(&paramMap); err != nil {
		return nil, fmt.Errorf("failed to decode parameters: %w", err)
	}
	return paramMap, nil
}

// RegisterPlanValidators registers the custom validation functions used in
// ReportPlan struct tags.
func RegisterPlanValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("semver", validateSemver); err != nil {
		return fmt.Errorf("failed to register semver validator: %w", err)
	}
	if err := v.RegisterValidation("nodeid", validateNodeID); err != nil {
		return fmt.Errorf("failed to register nodeid validator: %w", err)
	}
	return nil
}

// validateSemver validates that a string follows semantic versioning
// format (X.Y.Z where X, Y, Z are non-negative integers).
func validateSemver(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	var major, minor, patch int
	n, err := fmt.Sscanf(value, "%d.%d.%d", &major, &minor, &patch)
	if err != nil || n != 3 || major < 0 || minor < 0 || patch < 0 {
		return false
	}
	return fmt.Sprintf("%d.%d.%d", major, minor, patch) == value
}

// validateNodeID accepts letters, digits, underscores and hyphens so that
// ids like "subject_scores" or "class-7a" can be referenced from edges.
func validateNodeID(fl validator.FieldLevel) bool {
	return nodeIDPattern.MatchString(fl.Field().String())
}
