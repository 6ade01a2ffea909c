package application

import (
	"fmt"
	"slices"
	"sync"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/infrastructure/units"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.UnitRegistry = (*DefaultUnitRegistry)(nil)

// UnitDecorator wraps a freshly created unit, e.g. to add tracing and
// metrics around its Execute method.
type UnitDecorator func(ports.Unit) ports.Unit

// DefaultUnitRegistry implements the UnitRegistry interface providing
// a factory for creating report units based on type and configuration.
// It supports dynamic registration of unit factories and decorators that
// are applied to every unit it creates.
type DefaultUnitRegistry struct {
	// factories maps unit type strings to their factory functions.
	factories map[string]ports.UnitFactory
	// decorators are applied in order to every created unit.
	decorators []UnitDecorator
	// mu protects concurrent access to factories and decorators.
	mu sync.RWMutex
}

// NewDefaultUnitRegistry creates a new unit registry with the built-in
// report unit types pre-registered.
func NewDefaultUnitRegistry() *DefaultUnitRegistry {
	registry := &DefaultUnitRegistry{
		factories: make(map[string]ports.UnitFactory),
	}
	registry.registerBuiltinFactories()
	return registry
}

func (r *DefaultUnitRegistry) registerBuiltinFactories() {
	builtins := map[string]ports.UnitFactory{
		units.TypeSubjectScores: units.NewSubjectScoresFromConfig,
		units.TypeCohortStats:   units.NewCohortStatsFromConfig,
		units.TypeRanking:       units.NewRankingFromConfig,
		units.TypeGapAnalysis:   units.NewGapAnalysisFromConfig,
		units.TypeRadar:         units.NewRadarFromConfig,
	}
	for unitType, factory := range builtins {
		r.factories[unitType] = factory
	}
}

// CreateUnit creates a new unit instance based on the provided type,
// identifier, and configuration, then applies the registered decorators.
func (r *DefaultUnitRegistry) CreateUnit(
	unitType string,
	id string,
	config map[string]any,
) (ports.Unit, error) {
	r.mu.RLock()
	factory, exists := r.factories[unitType]
	decorators := slices.Clone(r.decorators)
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unsupported unit type: %s", unitType)
	}

	if id == "" {
		return nil, fmt.Errorf("unit ID cannot be empty")
	}

	unit, err := factory(id, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create unit %s of type %s: %w", id, unitType, err)
	}

	for _, decorate := range decorators {
		unit = decorate(unit)
	}
	return unit, nil
}

// RegisterUnitFactory registers a new factory function for a specific unit type.
// This allows extending the registry with custom unit types at runtime.
func (r *DefaultUnitRegistry) RegisterUnitFactory(
	unitType string,
	factory ports.UnitFactory,
) error {
	if unitType == "" {
		return fmt.Errorf("unit type cannot be empty")
	}

	if factory == nil {
		return fmt.Errorf("factory function cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[unitType] = factory
	return nil
}

// Use appends decorators that wrap every unit created afterwards.
func (r *DefaultUnitRegistry) Use(decorators ...UnitDecorator) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range decorators {
		if d != nil {
			r.decorators = append(r.decorators, d)
		}
	}
}

// GetSupportedTypes returns all registered unit types in sorted order.
func (r *DefaultUnitRegistry) GetSupportedTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for unitType := range r.factories {
		types = append(types, unitType)
	}
	slices.Sort(types)

	return types
}
