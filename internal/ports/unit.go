// Package ports defines the contracts between the report application layer
// and its infrastructure: report units, the execution topology, the roster
// source and metrics collection.
package ports

import (
	"context"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
)

// Unit is the building block of a report plan. Each Unit reads the roster
// (and possibly earlier results) from the State and writes its own results
// under dedicated keys. Units must be stateless and safe for concurrent use.
type Unit interface {
	// Name returns the unit's identifier within a plan.
	Name() string

	// Execute computes the unit's results and returns a new State carrying
	// them. The input State must not be modified.
	//
	//	newState, err := unit.Execute(ctx, state)
	//	if err != nil {
	//	    return state, fmt.Errorf("unit %s: %w", unit.Name(), err)
	//	}
	Execute(ctx context.Context, state domain.State) (domain.State, error)

	// Validate reports whether the unit's configuration is usable.
	Validate() error
}

// UnitFactory builds a unit of one type from its plan id and decoded
// parameters.
type UnitFactory func(id string, params map[string]any) (Unit, error)

// UnitRegistry maps unit type names to factories.
type UnitRegistry interface {
	// CreateUnit builds a unit of unitType. It fails for unknown types and
	// for parameters the factory rejects.
	CreateUnit(unitType, id string, params map[string]any) (Unit, error)

	// RegisterUnitFactory adds or replaces the factory for unitType.
	RegisterUnitFactory(unitType string, factory UnitFactory) error

	// GetSupportedTypes lists the registered unit types in sorted order.
	GetSupportedTypes() []string
}
