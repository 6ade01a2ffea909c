package application

import (
	"context"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/ports"
)

// UnitAdapter wraps a ports.Unit to implement the ports.Executable
// interface, enabling units to participate in pipelines, layers and graphs.
type UnitAdapter struct {
	unit ports.Unit
	id   string
}

// NewUnitAdapter creates a new adapter for unit, addressable by id within a
// graph.
func NewUnitAdapter(unit ports.Unit, id string) *UnitAdapter {
	return &UnitAdapter{
		unit: unit,
		id:   id,
	}
}

// Execute delegates to the underlying unit.
func (ua *UnitAdapter) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	return ua.unit.Execute(ctx, state)
}

// ID returns the unique string identifier for this adapter.
func (ua *UnitAdapter) ID() string { return ua.id }

// Unit returns the wrapped unit.
func (ua *UnitAdapter) Unit() ports.Unit { return ua.unit }
