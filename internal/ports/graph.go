package ports

import (
	"context"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
)

// MergeStrategy combines the states produced by the members of a Layer.
// The base state is the layer's input; states are given in declaration
// order. Implementations must be deterministic and must not modify their
// inputs.
type MergeStrategy interface {
	Merge(baseState domain.State, states []domain.State) (domain.State, error)
}

// Executable is any node of a report graph: a wrapped unit, a pipeline or a
// layer.
type Executable interface {
	// Execute runs the node against state and returns the resulting state.
	// The input state is shared with concurrently running nodes and MUST NOT
	// be modified; use domain.With to derive new states.
	Execute(ctx context.Context, state domain.State) (domain.State, error)

	// ID returns the node's identifier, unique within its graph.
	ID() string
}

// Pipeline runs its executables in order, feeding each one the previous
// one's output.
type Pipeline interface {
	Executable

	// Add appends exec. Duplicate ids are rejected.
	Add(exec Executable) error

	// Executables returns the executables in execution order.
	Executables() []Executable
}

// Layer runs independent executables concurrently on the same input state
// and merges their outputs.
type Layer interface {
	Executable

	// Add includes exec in the layer. Duplicate ids are rejected.
	Add(exec Executable) error

	// Executables returns the executables in declaration order.
	Executables() []Executable

	// SetMergeStrategy replaces the default key-union merge. It must be
	// called before Execute.
	SetMergeStrategy(strategy MergeStrategy)
}

// Graph is the directed acyclic execution topology of a report plan.
type Graph interface {
	Executable

	// AddNode registers exec. Its id must be unique within the graph.
	AddNode(exec Executable) error

	// AddEdge declares that targetID runs after sourceID. Unknown ids,
	// duplicate edges and edges that would close a cycle are rejected.
	AddEdge(sourceID, targetID string) error

	// TopologicalSort returns the nodes in an order where every node follows
	// its dependencies. Independent nodes keep their registration order.
	TopologicalSort() ([]Executable, error)

	// HasCycle reports whether the graph contains a cycle.
	HasCycle() bool

	// GetNode looks up a node by id. The returned executable is shared and
	// must be treated as read-only.
	GetNode(id string) (Executable, bool)
}
