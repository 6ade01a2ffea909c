package application

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/ports"
)

var (
	_ ports.Pipeline = (*Pipeline)(nil)
	_ ports.Layer    = (*Layer)(nil)
	_ ports.Graph    = (*Graph)(nil)
)

// Pipeline is a sequential execution container that processes executables
// in strict order, where each executable's output becomes the input for
// the next executable in the sequence.
type Pipeline struct {
	id          string
	executables []ports.Executable
	// idSet tracks executable IDs for O(1) duplicate detection.
	idSet map[string]struct{}
	mu    sync.RWMutex
}

// NewPipeline creates a new sequential execution pipeline with the specified
// identifier.
func NewPipeline(id string) *Pipeline {
	return &Pipeline{
		id:          id,
		executables: make([]ports.Executable, 0),
		idSet:       make(map[string]struct{}),
	}
}

// Execute processes all executables in this pipeline sequentially,
// passing the output state from each executable as input to the next.
// Execute stops at the first failure or when ctx is cancelled between
// executables, returning the last successful state.
func (p *Pipeline) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	executables := p.Executables()

	currentState := state
	for _, exec := range executables {
		if err := ctx.Err(); err != nil {
			return currentState, err
		}
		newState, err := exec.Execute(ctx, currentState)
		if err != nil {
			return currentState, fmt.Errorf("pipeline %s: execution failed at %s: %w", p.id, exec.ID(), err)
		}
		currentState = newState
	}

	return currentState, nil
}

// ID returns the unique string identifier for this pipeline.
func (p *Pipeline) ID() string {
	return p.id
}

// Add appends an executable to the end of this pipeline's execution
// sequence. Add returns an error if the executable is nil or if an
// executable with the same ID already exists in the pipeline.
func (p *Pipeline) Add(exec ports.Executable) error {
	if exec == nil {
		return fmt.Errorf("cannot add nil executable to pipeline")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	execID := exec.ID()
	if _, exists := p.idSet[execID]; exists {
		return fmt.Errorf("executable with ID %s already exists in pipeline", execID)
	}

	p.executables = append(p.executables, exec)
	p.idSet[execID] = struct{}{}
	return nil
}

// Executables returns a copy of the ordered list of executables.
func (p *Pipeline) Executables() []ports.Executable {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return slices.Clone(p.executables)
}

// Layer is a parallel execution container that runs multiple executables
// concurrently. Every member receives the same input state; their outputs
// are merged in declaration order once all of them succeed.
type Layer struct {
	id          string
	executables []ports.Executable
	// idSet tracks executable IDs for O(1) duplicate detection.
	idSet map[string]struct{}
	// mergeStrategy combines member outputs; nil means keyUnionMerge.
	mergeStrategy ports.MergeStrategy
	// concurrencyLimit bounds the number of members running at once.
	concurrencyLimit int
	mu               sync.RWMutex
}

// NewLayer creates a new parallel execution layer with the specified
// identifier.
func NewLayer(id string) *Layer {
	return &Layer{
		id:               id,
		executables:      make([]ports.Executable, 0),
		idSet:            make(map[string]struct{}),
		concurrencyLimit: runtime.NumCPU() * 2,
	}
}

// Execute runs all executables in this layer concurrently with bounded
// parallelism. Results are collected by declaration index, so the merge is
// deterministic regardless of completion order. Every member runs to
// completion; all failures are reported together.
func (l *Layer) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	l.mu.RLock()
	executables := slices.Clone(l.executables)
	limit := l.concurrencyLimit
	strategy := l.mergeStrategy
	l.mu.RUnlock()

	if len(executables) == 0 {
		return state, nil
	}
	if limit <= 0 {
		limit = runtime.NumCPU() * 2
	}

	states := make([]domain.State, len(executables))
	errs := make([]error, len(executables))

	// Member errors are kept in errs rather than returned to the group so a
	// failing member does not cancel its siblings.
	var g errgroup.Group
	g.SetLimit(limit)
	for i, exec := range executables {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = fmt.Errorf("executable %s: %w", exec.ID(), err)
				return nil
			}
			newState, err := exec.Execute(ctx, state)
			if err != nil {
				errs[i] = fmt.Errorf("executable %s: %w", exec.ID(), err)
				return nil
			}
			states[i] = newState
			return nil
		})
	}
	_ = g.Wait()

	var failed []error
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	if len(failed) > 0 {
		return state, fmt.Errorf("layer %s failed with %d errors: %w", l.id, len(failed), errors.Join(failed...))
	}

	if strategy == nil {
		strategy = keyUnionMerge{}
	}
	mergedState, err := strategy.Merge(state, states)
	if err != nil {
		return state, fmt.Errorf("layer %s: merge failed: %w", l.id, err)
	}

	return mergedState, nil
}

// ID returns the unique string identifier for this layer.
func (l *Layer) ID() string {
	return l.id
}

// Add includes an executable in this layer's parallel execution group.
// Add returns an error if the executable is nil or if an executable
// with the same ID already exists in the layer.
func (l *Layer) Add(exec ports.Executable) error {
	if exec == nil {
		return fmt.Errorf("cannot add nil executable to layer")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	execID := exec.ID()
	if _, exists := l.idSet[execID]; exists {
		return fmt.Errorf("executable with ID %s already exists in layer", execID)
	}

	l.executables = append(l.executables, exec)
	l.idSet[execID] = struct{}{}
	return nil
}

// Executables returns a copy of the layer's executables in declaration
// order.
func (l *Layer) Executables() []ports.Executable {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return slices.Clone(l.executables)
}

// SetMergeStrategy configures how parallel execution results are combined.
func (l *Layer) SetMergeStrategy(strategy ports.MergeStrategy) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.mergeStrategy = strategy
}

// SetConcurrencyLimit configures the maximum number of executables that
// can run concurrently within this layer. Zero or negative values fall back
// to runtime.NumCPU() * 2.
func (l *Layer) SetConcurrencyLimit(limit int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.concurrencyLimit = limit
}

// Graph is a directed acyclic graph of executables. Executing it runs every
// node once, in topological order, threading the state through them.
type Graph struct {
	nodes map[string]ports.Executable
	// order records node registration order; ties in the topological sort
	// are broken by it.
	order []string
	// edges is the adjacency list: node ID -> list of target IDs.
	edges map[string][]string
	// edgeSet provides O(1) duplicate edge detection ("source->target").
	edgeSet  map[string]struct{}
	inDegree map[string]int
	mu       sync.RWMutex
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:    make(map[string]ports.Executable),
		edges:    make(map[string][]string),
		edgeSet:  make(map[string]struct{}),
		inDegree: make(map[string]int),
	}
}

// Execute runs the graph's nodes sequentially in topological order. Context
// cancellation is checked between nodes; the state returned alongside an
// error is the last state successfully produced.
func (g *Graph) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	nodes, err := g.TopologicalSort()
	if err != nil {
		return state, err
	}

	current := state
	for _, node := range nodes {
		if err := ctx.Err(); err != nil {
			return current, fmt.Errorf("graph cancelled before %s: %w", node.ID(), err)
		}
		next, err := node.Execute(ctx, current)
		if err != nil {
			return current, fmt.Errorf("node %s: %w", node.ID(), err)
		}
		current = next
	}
	return current, nil
}

// ID identifies the graph as a whole.
func (g *Graph) ID() string { return "graph" }

// AddNode registers an executable component as a node in this graph.
// AddNode returns an error if the executable is nil or if an executable
// with the same ID already exists in the graph.
func (g *Graph) AddNode(exec ports.Executable) error {
	if exec == nil {
		return fmt.Errorf("cannot add nil executable to graph")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	id := exec.ID()
	if _, exists := g.nodes[id]; exists {
		return fmt.Errorf("node with ID %s already exists in graph", id)
	}

	g.nodes[id] = exec
	g.order = append(g.order, id)
	g.edges[id] = make([]string, 0)
	g.inDegree[id] = 0

	return nil
}

// AddEdge establishes a directed dependency relationship where the
// target executable cannot begin until the source executable completes.
// The edge is rolled back if it would create a cycle.
func (g *Graph) AddEdge(sourceID, targetID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.nodes[sourceID]; !exists {
		return fmt.Errorf("source node %s does not exist", sourceID)
	}
	if _, exists := g.nodes[targetID]; !exists {
		return fmt.Errorf("target node %s does not exist", targetID)
	}

	edgeKey := sourceID + "->" + targetID
	if _, exists := g.edgeSet[edgeKey]; exists {
		return fmt.Errorf("edge from %s to %s already exists", sourceID, targetID)
	}

	g.edges[sourceID] = append(g.edges[sourceID], targetID)
	g.edgeSet[edgeKey] = struct{}{}
	g.inDegree[targetID]++

	if g.hasCycleUnsafe() {
		g.edges[sourceID] = g.edges[sourceID][:len(g.edges[sourceID])-1]
		delete(g.edgeSet, edgeKey)
		g.inDegree[targetID]--
		return fmt.Errorf("adding edge from %s to %s would create a cycle", sourceID, targetID)
	}

	return nil
}

// TopologicalSort computes an execution order in which dependencies always
// precede dependents. It uses Kahn's algorithm, always picking the ready
// node registered first, so the result is stable across runs.
func (g *Graph) TopologicalSort() ([]ports.Executable, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	position := make(map[string]int, len(g.order))
	inDegree := make(map[string]int, len(g.inDegree))
	for i, id := range g.order {
		position[id] = i
		inDegree[id] = g.inDegree[id]
	}

	var ready []string
	for _, id := range g.order {
		if inDegree[id] == 0 {
			ready = append(ready, id)
		}
	}

	result := make([]ports.Executable, 0, len(g.nodes))
	for len(ready) > 0 {
		nodeID := ready[0]
		ready = ready[1:]
		result = append(result, g.nodes[nodeID])

		for _, neighbor := range g.edges[nodeID] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				ready = append(ready, neighbor)
			}
		}
		slices.SortFunc(ready, func(a, b string) int { return position[a] - position[b] })
	}

	if len(result) != len(g.nodes) {
		return nil, fmt.Errorf("graph contains a cycle")
	}

	return result, nil
}

// HasCycle reports whether the graph contains any circular dependency.
func (g *Graph) HasCycle() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.hasCycleUnsafe()
}

// hasCycleUnsafe performs cycle detection using depth-first search with
// three-color marking. It must be called with the graph mutex held.
func (g *Graph) hasCycleUnsafe() bool {
	const (
		white = iota
		gray
		black
	)
	colors := make(map[string]int, len(g.nodes))

	var dfs func(nodeID string) bool
	dfs = func(nodeID string) bool {
		colors[nodeID] = gray
		for _, neighbor := range g.edges[nodeID] {
			if colors[neighbor] == gray {
				return true
			}
			if colors[neighbor] == white && dfs(neighbor) {
				return true
			}
		}
		colors[nodeID] = black
		return false
	}

	for _, id := range g.order {
		if colors[id] == white && dfs(id) {
			return true
		}
	}
	return false
}

// GetNode retrieves an executable by its unique identifier.
func (g *Graph) GetNode(id string) (ports.Executable, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	exec, exists := g.nodes[id]
	return exec, exists
}

// keyUnionMerge keeps every key written by any layer member. Members are
// applied in declaration order, so on a conflicting key the later member
// wins.
type keyUnionMerge struct{}

func (keyUnionMerge) Merge(baseState domain.State, states []domain.State) (domain.State, error) {
	return baseState.Merge(states...), nil
}
