package application

import (
	"bytes"
	"context"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/ports"
)

//go:embed default_plan.yaml
var defaultPlanYAML []byte

// CompiledPlan is a validated report plan together with its executable
// graph.
// WARNING: compiled plans are cached and shared. Callers MUST NOT call
// AddNode or AddEdge on Graph.
type CompiledPlan struct {
	Config *ReportPlan
	Graph  *Graph
	// Hash is the SHA-256 of the normalized plan, used as the cache key.
	Hash string
}

// Name returns the plan's metadata name.
func (p *CompiledPlan) Name() string { return p.Config.Metadata.Name }

// PlanLoader parses, validates and compiles report plans, caching compiled
// plans by the SHA-256 of their normalized YAML.
type PlanLoader struct {
	validator    *validator.Validate
	unitRegistry ports.UnitRegistry
	cache        map[string]*CompiledPlan
	cacheMu      sync.RWMutex
	// sf prevents duplicate compilation when several goroutines request the
	// same plan simultaneously.
	sf singleflight.Group
}

// NewPlanLoader creates a plan loader that builds units through
// unitRegistry.
func NewPlanLoader(unitRegistry ports.UnitRegistry) (*PlanLoader, error) {
	if unitRegistry == nil {
		return nil, fmt.Errorf("unit registry is required")
	}

	v := validator.New()
	if err := RegisterPlanValidators(v); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	return &PlanLoader{
		validator:    v,
		unitRegistry: unitRegistry,
		cache:        make(map[string]*CompiledPlan),
	}, nil
}

func (pl *PlanLoader) load(ctx context.Context, data []byte) (*CompiledPlan, error) {
	config, err := parsePlanYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	hash, err := calculatePlanHash(config)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate hash: %w", err)
	}

	v, err, _ := pl.sf.Do(hash, func() (any, error) {
		// Check the cache inside singleflight to close the race between the
		// lookup and the group call.
		if plan, ok := pl.getCachedPlan(hash); ok {
			return plan, nil
		}

		if err := pl.validateConfig(config); err != nil {
			return nil, fmt.Errorf("validation failed: %w", err)
		}

		graph, err := pl.buildGraph(ctx, config)
		if err != nil {
			return nil, fmt.Errorf("failed to build graph: %w", err)
		}

		plan := &CompiledPlan{Config: config, Graph: graph, Hash: hash}
		pl.cachePlan(hash, plan)
		return plan, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*CompiledPlan), nil
}

// LoadFromFile loads and compiles a report plan from a YAML file.
func (pl *PlanLoader) LoadFromFile(ctx context.Context, path string) (*CompiledPlan, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return pl.load(ctx, data)
}

// LoadFromReader loads and compiles a report plan from r.
func (pl *PlanLoader) LoadFromReader(ctx context.Context, r io.Reader) (*CompiledPlan, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}

	return pl.load(ctx, data)
}

// LoadDefault compiles the built-in plan: student results followed by a
// parallel layer of cohort statistics, ranking and gap analysis.
func (pl *PlanLoader) LoadDefault(ctx context.Context) (*CompiledPlan, error) {
	return pl.load(ctx, defaultPlanYAML)
}

// DefaultPlanYAML returns a copy of the built-in plan's source.
func DefaultPlanYAML() []byte { return bytes.Clone(defaultPlanYAML) }

// parsePlanYAML decodes data strictly, so misspelled fields are reported
// instead of silently ignored.
func parsePlanYAML(data []byte) (*ReportPlan, error) {
	var config ReportPlan
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("YAML decode failed: %w", err)
	}
	return &config, nil
}

func (pl *PlanLoader) validateConfig(config *ReportPlan) error {
	if err := pl.validator.Struct(config); err != nil {
		return fmt.Errorf("struct validation failed: %w", err)
	}

	if err := validateSemantics(config); err != nil {
		return fmt.Errorf("semantic validation failed: %w", err)
	}

	return nil
}

// validateSemantics checks the rules struct tags cannot express: ids are
// unique across units, pipelines and layers; references resolve; a unit is
// placed at most once; unit parameters fit their type.
func validateSemantics(config *ReportPlan) error {
	allNodeIDs := make(map[string]string) // ID -> node kind.
	unitIDs := make(map[string]struct{})

	for _, unit := range config.Units {
		if kind, exists := allNodeIDs[unit.ID]; exists {
			return fmt.Errorf("duplicate ID %q: already used by %s", unit.ID, kind)
		}
		allNodeIDs[unit.ID] = "unit"
		unitIDs[unit.ID] = struct{}{}

		if err := ValidateUnitParameters(unit.Type, unit.ID, unit.Parameters); err != nil {
			return fmt.Errorf("unit %s parameter validation failed: %w", unit.ID, err)
		}
	}

	placedIn := make(map[string]string) // unit ID -> container ID.
	place := func(kind, containerID string, members []string) error {
		if prev, exists := allNodeIDs[containerID]; exists {
			return fmt.Errorf("duplicate ID %q: already used by %s", containerID, prev)
		}
		allNodeIDs[containerID] = kind

		for _, unitID := range members {
			if _, exists := unitIDs[unitID]; !exists {
				return fmt.Errorf("%s %s references non-existent unit: %s", kind, containerID, unitID)
			}
			if prev, exists := placedIn[unitID]; exists {
				return fmt.Errorf("unit %s is placed in both %s and %s", unitID, prev, containerID)
			}
			placedIn[unitID] = containerID
		}
		return nil
	}

	for _, pipeline := range config.Graph.Pipelines {
		if err := place("pipeline", pipeline.ID, pipeline.Units); err != nil {
			return err
		}
	}
	for _, layer := range config.Graph.Layers {
		if err := place("layer", layer.ID, layer.Units); err != nil {
			return err
		}
	}

	for _, edge := range config.Graph.Edges {
		if _, exists := allNodeIDs[edge.From]; !exists {
			return fmt.Errorf("edge references non-existent source node: %s", edge.From)
		}
		if _, exists := allNodeIDs[edge.To]; !exists {
			return fmt.Errorf("edge references non-existent target node: %s", edge.To)
		}
		if _, placed := placedIn[edge.From]; placed {
			return fmt.Errorf("edge source %s is inside %s; reference the container instead", edge.From, placedIn[edge.From])
		}
		if _, placed := placedIn[edge.To]; placed {
			return fmt.Errorf("edge target %s is inside %s; reference the container instead", edge.To, placedIn[edge.To])
		}
	}

	return nil
}

// buildGraph instantiates units through the registry and assembles
// pipelines, layers, standalone units and edges. Nodes are registered in
// declaration order: pipelines, then layers, then standalone units.
func (pl *PlanLoader) buildGraph(ctx context.Context, config *ReportPlan) (*Graph, error) {
	graph := NewGraph()

	units := make(map[string]ports.Unit, len(config.Units))
	for _, unitConfig := range config.Units {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		unit, err := pl.createUnit(unitConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create unit %s: %w", unitConfig.ID, err)
		}
		units[unitConfig.ID] = unit
	}

	placed := make(map[string]struct{})

	for _, pipelineConfig := range config.Graph.Pipelines {
		pipeline := NewPipeline(pipelineConfig.ID)
		for _, unitID := range pipelineConfig.Units {
			if err := pipeline.Add(NewUnitAdapter(units[unitID], unitID)); err != nil {
				return nil, fmt.Errorf("failed to add unit to pipeline: %w", err)
			}
			placed[unitID] = struct{}{}
		}
		if err := graph.AddNode(pipeline); err != nil {
			return nil, fmt.Errorf("failed to add pipeline to graph: %w", err)
		}
	}

	for _, layerConfig := range config.Graph.Layers {
		layer := NewLayer(layerConfig.ID)
		for _, unitID := range layerConfig.Units {
			if err := layer.Add(NewUnitAdapter(units[unitID], unitID)); err != nil {
				return nil, fmt.Errorf("failed to add unit to layer: %w", err)
			}
			placed[unitID] = struct{}{}
		}
		if err := graph.AddNode(layer); err != nil {
			return nil, fmt.Errorf("failed to add layer to graph: %w", err)
		}
	}

	for _, unitConfig := range config.Units {
		if _, isPlaced := placed[unitConfig.ID]; isPlaced {
			continue
		}
		if err := graph.AddNode(NewUnitAdapter(units[unitConfig.ID], unitConfig.ID)); err != nil {
			return nil, fmt.Errorf("failed to add unit to graph: %w", err)
		}
	}

	for _, edge := range config.Graph.Edges {
		if err := graph.AddEdge(edge.From, edge.To); err != nil {
			return nil, fmt.Errorf("failed to add edge: %w", err)
		}
	}

	return graph, nil
}

func (pl *PlanLoader) createUnit(config UnitConfig) (ports.Unit, error) {
	params, err := decodeParameterMap(config.Parameters)
	if err != nil {
		return nil, err
	}

	unit, err := pl.unitRegistry.CreateUnit(config.Type, config.ID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create unit: %w", err)
	}
	return unit, nil
}

// calculatePlanHash hashes the re-encoded plan so that formatting and
// comment differences map to the same cache entry.
func calculatePlanHash(config *ReportPlan) (string, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(config); err != nil {
		return "", fmt.Errorf("failed to encode config for hashing: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("failed to encode config for hashing: %w", err)
	}

	hash := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(hash[:]), nil
}

func (pl *PlanLoader) getCachedPlan(hash string) (*CompiledPlan, bool) {
	pl.cacheMu.RLock()
	defer pl.cacheMu.RUnlock()

	plan, ok := pl.cache[hash]
	return plan, ok
}

func (pl *PlanLoader) cachePlan(hash string, plan *CompiledPlan) {
	pl.cacheMu.Lock()
	defer pl.cacheMu.Unlock()

	pl.cache[hash] = plan
}

// ClearCache drops all compiled plans, forcing subsequent loads to
// recompile.
func (pl *PlanLoader) ClearCache() {
	pl.cacheMu.Lock()
	defer pl.cacheMu.Unlock()

	pl.cache = make(map[string]*CompiledPlan)
}
