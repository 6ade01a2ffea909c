package application

import (
	"gopkg.in/yaml.v3"
)

// ReportPlan defines a complete report plan and serves as the primary
// configuration entry point for the report runner.
// Use ReportPlan when describing which analyses to compute over a roster
// and how their units are ordered and parallelized.
type ReportPlan struct {
	// Version specifies the plan schema version using semantic versioning.
	Version string `yaml:"version" validate:"required,semver"`
	// Metadata contains descriptive information about the plan.
	Metadata Metadata `yaml:"metadata" validate:"required"`
	// Units defines the report units that execute within this plan, each
	// with its own type-specific parameters.
	Units []UnitConfig `yaml:"units" validate:"required,min=1,dive"`
	// Graph specifies the execution topology that determines how units
	// are grouped and the order in which they execute.
	Graph GraphTopology `yaml:"graph"`
}

// Metadata provides descriptive information about a report plan.
type Metadata struct {
	// Name identifies the plan; it is copied into every report the plan
	// produces.
	Name string `yaml:"name" validate:"required,min=1,max=255"`
	// Description explains what the plan reports on.
	Description string `yaml:"description" validate:"max=1000"`
	// Tags are categorical labels, e.g. "term-1" or "at-risk".
	Tags []string `yaml:"tags" validate:"max=20,dive,min=1,max=50"`
	// Labels are arbitrary key-value pairs for external systems.
	Labels map[string]string `yaml:"labels" validate:"max=50"`
}

// UnitConfig defines a single report unit within a plan.
type UnitConfig struct {
	// ID is the unique identifier for this unit within the plan.
	ID string `yaml:"id" validate:"required,nodeid,max=100"`
	// Type selects the unit implementation.
	Type string `yaml:"type" validate:"required,oneof=subject_scores cohort_stats ranking gap_analysis radar"`
	// Parameters contains type-specific configuration; it is validated
	// against the unit type's config struct at load time.
	Parameters yaml.Node `yaml:"parameters"`
}

// GraphTopology specifies how units are organized for execution.
// Units not listed in any pipeline or layer run as standalone nodes.
type GraphTopology struct {
	// Pipelines define sequential chains where units execute in order.
	Pipelines []PipelineConfig `yaml:"pipelines" validate:"dive"`
	// Layers define parallel groups whose units all see the same input.
	Layers []LayerConfig `yaml:"layers" validate:"dive"`
	// Edges order nodes: From completes before To starts.
	Edges []EdgeConfig `yaml:"edges" validate:"dive"`
}

// PipelineConfig defines a sequential execution chain.
type PipelineConfig struct {
	ID    string   `yaml:"id" validate:"required,nodeid,max=100"`
	Units []string `yaml:"units" validate:"required,min=1,dive,nodeid"`
}

// LayerConfig defines a parallel execution group. A layer needs at least two
// units; a single unit is simply a standalone node.
type LayerConfig struct {
	ID    string   `yaml:"id" validate:"required,nodeid,max=100"`
	Units []string `yaml:"units" validate:"required,min=2,dive,nodeid"`
}

// EdgeConfig establishes a directed ordering between two nodes (units,
// pipelines or layers).
type EdgeConfig struct {
	From string `yaml:"from" validate:"required,nodeid"`
	To   string `yaml:"to" validate:"required,nodeid"`
}
