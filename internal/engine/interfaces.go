// Package engine defines the plugin-facing surface the validated AST is
// handed to. The core does not execute anything; it guarantees only that a
// block's model/strategy name is a well-formed identifier. Whether a plugin
// of that name exists, and what it does, is decided here by whoever embeds
// the front end.
package engine

import (
	"context"

	"github.com/zclconf/go-cty/cty"

	"github.com/geneforge/gfl/internal/ast"
	"github.com/geneforge/gfl/internal/capability"
)

// Plugin is implemented by every registered executor. Capabilities lets a
// plugin contribute the capability metadata the validator warns against.
type Plugin interface {
	Name() string
	Capabilities() []capability.FeatureID
}

// Generator produces candidate entities for a design block.
type Generator interface {
	Plugin
	Generate(ctx context.Context, block *ast.Block, params map[string]cty.Value) ([]cty.Value, error)
}

// Optimizer drives the search loop of an optimize or guided_discovery
// block, proposing parameter assignments within the declared search space.
type Optimizer interface {
	Plugin
	Propose(ctx context.Context, block *ast.Block, history []Observation) (map[string]cty.Value, error)
}

// PriorSource supplies prior knowledge (e.g. learned model scores) that an
// optimizer may seed its search with.
type PriorSource interface {
	Plugin
	Priors(ctx context.Context, block *ast.Block) (map[string]cty.Value, error)
}

// Observation is one completed evaluation inside an optimization loop.
type Observation struct {
	Params    map[string]cty.Value
	Objective cty.Value
}
