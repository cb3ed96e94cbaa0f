package validate

import (
	"github.com/geneforge/gfl/internal/ast"
)

// shape is the expected syntactic form of a field value.
type shape int

const (
	anyShape shape = iota
	scalarShape
	mappingShape
	listShape
	// refShape admits anything that names data: a variable reference, a
	// scalar, or a symbolic reference.
	refShape
)

func (s shape) String() string {
	switch s {
	case scalarShape:
		return "scalar"
	case mappingShape:
		return "mapping"
	case listShape:
		return "list"
	case refShape:
		return "reference or scalar"
	default:
		return "value"
	}
}

func (s shape) matches(v *ast.Value) bool {
	switch s {
	case anyShape:
		return true
	case scalarShape:
		return v.Kind == ast.ScalarVal || v.Kind == ast.TemplateVal
	case mappingShape:
		return v.Kind == ast.MappingVal
	case listShape:
		return v.Kind == ast.ListVal
	case refShape:
		return v.Kind == ast.VarVal || v.Kind == ast.ScalarVal || v.Kind == ast.SymbolVal
	default:
		return false
	}
}

// fieldRule describes one field of a block kind.
type fieldRule struct {
	name     string
	shape    shape
	required bool
}

// blockRule describes the structural grammar of one block kind.
type blockRule struct {
	labeled        bool
	fields         []fieldRule
	requiredBlocks []ast.BlockKind
}

// blockRules is the structural grammar per block kind. Fields not listed
// here are permitted as an open attribute bag for forward compatibility;
// only listed fields are shape-checked, and only required ones are demanded.
var blockRules = map[ast.BlockKind]blockRule{
	ast.KindExperiment: {
		fields: []fieldRule{
			{name: "tool", shape: scalarShape, required: true},
			{name: "type", shape: scalarShape, required: true},
			{name: "params", shape: mappingShape},
			{name: "validates_hypothesis", shape: refShape},
		},
	},
	ast.KindAnalyze: {
		fields: []fieldRule{
			{name: "strategy", shape: scalarShape, required: true},
			{name: "data", shape: refShape, required: true},
			{name: "thresholds", shape: mappingShape},
			{name: "validates_hypothesis", shape: refShape},
		},
	},
	ast.KindDesign: {
		fields: []fieldRule{
			{name: "entity", shape: scalarShape, required: true},
			{name: "model", shape: scalarShape, required: true},
			{name: "count", shape: scalarShape, required: true},
			{name: "output", shape: scalarShape, required: true},
			{name: "objective", shape: mappingShape},
			{name: "constraints", shape: listShape},
			{name: "validates_hypothesis", shape: refShape},
		},
	},
	ast.KindOptimize: {
		fields: []fieldRule{
			{name: "search_space", shape: mappingShape, required: true},
			{name: "strategy", shape: mappingShape, required: true},
			{name: "objective", shape: mappingShape, required: true},
			{name: "budget", shape: mappingShape, required: true},
		},
		requiredBlocks: []ast.BlockKind{ast.KindRun},
	},
	ast.KindBranch: {
		fields: []fieldRule{
			{name: "if", shape: anyShape, required: true},
			{name: "then", shape: mappingShape, required: true},
			{name: "else", shape: mappingShape},
		},
	},
	ast.KindRules: {
		requiredBlocks: []ast.BlockKind{ast.KindRule},
	},
	ast.KindRule: {
		labeled: true,
		fields: []fieldRule{
			{name: "if", shape: anyShape, required: true},
			{name: "then", shape: mappingShape, required: true},
		},
	},
	ast.KindHypothesis: {
		labeled: true,
		fields: []fieldRule{
			{name: "description", shape: scalarShape, required: true},
			{name: "if", shape: anyShape},
			{name: "then", shape: mappingShape},
		},
	},
	ast.KindTimeline: {
		fields: []fieldRule{
			{name: "events", shape: listShape, required: true},
		},
	},
	ast.KindLoci: {
		labeled: true,
		fields: []fieldRule{
			{name: "chromosome", shape: scalarShape, required: true},
			{name: "start", shape: scalarShape, required: true},
			{name: "end", shape: scalarShape, required: true},
			{name: "elements", shape: listShape},
		},
	},
	ast.KindPathways: {
		labeled: true,
		fields: []fieldRule{
			{name: "description", shape: scalarShape},
			{name: "genes", shape: listShape},
		},
	},
	ast.KindComplexes: {
		labeled: true,
		fields: []fieldRule{
			{name: "description", shape: scalarShape},
			{name: "subunits", shape: listShape},
		},
	},
	ast.KindTranscripts: {
		labeled: true,
		fields: []fieldRule{
			{name: "gene", shape: scalarShape},
			{name: "exons", shape: listShape},
		},
	},
	ast.KindProteins: {
		labeled: true,
		fields: []fieldRule{
			{name: "sequence", shape: scalarShape},
			{name: "domains", shape: listShape},
		},
	},
	ast.KindMetabolites: {
		labeled: true,
		fields: []fieldRule{
			{name: "formula", shape: scalarShape},
		},
	},
	ast.KindRefineData: {
		fields: []fieldRule{
			{name: "refinement_config", shape: mappingShape, required: true},
		},
	},
	ast.KindGuidedDiscovery: {
		fields: []fieldRule{
			{name: "design_params", shape: mappingShape, required: true},
			{name: "active_learning_params", shape: mappingShape, required: true},
			{name: "budget", shape: mappingShape, required: true},
			{name: "output", shape: scalarShape, required: true},
		},
	},
	ast.KindSimulate: {
		fields: []fieldRule{
			{name: "target", shape: refShape},
			{name: "duration", shape: scalarShape},
		},
	},
	ast.KindRun:      {},
	ast.KindStrategy: {},
}
