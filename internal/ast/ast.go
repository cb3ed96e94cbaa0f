package ast

import (
	"github.com/hashicorp/hcl/v2"
)

// BlockKind identifies which of the recognized GFL block types a Block is.
type BlockKind string

const (
	KindExperiment      BlockKind = "experiment"
	KindAnalyze         BlockKind = "analyze"
	KindDesign          BlockKind = "design"
	KindOptimize        BlockKind = "optimize"
	KindBranch          BlockKind = "branch"
	KindRules           BlockKind = "rules"
	KindHypothesis      BlockKind = "hypothesis"
	KindTimeline        BlockKind = "timeline"
	KindLoci            BlockKind = "loci"
	KindPathways        BlockKind = "pathways"
	KindComplexes       BlockKind = "complexes"
	KindRefineData      BlockKind = "refine_data"
	KindGuidedDiscovery BlockKind = "guided_discovery"
	KindTranscripts     BlockKind = "transcripts"
	KindProteins        BlockKind = "proteins"
	KindMetabolites     BlockKind = "metabolites"
	KindSimulate        BlockKind = "simulate"

	// Nested-only kinds.
	KindRule       BlockKind = "rule"
	KindRun        BlockKind = "run"
	KindStrategy   BlockKind = "strategy"
	KindUnknownTag BlockKind = ""
)

// TopLevelKinds is the closed set of block keywords recognized at the top
// level of a document, in no particular order.
var TopLevelKinds = map[BlockKind]bool{
	KindExperiment:      true,
	KindAnalyze:         true,
	KindDesign:          true,
	KindOptimize:        true,
	KindBranch:          true,
	KindRules:           true,
	KindHypothesis:      true,
	KindTimeline:        true,
	KindLoci:            true,
	KindPathways:        true,
	KindComplexes:       true,
	KindRefineData:      true,
	KindGuidedDiscovery: true,
	KindTranscripts:     true,
	KindProteins:        true,
	KindMetabolites:     true,
	KindSimulate:        true,
}

// LabeledKinds are block kinds that declare a named entity and therefore
// carry exactly one label, e.g. `loci "TP53" { ... }`.
var LabeledKinds = map[BlockKind]bool{
	KindLoci:        true,
	KindPathways:    true,
	KindComplexes:   true,
	KindHypothesis:  true,
	KindTranscripts: true,
	KindProteins:    true,
	KindMetabolites: true,
	KindRule:        true,
}

// UnknownBlock records a top-level block whose keyword is not part of the
// grammar. Unknown blocks survive parsing so the validator can surface them
// as forward-compatibility warnings rather than hard failures.
type UnknownBlock struct {
	Type     string
	DefRange hcl.Range
}

// Document is the root of a parsed workflow file. Blocks preserve source
// order; the order is significant for deterministic re-serialization but not
// for validation.
type Document struct {
	Filename string
	Blocks   []*Block
	Unknown  []UnknownBlock

	// SchemaImports holds the paths listed in the document's
	// `import_schemas` attribute, relative to the document itself.
	SchemaImports []string
	ImportsRange  *hcl.Range
}

// BlocksOfKind returns all top-level blocks of the given kind, in source order.
func (d *Document) BlocksOfKind(kind BlockKind) []*Block {
	var out []*Block
	for _, b := range d.Blocks {
		if b.Kind == kind {
			out = append(out, b)
		}
	}
	return out
}

// Field is one name/value pair in a block body. Fields preserve the order in
// which they appear in the source.
type Field struct {
	Name  string
	Value *Value
	Range hcl.Range
}

// Block is a single parsed block node. Label is empty for unlabeled kinds.
type Block struct {
	Kind     BlockKind
	Label    string
	Fields   []Field
	Blocks   []*Block
	Contract *Contract

	DefRange  hcl.Range
	BodyRange hcl.Range
}

// Field returns the named field's value, or false when the block does not
// declare it.
func (b *Block) Field(name string) (*Value, bool) {
	for _, f := range b.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// FieldRange returns the source range of the named field, falling back to
// the block's definition range when the field is absent.
func (b *Block) FieldRange(name string) hcl.Range {
	for _, f := range b.Fields {
		if f.Name == name {
			return f.Range
		}
	}
	return b.DefRange
}

// BlocksOfKind returns the block's nested blocks of the given kind.
func (b *Block) BlocksOfKind(kind BlockKind) []*Block {
	var out []*Block
	for _, nb := range b.Blocks {
		if nb.Kind == kind {
			out = append(out, nb)
		}
	}
	return out
}

// StringField returns the named field's value as a string when it is a
// string scalar. The second result reports whether such a field exists.
func (b *Block) StringField(name string) (string, bool) {
	v, ok := b.Field(name)
	if !ok || v.Kind != ScalarVal {
		return "", false
	}
	return v.AsString()
}
