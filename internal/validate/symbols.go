package validate

import (
	"fmt"

	"github.com/geneforge/gfl/internal/ast"
	"github.com/geneforge/gfl/internal/symbols"
)

// entityKinds are the block kinds that define named entities.
var entityKinds = map[ast.BlockKind]bool{
	ast.KindLoci:        true,
	ast.KindPathways:    true,
	ast.KindComplexes:   true,
	ast.KindHypothesis:  true,
	ast.KindTranscripts: true,
	ast.KindProteins:    true,
	ast.KindMetabolites: true,
}

// symbolPass builds the symbol table from entity-defining blocks, then
// resolves every symbolic reference and validates_hypothesis field against
// it. The table lives only for this pass.
func symbolPass(doc *ast.Document, res *Result) {
	table := symbols.NewTable()

	for _, b := range allBlocks(doc) {
		if !entityKinds[b.Kind] || b.Label == "" {
			continue
		}
		if err := table.Define(b.Label, b); err != nil {
			res.errorf(b.DefRange, CodeDuplicateEntity, "Rename one of the definitions.", "%s", err)
		}
	}

	for _, b := range allBlocks(doc) {
		resolveBlockRefs(b, table, res)
	}
}

func resolveBlockRefs(b *ast.Block, table *symbols.Table, res *Result) {
	for _, f := range b.Fields {
		for _, sv := range f.Value.SymbolRefs() {
			ref := sv.Symbol
			wantKind, ok := symbols.DefiningKind(ref.Kind)
			if !ok {
				continue
			}
			if _, found := table.ResolveKind(ref.ID, wantKind); !found {
				res.errorf(sv.Range, CodeUnresolvedRef,
					fmt.Sprintf("Define a %s %q block, or correct the identifier.", wantKind, ref.ID),
					"%s block references %s(%s), but no %s block defines %q",
					b.Kind, ref.Kind, ref.ID, wantKind, ref.ID)
			}
		}
	}

	// validates_hypothesis takes a bare hypothesis identifier rather than
	// call syntax, so it resolves separately.
	if v, ok := b.Field("validates_hypothesis"); ok {
		id := ""
		switch v.Kind {
		case ast.VarVal:
			id = v.Var
		case ast.ScalarVal:
			id, _ = v.AsString()
		}
		if id == "" {
			return
		}
		if _, found := table.ResolveKind(id, ast.KindHypothesis); !found {
			res.errorf(v.Range, CodeUnresolvedRef,
				fmt.Sprintf("Define hypothesis %q, or correct the identifier.", id),
				"%s block validates hypothesis %q, but no hypothesis block defines it", b.Kind, id)
		}
	}
}
