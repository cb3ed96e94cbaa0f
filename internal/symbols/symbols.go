// Package symbols implements the validator's symbol table: a call-scoped map
// from entity identifier to the AST block that defines it. Entries are
// non-owning back-references; the table is built for one validation pass and
// discarded with it.
package symbols

import (
	"fmt"

	"github.com/geneforge/gfl/internal/ast"
)

// refKindFor maps a symbolic-reference keyword to the block kind that
// defines entities of that kind.
var refKindFor = map[string]ast.BlockKind{
	"locus":      ast.KindLoci,
	"pathway":    ast.KindPathways,
	"complex":    ast.KindComplexes,
	"hypothesis": ast.KindHypothesis,
}

// DefiningKind returns the block kind that defines entities referenced by
// the given call keyword.
func DefiningKind(refKeyword string) (ast.BlockKind, bool) {
	k, ok := refKindFor[refKeyword]
	return k, ok
}

type entry struct {
	kind  ast.BlockKind
	block *ast.Block
}

// Table maps entity identifiers to their defining blocks.
type Table struct {
	entries map[string]entry
}

// NewTable returns an empty symbol table.
func NewTable() *Table {
	return &Table{entries: make(map[string]entry)}
}

// Define records an entity definition. Defining the same identifier twice is
// an error carrying the original definition's location.
func (t *Table) Define(id string, block *ast.Block) error {
	if prev, exists := t.entries[id]; exists {
		return fmt.Errorf("entity %q already defined at %s", id, prev.block.DefRange)
	}
	t.entries[id] = entry{kind: block.Kind, block: block}
	return nil
}

// Resolve returns the block defining the identifier, regardless of kind.
func (t *Table) Resolve(id string) (*ast.Block, bool) {
	e, ok := t.entries[id]
	if !ok {
		return nil, false
	}
	return e.block, true
}

// ResolveKind returns the defining block only when the entity was defined by
// a block of the wanted kind, so that locus(X) cannot resolve to a pathway.
func (t *Table) ResolveKind(id string, want ast.BlockKind) (*ast.Block, bool) {
	e, ok := t.entries[id]
	if !ok || e.kind != want {
		return nil, false
	}
	return e.block, true
}

// Len returns the number of defined entities.
func (t *Table) Len() int {
	return len(t.entries)
}
