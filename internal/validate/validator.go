package validate

import (
	"github.com/geneforge/gfl/internal/ast"
	"github.com/geneforge/gfl/internal/capability"
	"github.com/geneforge/gfl/internal/schema"
)

// Validate runs all four validation passes over a parsed document and
// returns the accumulated result. The capability and schema registries are
// explicit handles so tests and concurrent validations get isolated state.
func Validate(doc *ast.Document, caps *capability.Registry, engine capability.EngineType, schemas *schema.Registry) *Result {
	res := &Result{}

	structuralPass(doc, res)
	symbolPass(doc, res)
	contractPass(doc, schemas, res)
	capabilityPass(doc, caps, engine, res)

	return res
}

// allBlocks returns every block in the document in pre-order: each
// top-level block followed by its nested blocks, in source order.
func allBlocks(doc *ast.Document) []*ast.Block {
	var out []*ast.Block
	var walk func(b *ast.Block)
	walk = func(b *ast.Block) {
		out = append(out, b)
		for _, nb := range b.Blocks {
			walk(nb)
		}
	}
	for _, b := range doc.Blocks {
		walk(b)
	}
	return out
}
