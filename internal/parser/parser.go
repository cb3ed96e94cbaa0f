package parser

import (
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/geneforge/gfl/internal/ast"
	"github.com/geneforge/gfl/internal/token"
)

// Parser parses workflow files and retains their sources so that diagnostics
// can be rendered with code snippets later. The zero value is not usable;
// call New.
type Parser struct {
	inner *hclparse.Parser
}

// New returns a ready Parser.
func New() *Parser {
	return &Parser{inner: hclparse.NewParser()}
}

// Files exposes the parsed sources for diagnostic rendering.
func (p *Parser) Files() map[string]*hcl.File {
	return p.inner.Files()
}

// ParseFile reads and parses a workflow file from disk.
func (p *Parser) ParseFile(path string) (*ast.Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow file %s: %w", path, err)
	}
	return p.ParseBytes(src, path)
}

// ParseBytes parses workflow source held in memory. The filename is used
// only for source spans. Lexing runs first so that a purely lexical failure
// is reported before any grammar is attempted; an empty token stream yields
// an empty document.
func (p *Parser) ParseBytes(src []byte, filename string) (*ast.Document, error) {
	toks, lexDiags := token.Lex(src, filename)
	if lexDiags.HasErrors() {
		return nil, newSyntaxError(lexDiags)
	}
	if len(toks) <= 1 {
		return &ast.Document{Filename: filename}, nil
	}

	f, diags := p.inner.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, newSyntaxError(diags)
	}
	return p.buildDocument(f, filename)
}

// Parse is a convenience for one-shot parsing when diagnostic sources are
// not needed afterwards.
func Parse(src []byte, filename string) (*ast.Document, error) {
	return New().ParseBytes(src, filename)
}

func (p *Parser) buildDocument(f *hcl.File, filename string) (*ast.Document, error) {
	body, ok := f.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("unexpected body type %T for %s", f.Body, filename)
	}

	doc := &ast.Document{Filename: filename}
	var diags hcl.Diagnostics

	for _, attr := range sortedAttributes(body) {
		if attr.Name == "import_schemas" {
			paths, moreDiags := importPaths(attr)
			diags = append(diags, moreDiags...)
			doc.SchemaImports = append(doc.SchemaImports, paths...)
			r := attr.SrcRange
			doc.ImportsRange = &r
			continue
		}
		// Unrecognized top-level attributes are recorded, not rejected, so
		// forward-compatible documents still parse.
		doc.Unknown = append(doc.Unknown, ast.UnknownBlock{Type: attr.Name, DefRange: attr.SrcRange})
	}

	for _, blk := range body.Blocks {
		kind := ast.BlockKind(blk.Type)
		if !ast.TopLevelKinds[kind] {
			doc.Unknown = append(doc.Unknown, ast.UnknownBlock{Type: blk.Type, DefRange: blk.DefRange()})
			continue
		}
		node, moreDiags := p.buildBlock(blk, doc)
		diags = append(diags, moreDiags...)
		if node != nil {
			doc.Blocks = append(doc.Blocks, node)
		}
	}

	if diags.HasErrors() {
		return nil, newSyntaxError(diags)
	}
	return doc, nil
}

// buildBlock translates one hclsyntax block into an ast.Block, recursing
// into nested blocks. Nested keywords are accepted when they are either
// grammar kinds (rule, run, strategy), or top-level kinds appearing inside a
// `run` body.
func (p *Parser) buildBlock(blk *hclsyntax.Block, doc *ast.Document) (*ast.Block, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	node := &ast.Block{
		Kind:      ast.BlockKind(blk.Type),
		DefRange:  blk.DefRange(),
		BodyRange: blk.Body.SrcRange,
	}
	if len(blk.Labels) > 0 {
		node.Label = blk.Labels[0]
		if len(blk.Labels) > 1 {
			diags = append(diags, errDiag(blk.LabelRanges[1],
				"Extraneous block label",
				fmt.Sprintf("A %q block takes at most one label.", blk.Type)))
		}
	}

	for _, attr := range sortedAttributes(blk.Body) {
		val, moreDiags := translateExpr(attr.Expr)
		diags = append(diags, moreDiags...)
		if val == nil {
			continue
		}
		node.Fields = append(node.Fields, ast.Field{
			Name:  attr.Name,
			Value: val,
			Range: attr.SrcRange,
		})
	}

	for _, nested := range blk.Body.Blocks {
		switch {
		case nested.Type == "contract":
			if node.Contract != nil {
				diags = append(diags, errDiag(nested.DefRange(),
					"Duplicate contract block",
					"A block may declare at most one contract."))
				continue
			}
			c, moreDiags := buildContract(nested)
			diags = append(diags, moreDiags...)
			node.Contract = c

		case nestedKindAllowed(nested.Type):
			child, moreDiags := p.buildBlock(nested, doc)
			diags = append(diags, moreDiags...)
			if child != nil {
				node.Blocks = append(node.Blocks, child)
			}

		default:
			doc.Unknown = append(doc.Unknown, ast.UnknownBlock{Type: nested.Type, DefRange: nested.DefRange()})
		}
	}

	return node, diags
}

func nestedKindAllowed(typ string) bool {
	k := ast.BlockKind(typ)
	if ast.TopLevelKinds[k] {
		return true
	}
	switch k {
	case ast.KindRule, ast.KindRun, ast.KindStrategy:
		return true
	}
	return false
}

// importPaths extracts the string list from an import_schemas attribute.
func importPaths(attr *hclsyntax.Attribute) ([]string, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	tuple, ok := attr.Expr.(*hclsyntax.TupleConsExpr)
	if !ok {
		diags = append(diags, errDiag(attr.Expr.Range(),
			"Invalid import_schemas value",
			"import_schemas must be a list of schema document paths."))
		return nil, diags
	}

	var paths []string
	for _, item := range tuple.Exprs {
		v, moreDiags := item.Value(nil)
		if moreDiags.HasErrors() || v.IsNull() || v.Type() != cty.String {
			diags = append(diags, errDiag(item.Range(),
				"Invalid schema path",
				"Each import_schemas entry must be a quoted file path."))
			continue
		}
		paths = append(paths, v.AsString())
	}
	return paths, diags
}

// sortedAttributes returns a body's attributes in source order, since
// hclsyntax stores them in a map.
func sortedAttributes(body *hclsyntax.Body) []*hclsyntax.Attribute {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, a := range body.Attributes {
		attrs = append(attrs, a)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})
	return attrs
}
