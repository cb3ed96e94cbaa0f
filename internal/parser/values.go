package parser

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/geneforge/gfl/internal/ast"
)

// symbolKinds are the recognized symbolic-reference call keywords.
var symbolKinds = map[string]bool{
	"locus":      true,
	"pathway":    true,
	"complex":    true,
	"hypothesis": true,
}

// translateExpr converts an hclsyntax expression into the closed GFL value
// grammar. Expressions are inspected structurally and never evaluated
// against a scope; only literal leaves are resolved to cty values.
func translateExpr(expr hclsyntax.Expression) (*ast.Value, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		return &ast.Value{Kind: ast.ScalarVal, Scalar: e.Val, Range: e.Range()}, nil

	case *hclsyntax.TemplateExpr:
		return translateTemplate(e)

	case *hclsyntax.TemplateWrapExpr:
		// "${x}" on its own wraps the inner expression; treat it as a
		// template with a single substitution.
		raw, vars, moreDiags := templatePart(e.Wrapped)
		diags = append(diags, moreDiags...)
		return &ast.Value{
			Kind:         ast.TemplateVal,
			Template:     raw,
			TemplateVars: vars,
			Range:        e.Range(),
		}, diags

	case *hclsyntax.TupleConsExpr:
		v := &ast.Value{Kind: ast.ListVal, Range: e.Range()}
		for _, item := range e.Exprs {
			iv, moreDiags := translateExpr(item)
			diags = append(diags, moreDiags...)
			if iv != nil {
				v.Items = append(v.Items, iv)
			}
		}
		return v, diags

	case *hclsyntax.ObjectConsExpr:
		return translateMapping(e)

	case *hclsyntax.FunctionCallExpr:
		return translateCall(e)

	case *hclsyntax.ScopeTraversalExpr:
		if len(e.Traversal) != 1 {
			diags = append(diags, errDiag(e.Range(),
				"Invalid variable reference",
				"A variable reference must be a single identifier."))
			return nil, diags
		}
		return &ast.Value{Kind: ast.VarVal, Var: e.Traversal.RootName(), Range: e.Range()}, nil

	default:
		diags = append(diags, errDiag(expr.Range(),
			"Unsupported expression",
			fmt.Sprintf("This value form (%T) is not part of the workflow value grammar; expected a scalar, list, mapping, template or reference.", expr)))
		return nil, diags
	}
}

// translateTemplate handles quoted strings. Plain strings become scalars;
// strings with ${...} interpolation become template values carrying the raw
// text and every referenced identifier.
func translateTemplate(e *hclsyntax.TemplateExpr) (*ast.Value, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	if e.IsStringLiteral() {
		v, moreDiags := e.Value(nil)
		diags = append(diags, moreDiags...)
		return &ast.Value{Kind: ast.ScalarVal, Scalar: v, Range: e.Range()}, diags
	}

	var raw strings.Builder
	var vars []string
	for _, part := range e.Parts {
		if lit, ok := part.(*hclsyntax.LiteralValueExpr); ok && lit.Val.Type() == cty.String {
			raw.WriteString(lit.Val.AsString())
			continue
		}
		text, partVars, moreDiags := templatePart(part)
		diags = append(diags, moreDiags...)
		raw.WriteString(text)
		vars = append(vars, partVars...)
	}

	return &ast.Value{
		Kind:         ast.TemplateVal,
		Template:     raw.String(),
		TemplateVars: vars,
		Range:        e.Range(),
	}, diags
}

// templatePart renders one ${...} interpolation back to text and records the
// identifier it substitutes. Only simple identifiers are permitted inside a
// substitution marker.
func templatePart(part hclsyntax.Expression) (string, []string, hcl.Diagnostics) {
	trav, ok := part.(*hclsyntax.ScopeTraversalExpr)
	if !ok || len(trav.Traversal) != 1 {
		return "", nil, hcl.Diagnostics{errDiag(part.Range(),
			"Invalid template substitution",
			"A ${...} marker must contain a single identifier.")}
	}
	name := trav.Traversal.RootName()
	return "${" + name + "}", []string{name}, nil
}

func translateMapping(e *hclsyntax.ObjectConsExpr) (*ast.Value, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	v := &ast.Value{Kind: ast.MappingVal, Range: e.Range()}
	seen := map[string]hcl.Range{}

	for _, item := range e.Items {
		name, ok := mappingKey(item.KeyExpr)
		if !ok {
			diags = append(diags, errDiag(item.KeyExpr.Range(),
				"Invalid mapping key",
				"Mapping keys must be identifiers or quoted strings."))
			continue
		}
		if prev, dup := seen[name]; dup {
			diags = append(diags, errDiag(item.KeyExpr.Range(),
				"Duplicate mapping key",
				fmt.Sprintf("The key %q was already defined at %s.", name, prev)))
			continue
		}
		seen[name] = item.KeyExpr.Range()

		ev, moreDiags := translateExpr(item.ValueExpr)
		diags = append(diags, moreDiags...)
		if ev != nil {
			v.Entries = append(v.Entries, ast.Entry{
				Name:  name,
				Value: ev,
				Range: hcl.RangeBetween(item.KeyExpr.Range(), item.ValueExpr.Range()),
			})
		}
	}
	return v, diags
}

// mappingKey unwraps an object key expression to its literal name.
func mappingKey(expr hclsyntax.Expression) (string, bool) {
	if wrap, ok := expr.(*hclsyntax.ObjectConsKeyExpr); ok {
		if name := hcl.ExprAsKeyword(wrap.Wrapped); name != "" {
			return name, true
		}
		v, diags := wrap.Wrapped.Value(nil)
		if !diags.HasErrors() && !v.IsNull() && v.Type() == cty.String {
			return v.AsString(), true
		}
	}
	return "", false
}

// translateCall handles symbolic references such as pathway(Apoptosis). Any
// other function name is outside the value grammar.
func translateCall(e *hclsyntax.FunctionCallExpr) (*ast.Value, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	if !symbolKinds[e.Name] {
		diags = append(diags, errDiag(e.Range(),
			"Unknown reference keyword",
			fmt.Sprintf("%q is not a symbolic reference; expected locus, pathway, complex or hypothesis.", e.Name)))
		return nil, diags
	}
	if len(e.Args) != 1 {
		diags = append(diags, errDiag(e.Range(),
			"Invalid symbolic reference",
			fmt.Sprintf("A %s(...) reference takes exactly one entity identifier, got %d arguments.", e.Name, len(e.Args))))
		return nil, diags
	}

	id, ok := referenceID(e.Args[0])
	if !ok {
		diags = append(diags, errDiag(e.Args[0].Range(),
			"Invalid entity identifier",
			"The referenced entity must be a bare identifier or a quoted name."))
		return nil, diags
	}

	return &ast.Value{
		Kind:   ast.SymbolVal,
		Symbol: &ast.SymbolRef{Kind: e.Name, ID: id},
		Range:  e.Range(),
	}, diags
}

// referenceID accepts either pathway(Apoptosis) or pathway("Apoptosis").
func referenceID(expr hclsyntax.Expression) (string, bool) {
	if trav, ok := expr.(*hclsyntax.ScopeTraversalExpr); ok && len(trav.Traversal) == 1 {
		return trav.Traversal.RootName(), true
	}
	if tpl, ok := expr.(*hclsyntax.TemplateExpr); ok && tpl.IsStringLiteral() {
		v, diags := tpl.Value(nil)
		if !diags.HasErrors() && v.Type() == cty.String {
			return v.AsString(), true
		}
	}
	return "", false
}
