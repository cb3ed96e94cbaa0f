package ast

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	// ScalarVal is a literal string, number or bool.
	ScalarVal ValueKind = iota
	// ListVal is an ordered sequence of values.
	ListVal
	// MappingVal is an ordered name -> value mapping.
	MappingVal
	// TemplateVal is a string containing one or more ${identifier}
	// substitution markers. Templates are never evaluated by the front end;
	// the raw text and the referenced identifiers are both retained.
	TemplateVal
	// SymbolVal is a symbolic entity reference written in call syntax,
	// e.g. pathway(Apoptosis).
	SymbolVal
	// VarVal is a bare identifier referencing another block's declared
	// output variable.
	VarVal
)

// String returns the value grammar name for the kind, as used in diagnostics.
func (k ValueKind) String() string {
	switch k {
	case ScalarVal:
		return "scalar"
	case ListVal:
		return "list"
	case MappingVal:
		return "mapping"
	case TemplateVal:
		return "template"
	case SymbolVal:
		return "symbolic reference"
	default:
		return "variable reference"
	}
}

// SymbolRef is a reference to a named entity declared elsewhere in the
// document. Kind is the call keyword (locus, pathway, complex, hypothesis).
type SymbolRef struct {
	Kind string
	ID   string
}

// Entry is one ordered key/value pair of a MappingVal.
type Entry struct {
	Name  string
	Value *Value
	Range hcl.Range
}

// Value is the tagged variant for everything that can appear in a value
// position. Exactly the fields implied by Kind are populated.
type Value struct {
	Kind ValueKind

	Scalar       cty.Value
	Items        []*Value
	Entries      []Entry
	Template     string
	TemplateVars []string
	Symbol       *SymbolRef
	Var          string

	Range hcl.Range
}

// AsString returns the scalar as a Go string when it is a known string value.
func (v *Value) AsString() (string, bool) {
	if v.Kind != ScalarVal || v.Scalar.IsNull() || v.Scalar.Type() != cty.String {
		return "", false
	}
	return v.Scalar.AsString(), true
}

// Entry returns the named entry of a mapping value.
func (v *Value) Entry(name string) (*Value, bool) {
	for _, e := range v.Entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return nil, false
}

// Templates returns every TemplateVal reachable from v, including v itself,
// in source order. Used by the validator to check substitution markers
// against a declared search space.
func (v *Value) Templates() []*Value {
	var out []*Value
	v.walk(func(n *Value) {
		if n.Kind == TemplateVal {
			out = append(out, n)
		}
	})
	return out
}

// VarRefs returns every VarVal reachable from v, including v itself, in
// source order. Used by the validator to find consumed variables wherever
// they appear in a field, nested in mappings and lists included.
func (v *Value) VarRefs() []*Value {
	var out []*Value
	v.walk(func(n *Value) {
		if n.Kind == VarVal {
			out = append(out, n)
		}
	})
	return out
}

// SymbolRefs returns every SymbolVal reachable from v, in source order.
func (v *Value) SymbolRefs() []*Value {
	var out []*Value
	v.walk(func(n *Value) {
		if n.Kind == SymbolVal {
			out = append(out, n)
		}
	})
	return out
}

func (v *Value) walk(fn func(*Value)) {
	fn(v)
	for _, it := range v.Items {
		it.walk(fn)
	}
	for _, e := range v.Entries {
		e.Value.walk(fn)
	}
}
