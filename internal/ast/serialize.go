package ast

import (
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// Serialize renders the document back to GFL source text. The rendering is
// deterministic: blocks, fields and mapping entries are emitted in the order
// they were parsed, so parsing the output again yields a structurally equal
// document. Unknown blocks are not round-tripped; only their presence was
// recorded.
func Serialize(doc *Document) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for i, b := range doc.Blocks {
		if i > 0 {
			body.AppendNewline()
		}
		writeBlock(body, b)
	}

	if len(doc.SchemaImports) > 0 {
		body.AppendNewline()
		imports := make([]cty.Value, 0, len(doc.SchemaImports))
		for _, p := range doc.SchemaImports {
			imports = append(imports, cty.StringVal(p))
		}
		body.SetAttributeValue("import_schemas", cty.TupleVal(imports))
	}

	return f.Bytes()
}

func writeBlock(parent *hclwrite.Body, b *Block) {
	var labels []string
	if b.Label != "" {
		labels = []string{b.Label}
	}
	wb := parent.AppendNewBlock(string(b.Kind), labels)
	wbody := wb.Body()

	for _, f := range b.Fields {
		wbody.SetAttributeRaw(f.Name, valueTokens(f.Value))
	}
	for _, nb := range b.Blocks {
		writeBlock(wbody, nb)
	}
	if b.Contract != nil {
		writeContract(wbody, b.Contract)
	}
}

func writeContract(parent *hclwrite.Body, c *Contract) {
	cb := parent.AppendNewBlock("contract", nil).Body()
	if len(c.Inputs) > 0 {
		writePorts(cb, "inputs", c.Inputs)
	}
	if len(c.Outputs) > 0 {
		writePorts(cb, "outputs", c.Outputs)
	}
}

func writePorts(parent *hclwrite.Body, dir string, ports []Port) {
	db := parent.AppendNewBlock(dir, nil).Body()
	for _, p := range ports {
		pb := db.AppendNewBlock(p.Name, nil).Body()
		pb.SetAttributeValue("type", cty.StringVal(p.DataType))
		if len(p.Attributes) > 0 {
			attrs := make([]hclwrite.ObjectAttrTokens, 0, len(p.Attributes))
			for _, a := range p.Attributes {
				attrs = append(attrs, hclwrite.ObjectAttrTokens{
					Name:  hclwrite.TokensForIdentifier(a.Name),
					Value: hclwrite.TokensForValue(a.Value),
				})
			}
			pb.SetAttributeRaw("attributes", hclwrite.TokensForObject(attrs))
		}
	}
}

func valueTokens(v *Value) hclwrite.Tokens {
	switch v.Kind {
	case ScalarVal:
		return hclwrite.TokensForValue(v.Scalar)

	case ListVal:
		items := make([]hclwrite.Tokens, 0, len(v.Items))
		for _, it := range v.Items {
			items = append(items, valueTokens(it))
		}
		return hclwrite.TokensForTuple(items)

	case MappingVal:
		attrs := make([]hclwrite.ObjectAttrTokens, 0, len(v.Entries))
		for _, e := range v.Entries {
			attrs = append(attrs, hclwrite.ObjectAttrTokens{
				Name:  hclwrite.TokensForIdentifier(e.Name),
				Value: valueTokens(e.Value),
			})
		}
		return hclwrite.TokensForObject(attrs)

	case TemplateVal:
		// The raw template text, substitution markers included, is emitted
		// verbatim inside quotes.
		return hclwrite.Tokens{
			{Type: hclsyntax.TokenOQuote, Bytes: []byte(`"`)},
			{Type: hclsyntax.TokenQuotedLit, Bytes: []byte(v.Template)},
			{Type: hclsyntax.TokenCQuote, Bytes: []byte(`"`)},
		}

	case SymbolVal:
		return hclwrite.TokensForFunctionCall(v.Symbol.Kind, hclwrite.TokensForIdentifier(v.Symbol.ID))

	default: // VarVal
		return hclwrite.TokensForIdentifier(v.Var)
	}
}
