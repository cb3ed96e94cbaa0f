package parser

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/geneforge/gfl/internal/ast"
)

// buildContract parses a block's `contract { inputs {...} outputs {...} }`
// declaration. The port shape is checked here because a malformed contract
// gives the validator nothing coherent to work with; everything beyond shape
// (type existence, compatibility) is the validator's job.
func buildContract(blk *hclsyntax.Block) (*ast.Contract, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	c := &ast.Contract{DefRange: blk.DefRange()}

	for _, attr := range sortedAttributes(blk.Body) {
		diags = append(diags, errDiag(attr.SrcRange,
			"Invalid contract attribute",
			"A contract body contains only inputs and outputs blocks."))
	}

	for _, nested := range blk.Body.Blocks {
		switch nested.Type {
		case "inputs":
			ports, moreDiags := buildPorts(nested)
			diags = append(diags, moreDiags...)
			c.Inputs = append(c.Inputs, ports...)
		case "outputs":
			ports, moreDiags := buildPorts(nested)
			diags = append(diags, moreDiags...)
			c.Outputs = append(c.Outputs, ports...)
		default:
			diags = append(diags, errDiag(nested.DefRange(),
				"Invalid contract section",
				fmt.Sprintf("Expected inputs or outputs, got %q.", nested.Type)))
		}
	}

	return c, diags
}

// buildPorts parses the port blocks inside an inputs or outputs section.
// Each port is a block named after the variable it binds:
//
//	outputs {
//	  candidates {
//	    type       = "FASTA"
//	    attributes = { validated = true }
//	  }
//	}
func buildPorts(section *hclsyntax.Block) ([]ast.Port, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	var ports []ast.Port
	seen := map[string]hcl.Range{}

	for _, attr := range sortedAttributes(section.Body) {
		diags = append(diags, errDiag(attr.SrcRange,
			"Invalid port declaration",
			"Ports are declared as nested blocks, one per named input or output."))
	}

	for _, pb := range section.Body.Blocks {
		if prev, dup := seen[pb.Type]; dup {
			diags = append(diags, errDiag(pb.DefRange(),
				"Duplicate port",
				fmt.Sprintf("Port %q was already declared at %s.", pb.Type, prev)))
			continue
		}
		seen[pb.Type] = pb.DefRange()

		port, moreDiags := buildPort(pb)
		diags = append(diags, moreDiags...)
		if port != nil {
			ports = append(ports, *port)
		}
	}
	return ports, diags
}

func buildPort(pb *hclsyntax.Block) (*ast.Port, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	port := &ast.Port{Name: pb.Type, Range: pb.DefRange()}

	for _, attr := range sortedAttributes(pb.Body) {
		switch attr.Name {
		case "type":
			v, moreDiags := translateExpr(attr.Expr)
			diags = append(diags, moreDiags...)
			if v == nil {
				continue
			}
			s, ok := v.AsString()
			if !ok {
				diags = append(diags, errDiag(attr.SrcRange,
					"Invalid port type",
					"The port type must be a quoted type name."))
				continue
			}
			port.DataType = s

		case "attributes":
			v, moreDiags := translateExpr(attr.Expr)
			diags = append(diags, moreDiags...)
			if v == nil {
				continue
			}
			if v.Kind != ast.MappingVal {
				diags = append(diags, errDiag(attr.SrcRange,
					"Invalid port attributes",
					"Port attributes must be a mapping of scalar values."))
				continue
			}
			for _, e := range v.Entries {
				if e.Value.Kind != ast.ScalarVal {
					diags = append(diags, errDiag(e.Range,
						"Invalid port attribute value",
						fmt.Sprintf("Attribute %q must be a scalar, got a %s.", e.Name, e.Value.Kind)))
					continue
				}
				port.Attributes = append(port.Attributes, ast.PortAttribute{
					Name:  e.Name,
					Value: e.Value.Scalar,
					Range: e.Range,
				})
			}

		default:
			diags = append(diags, errDiag(attr.SrcRange,
				"Invalid port field",
				fmt.Sprintf("A port declares type and attributes only, got %q.", attr.Name)))
		}
	}

	if port.DataType == "" {
		diags = append(diags, errDiag(pb.DefRange(),
			"Port missing type",
			fmt.Sprintf("Port %q must declare its data type.", pb.Type)))
		return nil, diags
	}
	return port, diags
}
