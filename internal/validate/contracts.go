package validate

import (
	"fmt"
	"strings"

	"github.com/geneforge/gfl/internal/ast"
	"github.com/geneforge/gfl/internal/schema"
)

// producer records which block declares a given output variable under a
// contract.
type producer struct {
	block *ast.Block
	port  *ast.Port
}

// contractPass checks I/O contract compatibility along each produced
// variable -> consuming block edge. The contract system is opt-in per edge:
// a check runs only where the producer declares an outputs port and the
// consumer declares an inputs port for the same variable. Blocks without
// contracts are never type-checked and never generate contract errors.
func contractPass(doc *ast.Document, schemas *schema.Registry, res *Result) {
	blocks := allBlocks(doc)

	// Every declared port type must exist, contract edge or not.
	for _, b := range blocks {
		if b.Contract == nil {
			continue
		}
		checkPortTypes(b.Contract.Inputs, schemas, res)
		checkPortTypes(b.Contract.Outputs, schemas, res)
	}

	producers := map[string]producer{}
	for _, b := range blocks {
		if b.Contract == nil {
			continue
		}
		outVar, ok := b.StringField("output")
		if !ok {
			continue
		}
		if port, ok := b.Contract.Output(outVar); ok {
			producers[outVar] = producer{block: b, port: port}
		}
	}

	for _, b := range blocks {
		if b.Contract == nil || len(b.Contract.Inputs) == 0 {
			continue
		}
		checked := map[string]bool{}
		for _, f := range b.Fields {
			for _, ref := range f.Value.VarRefs() {
				varName := ref.Var
				if checked[varName] {
					continue
				}
				checked[varName] = true
				inPort, ok := b.Contract.Input(varName)
				if !ok {
					continue
				}
				prod, ok := producers[varName]
				if !ok {
					continue
				}
				checkEdge(prod, b, inPort, schemas, res)
			}
		}
	}
}

func checkPortTypes(ports []ast.Port, schemas *schema.Registry, res *Result) {
	for i := range ports {
		p := &ports[i]
		if schemas.IsKnownType(p.DataType) {
			continue
		}
		res.errorf(p.Range, CodeSchemaNotFound,
			"Register the type via import_schemas, or use a base type.",
			"port %q references type %q, which is neither a base type nor a registered schema", p.Name, p.DataType)
	}
}

func checkEdge(prod producer, consumer *ast.Block, inPort *ast.Port, schemas *schema.Registry, res *Result) {
	// Unknown types were already reported; a compatibility verdict on them
	// would be noise.
	if !schemas.IsKnownType(prod.port.DataType) || !schemas.IsKnownType(inPort.DataType) {
		return
	}

	if !schemas.IsCompatible(prod.port.DataType, inPort.DataType) {
		res.errorf(inPort.Range, CodeContractMismatch,
			fmt.Sprintf("Produce %s, or insert a conversion step.", inPort.DataType),
			"%s block consumes %q as %s, but the producing %s block at %s declares it as %s",
			consumer.Kind, inPort.Name, inPort.DataType, prod.block.Kind, prod.block.DefRange, prod.port.DataType)
	}

	attrErrs := schemas.ValidateAttributes(inPort.DataType, prod.port.AttributeValues())
	for _, ae := range attrErrs {
		res.errorf(inPort.Range, CodeContractAttribute,
			fmt.Sprintf("Declare %q accordingly on the producing output port.", ae.Attribute),
			"output %q of the %s block at %s does not satisfy %s: %s",
			inPort.Name, prod.block.Kind, prod.block.DefRange, inPort.DataType, strings.TrimPrefix(ae.Error(), "attribute "))
	}
}
