package ast

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// PortAttribute is one declared attribute on a contract port. Values are
// scalar literals only.
type PortAttribute struct {
	Name  string
	Value cty.Value
	Range hcl.Range
}

// Port is one named input or output of a block's I/O contract.
type Port struct {
	Name       string
	DataType   string
	Attributes []PortAttribute
	Range      hcl.Range
}

// AttributeValues returns the port's attributes as a plain map for schema
// validation.
func (p *Port) AttributeValues() map[string]cty.Value {
	if len(p.Attributes) == 0 {
		return nil
	}
	out := make(map[string]cty.Value, len(p.Attributes))
	for _, a := range p.Attributes {
		out[a.Name] = a.Value
	}
	return out
}

// Contract is a block's declared I/O contract. It is owned by the block that
// declares it and is only ever read by the validator.
type Contract struct {
	Inputs   []Port
	Outputs  []Port
	DefRange hcl.Range
}

// Input returns the named input port.
func (c *Contract) Input(name string) (*Port, bool) {
	for i := range c.Inputs {
		if c.Inputs[i].Name == name {
			return &c.Inputs[i], true
		}
	}
	return nil, false
}

// Output returns the named output port.
func (c *Contract) Output(name string) (*Port, bool) {
	for i := range c.Outputs {
		if c.Outputs[i].Name == name {
			return &c.Outputs[i], true
		}
	}
	return nil, false
}
