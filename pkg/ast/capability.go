package ast

import "strings"

// Capability is a behavioral facet a variant advertises. A slot declares the
// capabilities its occupant must have.
type Capability uint16

// Capabilities advertised by the variant catalogue.
const (
	CapStatement Capability = 1 << iota
	CapExpression
	CapCriteria
	CapLabeled
	CapBlock
	CapElementSymbol

	// CapAny is satisfied by every node.
	CapAny Capability = 0
)

var capabilityNames = []struct {
	c    Capability
	name string
}{
	{CapStatement, "Statement"},
	{CapExpression, "Expression"},
	{CapCriteria, "Criteria"},
	{CapLabeled, "Labeled"},
	{CapBlock, "Block"},
	{CapElementSymbol, "ElementSymbol"},
}

// Has reports whether c includes every capability in want.
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

// String returns a "|"-joined list of capability names.
func (c Capability) String() string {
	if c == CapAny {
		return "Any"
	}
	var parts []string
	for _, cn := range capabilityNames {
		if c.Has(cn.c) {
			parts = append(parts, cn.name)
		}
	}
	return strings.Join(parts, "|")
}
