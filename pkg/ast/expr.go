package ast

import "github.com/leapstack-labs/sqltree/pkg/core"

// ---------- Constant ----------

// Constant is a literal value. An unset value is the SQL NULL of its type.
type Constant struct{ Base }

// NewConstant creates an unattached constant.
func NewConstant(s core.Store) (*Constant, error) { return create[*Constant](s, core.KindConstant) }

func (*Constant) exprNode() {}

// Value returns the literal, or nil for NULL.
func (c *Constant) Value() (any, error) {
	v, _, err := c.Property(ValueProp)
	return v, err
}

// SetValue sets the literal; nil makes it NULL.
func (c *Constant) SetValue(v any) error { return c.SetProperty(ValueProp, v) }

// Type returns the type name, e.g. "integer".
func (c *Constant) Type() (string, error) { return c.stringProp(TypeProp) }

// SetType sets the type name.
func (c *Constant) SetType(typ string) error { return c.SetProperty(TypeProp, typ) }

// ---------- ElementSymbol ----------

// ElementSymbol references a variable or column by name.
type ElementSymbol struct{ Base }

// NewElementSymbol creates an unattached symbol.
func NewElementSymbol(s core.Store) (*ElementSymbol, error) {
	return create[*ElementSymbol](s, core.KindElementSymbol)
}

func (*ElementSymbol) exprNode() {}

// Name returns the symbol name.
func (e *ElementSymbol) Name() (string, error) { return e.stringProp(NameProp) }

// SetName sets the symbol name.
func (e *ElementSymbol) SetName(name string) error { return e.SetProperty(NameProp, name) }

// GroupSymbol returns the qualifying group (table or cursor), or "".
func (e *ElementSymbol) GroupSymbol() (string, error) { return e.stringProp(GroupSymbolProp) }

// SetGroupSymbol sets the qualifying group. An empty group removes it.
func (e *ElementSymbol) SetGroupSymbol(group string) error {
	if group == "" {
		return e.SetProperty(GroupSymbolProp, nil)
	}
	return e.SetProperty(GroupSymbolProp, group)
}

// ---------- Function ----------

// Function is a scalar function call.
type Function struct{ Base }

// NewFunction creates an unattached function call.
func NewFunction(s core.Store) (*Function, error) { return create[*Function](s, core.KindFunction) }

func (*Function) exprNode() {}

// Name returns the function name.
func (f *Function) Name() (string, error) { return f.stringProp(NameProp) }

// SetName sets the function name.
func (f *Function) SetName(name string) error { return f.SetProperty(NameProp, name) }

// Args returns the arguments in order.
func (f *Function) Args() ([]Expression, error) {
	return childrenAs[Expression](&f.Base, ArgsSlot, CapExpression)
}

// SetArgs replaces the arguments.
func (f *Function) SetArgs(args ...Expression) error {
	return f.SetChildren(ArgsSlot, toNodes(args))
}
