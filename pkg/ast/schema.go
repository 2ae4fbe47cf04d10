package ast

import (
	"fmt"

	"github.com/leapstack-labs/sqltree/pkg/core"
)

// FieldKind distinguishes properties from child slots.
type FieldKind int

// FieldKind constants.
const (
	PropertyField  FieldKind = iota // scalar or collection value
	ChildField                      // at most one child node
	ChildListField                  // ordered list of child nodes
)

// ValueType is the value type a property field accepts.
type ValueType int

// ValueType constants.
const (
	ValueString ValueType = iota
	ValueBool
	ValueInt
	ValueScalar // string, bool, int64 or float64
	ValueStrings
)

func (v ValueType) String() string {
	switch v {
	case ValueString:
		return "string"
	case ValueBool:
		return "bool"
	case ValueInt:
		return "int64"
	case ValueScalar:
		return "scalar"
	case ValueStrings:
		return "[]string"
	default:
		return fmt.Sprintf("ValueType(%d)", int(v))
	}
}

func (v ValueType) accepts(value any) bool {
	switch value.(type) {
	case string:
		return v == ValueString || v == ValueScalar
	case bool:
		return v == ValueBool || v == ValueScalar
	case int64:
		return v == ValueInt || v == ValueScalar
	case float64:
		return v == ValueScalar
	case []string:
		return v == ValueStrings
	default:
		return false
	}
}

// Field is one declared property or slot of a kind.
type Field struct {
	Name     string
	Kind     FieldKind
	Value    ValueType  // properties only
	Requires Capability // slots only
}

func prop(name string, vt ValueType) Field {
	return Field{Name: name, Kind: PropertyField, Value: vt}
}

func child(name string, requires Capability) Field {
	return Field{Name: name, Kind: ChildField, Requires: requires}
}

func children(name string, requires Capability) Field {
	return Field{Name: name, Kind: ChildListField, Requires: requires}
}

// Schema is the slot/property layout of one kind. Field order is fixed and
// is the order used for equality, hashing, cloning and traversal.
type Schema struct {
	Kind   core.Kind
	Caps   Capability
	Fields []Field

	index map[string]int
	bind  func(s core.Store, id core.NodeID) Node
}

// Field looks up a declared field by name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.Fields[i], true
}

var schemas = make(map[core.Kind]*Schema)

// variant constrains T to the pointer-to-struct wrapper types that embed Base.
type variant[T any] interface {
	*T
	Node
}

func register[T any, PT variant[T]](kind core.Kind, caps Capability, fields ...Field) {
	if _, dup := schemas[kind]; dup {
		panic(fmt.Sprintf("ast: duplicate schema for %s", kind))
	}
	s := &Schema{
		Kind:   kind,
		Caps:   caps,
		Fields: fields,
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if _, dup := s.index[f.Name]; dup {
			panic(fmt.Sprintf("ast: duplicate field %s.%s", kind, f.Name))
		}
		s.index[f.Name] = i
	}
	s.bind = func(st core.Store, id core.NodeID) Node {
		p := PT(new(T))
		p.base().init(st, id, s, p)
		return p
	}
	schemas[kind] = s
}

func init() {
	register[Block](core.KindBlock, CapStatement|CapLabeled|CapBlock,
		prop(LabelProp, ValueString),
		prop(AtomicProp, ValueBool),
		children(StatementsSlot, CapStatement),
		prop(ExceptionGroupProp, ValueString),
		children(ExceptionStatementsSlot, CapStatement),
	)
	register[WhileStatement](core.KindWhile, CapStatement|CapLabeled,
		child(ConditionSlot, CapCriteria),
		prop(LabelProp, ValueString),
		child(BlockSlot, CapBlock),
	)
	register[LoopStatement](core.KindLoop, CapStatement|CapLabeled,
		prop(CursorNameProp, ValueString),
		child(QuerySlot, CapExpression),
		prop(LabelProp, ValueString),
		child(BlockSlot, CapBlock),
	)
	register[IfStatement](core.KindIf, CapStatement,
		child(ConditionSlot, CapCriteria),
		child(IfBlockSlot, CapBlock),
		child(ElseBlockSlot, CapBlock),
	)
	register[BranchingStatement](core.KindBranching, CapStatement,
		prop(ModeProp, ValueString),
		prop(LabelProp, ValueString),
	)
	register[AssignmentStatement](core.KindAssignment, CapStatement,
		child(VariableSlot, CapElementSymbol),
		child(ExpressionSlot, CapExpression),
	)
	register[DeclareStatement](core.KindDeclare, CapStatement,
		child(VariableSlot, CapElementSymbol),
		prop(VariableTypeProp, ValueString),
		child(ExpressionSlot, CapExpression),
	)
	register[RaiseStatement](core.KindRaise, CapStatement,
		child(ExpressionSlot, CapExpression),
		prop(WarningProp, ValueBool),
	)
	register[ReturnStatement](core.KindReturn, CapStatement,
		child(ExpressionSlot, CapExpression),
	)

	register[CompareCriteria](core.KindCompareCriteria, CapCriteria|CapExpression,
		child(LeftExpressionSlot, CapExpression),
		prop(OperatorProp, ValueString),
		child(RightExpressionSlot, CapExpression),
	)
	register[CompoundCriteria](core.KindCompoundCriteria, CapCriteria|CapExpression,
		prop(OperatorProp, ValueString),
		children(CriteriaSlot, CapCriteria),
	)
	register[NotCriteria](core.KindNotCriteria, CapCriteria|CapExpression,
		child(CriteriaSlot, CapCriteria),
	)
	register[IsNullCriteria](core.KindIsNullCriteria, CapCriteria|CapExpression,
		child(ExpressionSlot, CapExpression),
		prop(NegatedProp, ValueBool),
	)

	register[Constant](core.KindConstant, CapExpression,
		prop(ValueProp, ValueScalar),
		prop(TypeProp, ValueString),
	)
	register[ElementSymbol](core.KindElementSymbol, CapExpression|CapElementSymbol,
		prop(NameProp, ValueString),
		prop(GroupSymbolProp, ValueString),
	)
	register[Function](core.KindFunction, CapExpression,
		prop(NameProp, ValueString),
		children(ArgsSlot, CapExpression),
	)
}

// SchemaOf returns the schema registered for kind.
func SchemaOf(kind core.Kind) (*Schema, bool) {
	s, ok := schemas[kind]
	return s, ok
}

// Schemas returns every registered schema in core.AllKinds order.
func Schemas() []*Schema {
	out := make([]*Schema, 0, len(schemas))
	for _, k := range core.AllKinds() {
		if s, ok := schemas[k]; ok {
			out = append(out, s)
		}
	}
	return out
}
