package ast

import (
	"fmt"
	"slices"

	"github.com/leapstack-labs/sqltree/pkg/core"
)

// Base is the generic store-backed node every variant embeds. It holds no
// node state of its own; every read and write goes to the store.
type Base struct {
	store  core.Store
	id     core.NodeID
	schema *Schema
	self   Node
}

func (b *Base) init(s core.Store, id core.NodeID, schema *Schema, self Node) {
	b.store = s
	b.id = id
	b.schema = schema
	b.self = self
}

func (b *Base) base() *Base { return b }

// ID implements Node.
func (b *Base) ID() core.NodeID { return b.id }

// Kind implements Node.
func (b *Base) Kind() core.Kind { return b.schema.Kind }

// Store implements Node.
func (b *Base) Store() core.Store { return b.store }

// Schema implements Node.
func (b *Base) Schema() *Schema { return b.schema }

// Capabilities returns the capabilities the node's kind advertises.
func (b *Base) Capabilities() Capability { return b.schema.Caps }

// AcceptVisitor implements Node.
func (b *Base) AcceptVisitor(v Visitor) error { return Accept(b.self, v) }

// Equal reports whether the node is structurally equal to other.
func (b *Base) Equal(other Node) (bool, error) { return Equal(b.self, other) }

// Hash returns the structural hash of the node.
func (b *Base) Hash() (uint64, error) { return Hash(b.self) }

func (b *Base) field(name string, kind FieldKind) (Field, error) {
	f, ok := b.schema.Field(name)
	if !ok || f.Kind != kind {
		return Field{}, &UnknownSlotError{Kind: b.schema.Kind, Name: name}
	}
	return f, nil
}

// Property returns a property value and whether it is set.
func (b *Base) Property(name string) (any, bool, error) {
	if _, err := b.field(name, PropertyField); err != nil {
		return nil, false, err
	}
	v, ok, err := b.store.Property(b.id, name)
	if err != nil {
		return nil, false, fmt.Errorf("get %s.%s: %w", b.schema.Kind, name, err)
	}
	return v, ok, nil
}

// SetProperty sets a property. A nil value removes it.
func (b *Base) SetProperty(name string, value any) error {
	f, err := b.field(name, PropertyField)
	if err != nil {
		return err
	}
	if value != nil && !f.Value.accepts(value) {
		return &InvalidPropertyError{Kind: b.schema.Kind, Name: name, Want: f.Value, Value: value}
	}
	if ss, ok := value.([]string); ok {
		value = slices.Clone(ss)
	}
	if err := b.store.SetProperty(b.id, name, value); err != nil {
		return fmt.Errorf("set %s.%s: %w", b.schema.Kind, name, err)
	}
	return nil
}

// Child returns the node in a single-valued slot, or nil when the slot is
// empty. A stored child without the want capability yields a
// *core.TypeMismatchError.
func (b *Base) Child(slot string, want Capability) (Node, error) {
	if _, err := b.field(slot, ChildField); err != nil {
		return nil, err
	}
	id, err := b.store.Child(b.id, slot)
	if err != nil {
		return nil, fmt.Errorf("get %s.%s: %w", b.schema.Kind, slot, err)
	}
	if id.IsZero() {
		return nil, nil
	}
	return b.load(id, want)
}

// SetChild assigns a single-valued slot. A nil node clears it. A node
// without the slot's capability is rejected with *InvalidChildTypeError and
// the slot keeps its previous occupant.
func (b *Base) SetChild(slot string, n Node) error {
	f, err := b.field(slot, ChildField)
	if err != nil {
		return err
	}
	var id core.NodeID
	if !isNil(n) {
		if err := b.admit(f, n); err != nil {
			return err
		}
		id = n.ID()
	}
	if err := b.store.SetChild(b.id, slot, id); err != nil {
		return fmt.Errorf("set %s.%s: %w", b.schema.Kind, slot, err)
	}
	return nil
}

// Children returns the nodes of a multi-valued slot in order.
func (b *Base) Children(slot string, want Capability) ([]Node, error) {
	if _, err := b.field(slot, ChildListField); err != nil {
		return nil, err
	}
	ids, err := b.store.Children(b.id, slot)
	if err != nil {
		return nil, fmt.Errorf("get %s.%s: %w", b.schema.Kind, slot, err)
	}
	out := make([]Node, 0, len(ids))
	for _, id := range ids {
		n, err := b.load(id, want)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// SetChildren replaces the contents of a multi-valued slot. Every node is
// checked before the store is touched.
func (b *Base) SetChildren(slot string, nodes []Node) error {
	f, err := b.field(slot, ChildListField)
	if err != nil {
		return err
	}
	ids := make([]core.NodeID, 0, len(nodes))
	for _, n := range nodes {
		if isNil(n) {
			return &InvalidChildTypeError{Kind: b.schema.Kind, Slot: slot, Want: f.Requires}
		}
		if err := b.admit(f, n); err != nil {
			return err
		}
		ids = append(ids, n.ID())
	}
	if err := b.store.SetChildren(b.id, slot, ids); err != nil {
		return fmt.Errorf("set %s.%s: %w", b.schema.Kind, slot, err)
	}
	return nil
}

// Parent returns the node whose slot holds this node, and the slot name.
// Parent is a lookup, not an ownership link; roots return nil.
func (b *Base) Parent() (Node, string, error) {
	pid, slot, err := b.store.Parent(b.id)
	if err != nil {
		return nil, "", fmt.Errorf("parent of %s: %w", b.id, err)
	}
	if pid.IsZero() {
		return nil, "", nil
	}
	p, err := Wrap(b.store, pid)
	if err != nil {
		return nil, "", err
	}
	return p, slot, nil
}

func (b *Base) admit(f Field, n Node) error {
	if n.Store() != b.store {
		return fmt.Errorf("%w: %s.%s", ErrForeignNode, b.schema.Kind, f.Name)
	}
	if !n.Schema().Caps.Has(f.Requires) {
		return &InvalidChildTypeError{Kind: b.schema.Kind, Slot: f.Name, Want: f.Requires, Got: n.Kind()}
	}
	return nil
}

func (b *Base) load(id core.NodeID, want Capability) (Node, error) {
	n, err := Wrap(b.store, id)
	if err != nil {
		return nil, err
	}
	if !n.Schema().Caps.Has(want) {
		return nil, &core.TypeMismatchError{ID: id, Got: n.Kind(), Want: want.String()}
	}
	return n, nil
}

// ---------- typed helpers for variant accessors ----------

func (b *Base) stringProp(name string) (string, error) {
	v, ok, err := b.Property(name)
	if err != nil || !ok {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &core.TypeMismatchError{ID: b.id, Got: b.schema.Kind, Want: name + " string"}
	}
	return s, nil
}

func (b *Base) boolProp(name string) (bool, error) {
	v, ok, err := b.Property(name)
	if err != nil || !ok {
		return false, err
	}
	bv, ok := v.(bool)
	if !ok {
		return false, &core.TypeMismatchError{ID: b.id, Got: b.schema.Kind, Want: name + " bool"}
	}
	return bv, nil
}

func (b *Base) hasProp(name string) (bool, error) {
	_, ok, err := b.Property(name)
	return ok, err
}

// label accessors shared by the Labeled variants.

func (b *Base) label() (string, error)      { return b.stringProp(LabelProp) }
func (b *Base) hasLabel() (bool, error)     { return b.hasProp(LabelProp) }
func (b *Base) setLabel(label string) error { return b.SetProperty(LabelProp, label) }
func (b *Base) clearLabel() error           { return b.SetProperty(LabelProp, nil) }

func childAs[T Node](b *Base, slot string, want Capability) (T, error) {
	var zero T
	n, err := b.Child(slot, want)
	if err != nil || n == nil {
		return zero, err
	}
	t, ok := n.(T)
	if !ok {
		return zero, &core.TypeMismatchError{ID: n.ID(), Got: n.Kind(), Want: want.String()}
	}
	return t, nil
}

func childrenAs[T Node](b *Base, slot string, want Capability) ([]T, error) {
	nodes, err := b.Children(slot, want)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(nodes))
	for _, n := range nodes {
		t, ok := n.(T)
		if !ok {
			return nil, &core.TypeMismatchError{ID: n.ID(), Got: n.Kind(), Want: want.String()}
		}
		out = append(out, t)
	}
	return out, nil
}

func toNodes[T Node](items []T) []Node {
	out := make([]Node, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}
