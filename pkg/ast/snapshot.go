package ast

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/leapstack-labs/sqltree/pkg/core"
)

// Snapshot is a detached, serializable copy of a subtree. Slots keep schema
// order; properties are keyed by name. The JSON and YAML encodings keep the
// int64/float64 distinction of property values.
type Snapshot struct {
	Kind       core.Kind      `json:"kind" yaml:"kind"`
	ID         core.NodeID    `json:"id,omitempty" yaml:"id,omitempty"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
	Slots      []SlotSnapshot `json:"slots,omitempty" yaml:"slots,omitempty"`
}

// SlotSnapshot holds the children of one slot.
type SlotSnapshot struct {
	Name  string      `json:"name" yaml:"name"`
	Nodes []*Snapshot `json:"nodes" yaml:"nodes"`
}

// TakeSnapshot reads the subtree of n into memory.
func TakeSnapshot(n Node) (*Snapshot, error) {
	if isNil(n) {
		return nil, nil
	}
	b := n.base()
	snap := &Snapshot{Kind: b.schema.Kind, ID: b.id}
	for _, f := range b.schema.Fields {
		switch f.Kind {
		case PropertyField:
			v, ok, err := b.Property(f.Name)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			if snap.Properties == nil {
				snap.Properties = make(map[string]any)
			}
			snap.Properties[f.Name] = v
		case ChildField, ChildListField:
			kids, err := slotNodes(b, f)
			if err != nil {
				return nil, err
			}
			if len(kids) == 0 {
				continue
			}
			slot := SlotSnapshot{Name: f.Name}
			for _, k := range kids {
				ks, err := TakeSnapshot(k)
				if err != nil {
					return nil, err
				}
				slot.Nodes = append(slot.Nodes, ks)
			}
			snap.Slots = append(snap.Slots, slot)
		}
	}
	return snap, nil
}

func slotNodes(b *Base, f Field) ([]Node, error) {
	if f.Kind == ChildListField {
		return b.Children(f.Name, f.Requires)
	}
	c, err := b.Child(f.Name, f.Requires)
	if err != nil || c == nil {
		return nil, err
	}
	return []Node{c}, nil
}

// Restore builds a new unattached subtree in s from snap. Every property and
// slot goes through schema validation, so a hand-edited snapshot cannot
// produce a malformed tree. Snapshot ids are ignored.
func Restore(s core.Store, snap *Snapshot) (Node, error) {
	if snap == nil {
		return nil, nil
	}
	n, err := New(s, snap.Kind)
	if err != nil {
		return nil, err
	}
	if err := restoreInto(n.base(), snap); err != nil {
		_ = s.DeleteNode(n.ID())
		return nil, err
	}
	return n, nil
}

func restoreInto(b *Base, snap *Snapshot) error {
	for _, name := range slices.Sorted(maps.Keys(snap.Properties)) {
		v, err := normalizeValue(snap.Properties[name])
		if err != nil {
			return fmt.Errorf("%s.%s: %w", snap.Kind, name, err)
		}
		if err := b.SetProperty(name, v); err != nil {
			return err
		}
	}
	for _, slot := range snap.Slots {
		f, ok := b.schema.Field(slot.Name)
		if !ok || f.Kind == PropertyField {
			return &UnknownSlotError{Kind: snap.Kind, Name: slot.Name}
		}
		if f.Kind == ChildField && len(slot.Nodes) != 1 {
			return fmt.Errorf("%w: %s.%s holds %d nodes", ErrInvalidChildType, snap.Kind, slot.Name, len(slot.Nodes))
		}
		kids := make([]Node, 0, len(slot.Nodes))
		for _, ks := range slot.Nodes {
			k, err := Restore(b.store, ks)
			if err != nil {
				deleteAll(kids)
				return err
			}
			kids = append(kids, k)
		}
		var err error
		if f.Kind == ChildField {
			err = b.SetChild(slot.Name, kids[0])
		} else {
			err = b.SetChildren(slot.Name, kids)
		}
		if err != nil {
			deleteAll(kids)
			return err
		}
	}
	return nil
}

func deleteAll(nodes []Node) {
	for _, n := range nodes {
		_ = Delete(n)
	}
}

// normalizeValue maps decoder output (int, float32, []any ...) onto the
// property value types a store accepts. Integers stay integers and floats
// stay floats.
func normalizeValue(v any) (any, error) {
	switch v := v.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("%w: integer %d overflows int64", core.ErrUnsupportedValue, v)
		}
		return int64(v), nil
	case float32:
		return float64(v), nil
	case []any:
		out := make([]string, len(v))
		for i, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("%w: list element %T", core.ErrUnsupportedValue, e)
			}
			out[i] = s
		}
		return out, nil
	}
	if err := core.CheckValue(v); err != nil {
		return nil, err
	}
	return v, nil
}

