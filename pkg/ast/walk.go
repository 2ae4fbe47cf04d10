package ast

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/sqltree/pkg/core"
)

// SkipChildren may be returned by a visitor method (or Inspect callback) to
// prune the current node's subtree. It is not reported as an error.
var SkipChildren = errors.New("skip children")

// Edge is one parent-to-child reference. Index is the position within a
// list slot, or -1 for a single-valued slot.
type Edge struct {
	Slot  string
	Index int
	Node  Node
}

// String renders the edge as "slot" or "slot[i]".
func (e Edge) String() string {
	if e.Index < 0 {
		return e.Slot
	}
	return fmt.Sprintf("%s[%d]", e.Slot, e.Index)
}

// Edges returns the child references of n in schema order. Empty slots are
// omitted.
func Edges(n Node) ([]Edge, error) {
	if isNil(n) {
		return nil, nil
	}
	b := n.base()
	var out []Edge
	for _, f := range b.schema.Fields {
		switch f.Kind {
		case ChildField:
			c, err := b.Child(f.Name, f.Requires)
			if err != nil {
				return nil, err
			}
			if c != nil {
				out = append(out, Edge{Slot: f.Name, Index: -1, Node: c})
			}
		case ChildListField:
			cs, err := b.Children(f.Name, f.Requires)
			if err != nil {
				return nil, err
			}
			for i, c := range cs {
				out = append(out, Edge{Slot: f.Name, Index: i, Node: c})
			}
		}
	}
	return out, nil
}

// ChildNodes returns the children of n in schema order, flattening list
// slots.
func ChildNodes(n Node) ([]Node, error) {
	edges, err := Edges(n)
	if err != nil {
		return nil, err
	}
	out := make([]Node, len(edges))
	for i, e := range edges {
		out[i] = e.Node
	}
	return out, nil
}

// PreOrder visits n, then its children in schema order.
func PreOrder(n Node, v Visitor) error {
	if isNil(n) {
		return nil
	}
	if err := Accept(n, v); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	kids, err := ChildNodes(n)
	if err != nil {
		return err
	}
	for _, k := range kids {
		if err := PreOrder(k, v); err != nil {
			return err
		}
	}
	return nil
}

// PostOrder visits the children of n in schema order, then n.
func PostOrder(n Node, v Visitor) error {
	if isNil(n) {
		return nil
	}
	kids, err := ChildNodes(n)
	if err != nil {
		return err
	}
	for _, k := range kids {
		if err := PostOrder(k, v); err != nil {
			return err
		}
	}
	return Accept(n, v)
}

// Inspect traverses the tree depth-first and calls fn for each node.
// If fn returns false, the node's children are skipped.
func Inspect(n Node, fn func(Node) (bool, error)) error {
	if isNil(n) {
		return nil
	}
	descend, err := fn(n)
	if err != nil || !descend {
		return err
	}
	kids, err := ChildNodes(n)
	if err != nil {
		return err
	}
	for _, k := range kids {
		if err := Inspect(k, fn); err != nil {
			return err
		}
	}
	return nil
}

// CountKinds returns the number of nodes of each kind in the subtree of n.
func CountKinds(n Node) (map[core.Kind]int, error) {
	counts := make(map[core.Kind]int)
	err := Inspect(n, func(x Node) (bool, error) {
		counts[x.Kind()]++
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}
