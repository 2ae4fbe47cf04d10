package ast

import (
	"fmt"
	"reflect"

	"github.com/leapstack-labs/sqltree/pkg/core"
)

// Node is implemented by every variant in the catalogue. The unexported
// method keeps the set closed to this package.
type Node interface {
	// ID returns the store-assigned identity.
	ID() core.NodeID
	// Kind returns the immutable node-type tag.
	Kind() core.Kind
	// Store returns the store the node lives in.
	Store() core.Store
	// Schema returns the slot/property layout of the node's kind.
	Schema() *Schema
	// AcceptVisitor calls the visitor method matching the node's variant.
	AcceptVisitor(v Visitor) error

	base() *Base
}

// Statement is a marker interface for procedure statements.
type Statement interface {
	Node
	stmtNode()
}

// Expression is a marker interface for expression nodes.
type Expression interface {
	Node
	exprNode()
}

// Criteria is a marker interface for boolean expressions.
type Criteria interface {
	Expression
	criteriaNode()
}

// Labeled is implemented by statements that carry an optional label.
type Labeled interface {
	Statement
	Label() (string, error)
	HasLabel() (bool, error)
	SetLabel(label string) error
	ClearLabel() error
}

// Wrap returns the typed view of a stored node, chosen by its kind tag.
func Wrap(s core.Store, id core.NodeID) (Node, error) {
	kind, err := s.Kind(id)
	if err != nil {
		return nil, err
	}
	schema, ok := schemas[kind]
	if !ok {
		return nil, &UnknownKindError{ID: id, Kind: kind}
	}
	return schema.bind(s, id), nil
}

// Load wraps a stored node as T. A node of another kind yields a
// *core.TypeMismatchError.
func Load[T Node](s core.Store, id core.NodeID) (T, error) {
	var zero T
	n, err := Wrap(s, id)
	if err != nil {
		return zero, err
	}
	return As[T](n)
}

// As converts n to T, failing with *core.TypeMismatchError.
func As[T Node](n Node) (T, error) {
	t, ok := n.(T)
	if !ok {
		var zero T
		return zero, &core.TypeMismatchError{ID: n.ID(), Got: n.Kind(), Want: fmt.Sprintf("%T", zero)}
	}
	return t, nil
}

// create makes a new node of kind in s and returns it as T. The kind/type
// pairing is checked before anything is written to the store.
func create[T Node](s core.Store, kind core.Kind) (T, error) {
	var zero T
	schema, ok := schemas[kind]
	if !ok {
		return zero, &UnknownKindError{Kind: kind}
	}
	if _, ok := schema.bind(nil, "").(T); !ok {
		return zero, &core.TypeMismatchError{Got: kind, Want: fmt.Sprintf("%T", zero)}
	}
	id, err := s.CreateNode(kind)
	if err != nil {
		return zero, fmt.Errorf("create %s: %w", kind, err)
	}
	return schema.bind(s, id).(T), nil
}

// New creates an unattached node of the given kind.
func New(s core.Store, kind core.Kind) (Node, error) {
	return create[Node](s, kind)
}

// Delete removes n and its subtree from its store.
func Delete(n Node) error {
	if isNil(n) {
		return nil
	}
	if err := n.Store().DeleteNode(n.ID()); err != nil {
		return fmt.Errorf("delete %s %s: %w", n.Kind(), n.ID(), err)
	}
	return nil
}

// isNil reports whether n is nil or a typed nil pointer.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
