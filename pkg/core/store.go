package core

import "context"

// NodeID is the opaque, store-assigned identity of a node.
// The zero value means "no node".
type NodeID string

// IsZero reports whether the id refers to no node.
func (id NodeID) IsZero() bool { return id == "" }

// String implements fmt.Stringer.
func (id NodeID) String() string { return string(id) }

// Store is the generic tree store that AST nodes are persisted in.
//
// A store owns node lifetime. Child slots are strictly parent -> child and a
// node is attached to at most one parent slot at a time; Parent is a
// non-owning lookup. Nodes that are not attached anywhere are roots.
//
// Property values are one of: string, bool, int64, float64, []string.
// Implementations define their own concurrency discipline; callers that need
// several mutations to become visible together use the store's unit of work.
type Store interface {
	// CreateNode creates an unattached node of the given kind.
	CreateNode(kind Kind) (NodeID, error)
	// Kind returns the immutable kind tag of a node.
	Kind(id NodeID) (Kind, error)

	// Property returns a property value and whether it is set.
	Property(id NodeID, name string) (any, bool, error)
	// SetProperty sets a property. A nil value removes it.
	SetProperty(id NodeID, name string, value any) error

	// Child returns the node held by a single-valued slot, or the zero NodeID.
	Child(id NodeID, slot string) (NodeID, error)
	// SetChild attaches child to a single-valued slot. A zero child clears
	// the slot. A previous occupant is detached and becomes a root.
	SetChild(id NodeID, slot string, child NodeID) error
	// Children returns the ordered nodes held by a multi-valued slot.
	Children(id NodeID, slot string) ([]NodeID, error)
	// SetChildren replaces the contents of a multi-valued slot.
	SetChildren(id NodeID, slot string, children []NodeID) error

	// Parent returns the parent of a node and the slot it occupies.
	// Roots return the zero NodeID.
	Parent(id NodeID) (NodeID, string, error)
	// Roots lists every unattached node.
	Roots() ([]NodeID, error)

	// DeleteNode removes a node and its whole subtree, detaching it from its
	// parent first.
	DeleteNode(id NodeID) error
}

// Transactor is implemented by stores that can apply a group of mutations as
// one unit of work. fn sees its own writes through tx; if fn returns an error
// none of them become visible.
type Transactor interface {
	Update(ctx context.Context, fn func(tx Store) error) error
}
