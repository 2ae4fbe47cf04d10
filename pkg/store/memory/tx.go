package memory

import (
	"errors"

	"github.com/leapstack-labs/sqltree/pkg/core"
)

// ErrTxDone is returned when a store handed to an Update callback is used
// after the callback has returned.
var ErrTxDone = errors.New("memory: transaction has already been committed or rolled back")

// tx is the core.Store seen by an Update callback. It is valid only while
// the callback runs and the write lock is held.
type tx struct {
	g    *graph
	done bool
}

var _ core.Store = (*tx)(nil)

func (t *tx) graph() (*graph, error) {
	if t.done {
		return nil, ErrTxDone
	}
	return t.g, nil
}

func (t *tx) CreateNode(kind core.Kind) (core.NodeID, error) {
	g, err := t.graph()
	if err != nil {
		return "", err
	}
	return g.CreateNode(kind)
}

func (t *tx) Kind(id core.NodeID) (core.Kind, error) {
	g, err := t.graph()
	if err != nil {
		return "", err
	}
	return g.Kind(id)
}

func (t *tx) Property(id core.NodeID, name string) (any, bool, error) {
	g, err := t.graph()
	if err != nil {
		return nil, false, err
	}
	return g.Property(id, name)
}

func (t *tx) SetProperty(id core.NodeID, name string, value any) error {
	g, err := t.graph()
	if err != nil {
		return err
	}
	return g.SetProperty(id, name, value)
}

func (t *tx) Child(id core.NodeID, slot string) (core.NodeID, error) {
	g, err := t.graph()
	if err != nil {
		return "", err
	}
	return g.Child(id, slot)
}

func (t *tx) SetChild(id core.NodeID, slot string, child core.NodeID) error {
	g, err := t.graph()
	if err != nil {
		return err
	}
	return g.SetChild(id, slot, child)
}

func (t *tx) Children(id core.NodeID, slot string) ([]core.NodeID, error) {
	g, err := t.graph()
	if err != nil {
		return nil, err
	}
	return g.Children(id, slot)
}

func (t *tx) SetChildren(id core.NodeID, slot string, children []core.NodeID) error {
	g, err := t.graph()
	if err != nil {
		return err
	}
	return g.SetChildren(id, slot, children)
}

func (t *tx) Parent(id core.NodeID) (core.NodeID, string, error) {
	g, err := t.graph()
	if err != nil {
		return "", "", err
	}
	return g.Parent(id)
}

func (t *tx) Roots() ([]core.NodeID, error) {
	g, err := t.graph()
	if err != nil {
		return nil, err
	}
	return g.Roots()
}

func (t *tx) DeleteNode(id core.NodeID) error {
	g, err := t.graph()
	if err != nil {
		return err
	}
	return g.DeleteNode(id)
}
