package memory

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/leapstack-labs/sqltree/pkg/core"
)

type node struct {
	kind  core.Kind
	seq   uint64
	props map[string]any
	slots map[string]core.NodeID
	lists map[string][]core.NodeID

	parent     core.NodeID
	parentSlot string
}

func (n *node) clone() *node {
	c := *n
	c.props = maps.Clone(n.props)
	for k, v := range c.props {
		if ss, ok := v.([]string); ok {
			c.props[k] = slices.Clone(ss)
		}
	}
	c.slots = maps.Clone(n.slots)
	c.lists = maps.Clone(n.lists)
	for k, v := range c.lists {
		c.lists[k] = slices.Clone(v)
	}
	return &c
}

// graph is the unsynchronized node table. It implements core.Store and is
// handed directly to Update callbacks while the write lock is held.
type graph struct {
	nodes map[core.NodeID]*node
	seq   uint64
	newID func() core.NodeID
}

var _ core.Store = (*graph)(nil)

func (g *graph) clone() *graph {
	c := &graph{nodes: make(map[core.NodeID]*node, len(g.nodes)), seq: g.seq, newID: g.newID}
	for id, n := range g.nodes {
		c.nodes[id] = n.clone()
	}
	return c
}

func (g *graph) get(id core.NodeID) (*node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, &core.NotFoundError{ID: id}
	}
	return n, nil
}

func (g *graph) CreateNode(kind core.Kind) (core.NodeID, error) {
	if kind == "" {
		return "", fmt.Errorf("create node: empty kind")
	}
	id := g.newID()
	if _, dup := g.nodes[id]; dup {
		return "", fmt.Errorf("create node: duplicate id %s", id)
	}
	g.seq++
	g.nodes[id] = &node{kind: kind, seq: g.seq}
	return id, nil
}

func (g *graph) Kind(id core.NodeID) (core.Kind, error) {
	n, err := g.get(id)
	if err != nil {
		return "", err
	}
	return n.kind, nil
}

func (g *graph) Property(id core.NodeID, name string) (any, bool, error) {
	n, err := g.get(id)
	if err != nil {
		return nil, false, err
	}
	v, ok := n.props[name]
	if ss, isSlice := v.([]string); isSlice {
		v = slices.Clone(ss)
	}
	return v, ok, nil
}

func (g *graph) SetProperty(id core.NodeID, name string, value any) error {
	n, err := g.get(id)
	if err != nil {
		return err
	}
	if err := core.CheckValue(value); err != nil {
		return err
	}
	if value == nil {
		delete(n.props, name)
		return nil
	}
	if ss, ok := value.([]string); ok {
		value = slices.Clone(ss)
	}
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[name] = value
	return nil
}

func (g *graph) Child(id core.NodeID, slot string) (core.NodeID, error) {
	n, err := g.get(id)
	if err != nil {
		return "", err
	}
	return n.slots[slot], nil
}

func (g *graph) SetChild(id core.NodeID, slot string, child core.NodeID) error {
	n, err := g.get(id)
	if err != nil {
		return err
	}
	old := n.slots[slot]
	if old == child {
		return nil
	}
	if !child.IsZero() {
		if err := g.checkAttach(id, slot, child, nil); err != nil {
			return err
		}
	}
	if !old.IsZero() {
		g.detach(old)
	}
	if child.IsZero() {
		delete(n.slots, slot)
		return nil
	}
	if n.slots == nil {
		n.slots = make(map[string]core.NodeID)
	}
	n.slots[slot] = child
	c := g.nodes[child]
	c.parent, c.parentSlot = id, slot
	return nil
}

func (g *graph) Children(id core.NodeID, slot string) ([]core.NodeID, error) {
	n, err := g.get(id)
	if err != nil {
		return nil, err
	}
	return slices.Clone(n.lists[slot]), nil
}

func (g *graph) SetChildren(id core.NodeID, slot string, children []core.NodeID) error {
	n, err := g.get(id)
	if err != nil {
		return err
	}
	current := n.lists[slot]
	seen := make(map[core.NodeID]bool, len(children))
	for _, c := range children {
		if c.IsZero() {
			return fmt.Errorf("set %s children: zero node id", slot)
		}
		if seen[c] {
			return fmt.Errorf("%w: %s listed twice in %s", core.ErrAlreadyAttached, c, slot)
		}
		seen[c] = true
		if err := g.checkAttach(id, slot, c, current); err != nil {
			return err
		}
	}
	for _, c := range current {
		if !seen[c] {
			g.detach(c)
		}
	}
	if len(children) == 0 {
		delete(n.lists, slot)
		return nil
	}
	if n.lists == nil {
		n.lists = make(map[string][]core.NodeID)
	}
	n.lists[slot] = slices.Clone(children)
	for _, c := range children {
		cn := g.nodes[c]
		cn.parent, cn.parentSlot = id, slot
	}
	return nil
}

// checkAttach verifies child may be placed in parent's slot: it exists, is
// a root (or already in this list slot) and is not parent or an ancestor
// of parent.
func (g *graph) checkAttach(parent core.NodeID, slot string, child core.NodeID, current []core.NodeID) error {
	c, err := g.get(child)
	if err != nil {
		return err
	}
	if !c.parent.IsZero() && !(c.parent == parent && c.parentSlot == slot && slices.Contains(current, child)) {
		return fmt.Errorf("%w: %s is held by %s.%s", core.ErrAlreadyAttached, child, c.parent, c.parentSlot)
	}
	for cur := parent; !cur.IsZero(); cur = g.nodes[cur].parent {
		if cur == child {
			return fmt.Errorf("%w: %s", core.ErrCycle, child)
		}
	}
	return nil
}

// detach clears the parent link of id and removes it from the parent's slot.
func (g *graph) detach(id core.NodeID) {
	n, ok := g.nodes[id]
	if !ok || n.parent.IsZero() {
		return
	}
	if p, ok := g.nodes[n.parent]; ok {
		if p.slots[n.parentSlot] == id {
			delete(p.slots, n.parentSlot)
		}
		if list, ok := p.lists[n.parentSlot]; ok {
			list = slices.DeleteFunc(slices.Clone(list), func(c core.NodeID) bool { return c == id })
			if len(list) == 0 {
				delete(p.lists, n.parentSlot)
			} else {
				p.lists[n.parentSlot] = list
			}
		}
	}
	n.parent, n.parentSlot = "", ""
}

func (g *graph) Parent(id core.NodeID) (core.NodeID, string, error) {
	n, err := g.get(id)
	if err != nil {
		return "", "", err
	}
	return n.parent, n.parentSlot, nil
}

func (g *graph) Roots() ([]core.NodeID, error) {
	var roots []core.NodeID
	for id, n := range g.nodes {
		if n.parent.IsZero() {
			roots = append(roots, id)
		}
	}
	slices.SortFunc(roots, func(a, b core.NodeID) int {
		return cmp.Compare(g.nodes[a].seq, g.nodes[b].seq)
	})
	return roots, nil
}

func (g *graph) DeleteNode(id core.NodeID) error {
	if _, err := g.get(id); err != nil {
		return err
	}
	g.detach(id)
	g.deleteSubtree(id)
	return nil
}

func (g *graph) deleteSubtree(id core.NodeID) {
	n, ok := g.nodes[id]
	if !ok {
		return
	}
	delete(g.nodes, id)
	for _, c := range n.slots {
		g.deleteSubtree(c)
	}
	for _, list := range n.lists {
		for _, c := range list {
			g.deleteSubtree(c)
		}
	}
}
