package ast

import (
	"errors"
	"fmt"
	"slices"

	"github.com/leapstack-labs/sqltree/pkg/core"
)

// Clone deep-copies n into a new, unattached subtree of the same store.
// The source is only read. A nil n yields the zero T.
func Clone[T Node](n T) (T, error) {
	if isNil(n) {
		var zero T
		return zero, nil
	}
	return CloneInto(n, n.Store())
}

// CloneInto deep-copies n into dst, which may be a different store. On
// failure the partially built copy is deleted from dst.
func CloneInto[T Node](n T, dst core.Store) (T, error) {
	var zero T
	if isNil(n) {
		return zero, nil
	}
	c, err := cloneNode(n, dst)
	if err != nil {
		return zero, err
	}
	return c.(T), nil
}

func cloneNode(src Node, dst core.Store) (out Node, err error) {
	sb := src.base()
	id, err := dst.CreateNode(sb.schema.Kind)
	if err != nil {
		return nil, fmt.Errorf("clone %s: %w", sb.schema.Kind, err)
	}
	c := sb.schema.bind(dst, id)
	defer func() {
		if err != nil {
			err = errors.Join(err, dst.DeleteNode(id))
			out = nil
		}
	}()
	cb := c.base()
	for _, f := range sb.schema.Fields {
		switch f.Kind {
		case PropertyField:
			v, ok, err := sb.Property(f.Name)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			if ss, isSlice := v.([]string); isSlice {
				v = slices.Clone(ss)
			}
			if err := cb.SetProperty(f.Name, v); err != nil {
				return nil, err
			}
		case ChildField:
			sc, err := sb.Child(f.Name, f.Requires)
			if err != nil {
				return nil, err
			}
			if sc == nil {
				continue
			}
			cc, err := cloneNode(sc, dst)
			if err != nil {
				return nil, err
			}
			if err := cb.SetChild(f.Name, cc); err != nil {
				_ = dst.DeleteNode(cc.ID())
				return nil, err
			}
		case ChildListField:
			scs, err := sb.Children(f.Name, f.Requires)
			if err != nil {
				return nil, err
			}
			if len(scs) == 0 {
				continue
			}
			ccs := make([]Node, 0, len(scs))
			for _, sc := range scs {
				cc, err := cloneNode(sc, dst)
				if err != nil {
					for _, done := range ccs {
						_ = dst.DeleteNode(done.ID())
					}
					return nil, err
				}
				ccs = append(ccs, cc)
			}
			if err := cb.SetChildren(f.Name, ccs); err != nil {
				for _, done := range ccs {
					_ = dst.DeleteNode(done.ID())
				}
				return nil, err
			}
		}
	}
	return c, nil
}
