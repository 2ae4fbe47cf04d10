package ast

import "slices"

// Equal reports whether a and b are structurally equal: same kind and every
// declared field equal, children compared recursively. Node identity and the
// owning store are not part of equality, so nodes in different stores can be
// equal. An absent property differs from one set to its zero value.
func Equal(a, b Node) (bool, error) {
	an, bn := isNil(a), isNil(b)
	if an || bn {
		return an && bn, nil
	}
	if a.Kind() != b.Kind() {
		return false, nil
	}
	if a.Store() == b.Store() && a.ID() == b.ID() {
		return true, nil
	}
	ab, bb := a.base(), b.base()
	for _, f := range ab.schema.Fields {
		eq, err := fieldEqual(ab, bb, f)
		if err != nil || !eq {
			return false, err
		}
	}
	return true, nil
}

func fieldEqual(a, b *Base, f Field) (bool, error) {
	switch f.Kind {
	case PropertyField:
		av, aok, err := a.Property(f.Name)
		if err != nil {
			return false, err
		}
		bv, bok, err := b.Property(f.Name)
		if err != nil {
			return false, err
		}
		if aok != bok {
			return false, nil
		}
		return !aok || valuesEqual(av, bv), nil
	case ChildField:
		ac, err := a.Child(f.Name, f.Requires)
		if err != nil {
			return false, err
		}
		bc, err := b.Child(f.Name, f.Requires)
		if err != nil {
			return false, err
		}
		return Equal(ac, bc)
	case ChildListField:
		as, err := a.Children(f.Name, f.Requires)
		if err != nil {
			return false, err
		}
		bs, err := b.Children(f.Name, f.Requires)
		if err != nil {
			return false, err
		}
		if len(as) != len(bs) {
			return false, nil
		}
		for i := range as {
			eq, err := Equal(as[i], bs[i])
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	}
	return false, nil
}

func valuesEqual(a, b any) bool {
	as, aok := a.([]string)
	bs, bok := b.([]string)
	if aok || bok {
		return aok && bok && slices.Equal(as, bs)
	}
	return a == b
}
