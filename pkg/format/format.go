package format

import (
	"fmt"

	"github.com/leapstack-labs/sqltree/pkg/ast"
)

// Format renders the subtree of n as procedure SQL.
func Format(n ast.Node) (string, error) {
	snap, err := ast.TakeSnapshot(n)
	if err != nil {
		return "", err
	}
	return Snapshot(snap), nil
}

// Snapshot renders a detached tree as procedure SQL. Empty slots print as
// <missing> so incomplete trees still render.
func Snapshot(s *ast.Snapshot) string {
	p := newPrinter()
	if s == nil {
		p.write(missing)
		return p.String()
	}
	if isStatement(s) {
		p.formatStatement(s)
	} else {
		p.formatExpr(s)
	}
	return p.String()
}

const missing = "<missing>"

func slot(s *ast.Snapshot, name string) []*ast.Snapshot {
	for _, sl := range s.Slots {
		if sl.Name == name {
			return sl.Nodes
		}
	}
	return nil
}

func child(s *ast.Snapshot, name string) *ast.Snapshot {
	if nodes := slot(s, name); len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}

func stringProp(s *ast.Snapshot, name string) (string, bool) {
	v, ok := s.Properties[name]
	if !ok || v == nil {
		return "", false
	}
	if str, ok := v.(string); ok {
		return str, true
	}
	return fmt.Sprint(v), true
}

func boolProp(s *ast.Snapshot, name string) bool {
	b, _ := s.Properties[name].(bool)
	return b
}
