package convention

import (
	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
	"github.com/leapstack-labs/sqltree/pkg/lint"
)

func init() {
	lint.Register(EmptyLabel)
}

// EmptyLabel flags a label property that is set to the empty string. An
// empty label is kept distinct from no label, so it still takes part in
// equality and hashing.
var EmptyLabel = lint.RuleDef{
	ID:          "CV02",
	Name:        "convention.empty_label",
	Group:       "convention",
	Description: "Label is set but empty.",
	Severity:    lint.SeverityHint,
	Kinds:       []core.Kind{core.KindBlock, core.KindWhile, core.KindLoop},
	Check: func(n ast.Node, _ map[string]any) ([]lint.Diagnostic, error) {
		l, ok := n.(ast.Labeled)
		if !ok {
			return nil, nil
		}
		has, err := l.HasLabel()
		if err != nil || !has {
			return nil, err
		}
		label, err := l.Label()
		if err != nil || label != "" {
			return nil, err
		}
		return []lint.Diagnostic{{Message: "label is set but empty; clear it instead"}}, nil
	},
}
