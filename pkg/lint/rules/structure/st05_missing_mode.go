package structure

import (
	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
	"github.com/leapstack-labs/sqltree/pkg/lint"
)

func init() {
	lint.Register(MissingMode)
}

// MissingMode flags branching statements with no BREAK/CONTINUE/LEAVE mode.
var MissingMode = lint.RuleDef{
	ID:          "ST05",
	Name:        "structure.missing_mode",
	Group:       "structure",
	Description: "Branching statement has no mode.",
	Severity:    lint.SeverityError,
	Kinds:       []core.Kind{core.KindBranching},
	Check: func(n ast.Node, _ map[string]any) ([]lint.Diagnostic, error) {
		br, ok := n.(*ast.BranchingStatement)
		if !ok {
			return nil, nil
		}
		mode, err := br.Mode()
		if err != nil || mode != "" {
			return nil, err
		}
		return []lint.Diagnostic{{Message: "branching statement has no mode"}}, nil
	},
}
