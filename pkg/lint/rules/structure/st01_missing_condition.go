package structure

import (
	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
	"github.com/leapstack-labs/sqltree/pkg/lint"
)

func init() {
	lint.Register(MissingCondition)
}

// MissingCondition flags WHILE and IF statements without a condition.
var MissingCondition = lint.RuleDef{
	ID:          "ST01",
	Name:        "structure.missing_condition",
	Group:       "structure",
	Description: "WHILE and IF statements must have a condition.",
	Severity:    lint.SeverityError,
	Kinds:       []core.Kind{core.KindWhile, core.KindIf},
	Check:       checkMissingCondition,
	Rationale:   "A conditional statement without a condition cannot be rendered or executed.",
}

func checkMissingCondition(n ast.Node, _ map[string]any) ([]lint.Diagnostic, error) {
	var (
		cond ast.Criteria
		err  error
	)
	switch n := n.(type) {
	case *ast.WhileStatement:
		cond, err = n.Condition()
	case *ast.IfStatement:
		cond, err = n.Condition()
	default:
		return nil, nil
	}
	if err != nil || cond != nil {
		return nil, err
	}
	return []lint.Diagnostic{{Message: string(n.Kind()) + " has no condition"}}, nil
}
