package convention

import (
	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
	"github.com/leapstack-labs/sqltree/pkg/lint"
)

func init() {
	lint.Register(ConstantCondition)
}

// ConstantCondition warns when a WHILE or IF condition compares two
// constants, so the outcome never changes.
//
// Options:
//   - allow_while (bool): skip WHILE statements, for loops written as
//     WHILE (1 = 1) and left with BREAK or LEAVE.
var ConstantCondition = lint.RuleDef{
	ID:          "CV01",
	Name:        "convention.constant_condition",
	Group:       "convention",
	Description: "Condition compares two constants.",
	Severity:    lint.SeverityWarning,
	Kinds:       []core.Kind{core.KindWhile, core.KindIf},
	Check:       checkConstantCondition,
	ConfigKeys:  []string{"allow_while"},
	Rationale:   "A constant WHILE condition loops forever or never runs; a constant IF has a dead branch.",
}

func checkConstantCondition(n ast.Node, opts map[string]any) ([]lint.Diagnostic, error) {
	var (
		cond ast.Criteria
		err  error
	)
	switch n := n.(type) {
	case *ast.WhileStatement:
		if lint.GetBoolOption(opts, "allow_while", false) {
			return nil, nil
		}
		cond, err = n.Condition()
	case *ast.IfStatement:
		cond, err = n.Condition()
	}
	if err != nil {
		return nil, err
	}
	cmp, ok := cond.(*ast.CompareCriteria)
	if !ok {
		return nil, nil
	}
	left, err := cmp.LeftExpression()
	if err != nil {
		return nil, err
	}
	right, err := cmp.RightExpression()
	if err != nil {
		return nil, err
	}
	_, lc := left.(*ast.Constant)
	_, rc := right.(*ast.Constant)
	if !lc || !rc {
		return nil, nil
	}
	return []lint.Diagnostic{{Message: string(n.Kind()) + " condition compares two constants"}}, nil
}
