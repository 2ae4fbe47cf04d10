package structure

import (
	"fmt"

	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
	"github.com/leapstack-labs/sqltree/pkg/lint"
)

func init() {
	lint.Register(IncompleteCriteria)
}

// IncompleteCriteria flags criteria that are missing an operand or operator.
var IncompleteCriteria = lint.RuleDef{
	ID:          "ST03",
	Name:        "structure.incomplete_criteria",
	Group:       "structure",
	Description: "Criteria must have all operands and an operator.",
	Severity:    lint.SeverityError,
	Kinds: []core.Kind{
		core.KindCompareCriteria,
		core.KindCompoundCriteria,
		core.KindNotCriteria,
		core.KindIsNullCriteria,
	},
	Check: checkIncompleteCriteria,
}

func checkIncompleteCriteria(n ast.Node, _ map[string]any) ([]lint.Diagnostic, error) {
	var missing []string
	switch n := n.(type) {
	case *ast.CompareCriteria:
		left, err := n.LeftExpression()
		if err != nil {
			return nil, err
		}
		right, err := n.RightExpression()
		if err != nil {
			return nil, err
		}
		op, err := n.Operator()
		if err != nil {
			return nil, err
		}
		if left == nil {
			missing = append(missing, "left operand")
		}
		if op == "" {
			missing = append(missing, "operator")
		}
		if right == nil {
			missing = append(missing, "right operand")
		}
	case *ast.CompoundCriteria:
		op, err := n.Operator()
		if err != nil {
			return nil, err
		}
		crits, err := n.Criteria()
		if err != nil {
			return nil, err
		}
		if op == "" {
			missing = append(missing, "operator")
		}
		if len(crits) < 2 {
			missing = append(missing, fmt.Sprintf("operands (has %d, needs 2)", len(crits)))
		}
	case *ast.NotCriteria:
		c, err := n.Criteria()
		if err != nil {
			return nil, err
		}
		if c == nil {
			missing = append(missing, "operand")
		}
	case *ast.IsNullCriteria:
		e, err := n.Expression()
		if err != nil {
			return nil, err
		}
		if e == nil {
			missing = append(missing, "expression")
		}
	}

	diags := make([]lint.Diagnostic, 0, len(missing))
	for _, m := range missing {
		diags = append(diags, lint.Diagnostic{Message: fmt.Sprintf("%s is missing its %s", n.Kind(), m)})
	}
	return diags, nil
}
