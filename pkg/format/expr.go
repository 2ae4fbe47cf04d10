package format

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
)

func (p *Printer) formatExpr(s *ast.Snapshot) {
	if s == nil {
		p.write(missing)
		return
	}
	switch s.Kind {
	case core.KindConstant:
		p.write(formatConstant(s.Properties[ast.ValueProp]))
	case core.KindElementSymbol:
		if group, ok := stringProp(s, ast.GroupSymbolProp); ok && group != "" {
			p.write(group + ".")
		}
		p.formatName(s, ast.NameProp)
	case core.KindFunction:
		p.formatName(s, ast.NameProp)
		p.write("(")
		args := slot(s, ast.ArgsSlot)
		p.join(len(args), ", ", func(i int) { p.formatExpr(args[i]) })
		p.write(")")
	case core.KindCompareCriteria:
		p.formatExpr(child(s, ast.LeftExpressionSlot))
		p.space()
		op, ok := stringProp(s, ast.OperatorProp)
		if !ok {
			op = missing
		}
		p.write(op)
		p.space()
		p.formatExpr(child(s, ast.RightExpressionSlot))
	case core.KindCompoundCriteria:
		op, ok := stringProp(s, ast.OperatorProp)
		if !ok {
			op = missing
		}
		crits := slot(s, ast.CriteriaSlot)
		p.join(len(crits), " "+strings.ToUpper(op)+" ", func(i int) { p.formatNested(crits[i]) })
	case core.KindNotCriteria:
		p.keyword("not")
		p.write(" (")
		p.formatExpr(child(s, ast.CriteriaSlot))
		p.write(")")
	case core.KindIsNullCriteria:
		p.formatExpr(child(s, ast.ExpressionSlot))
		p.space()
		p.keyword("is")
		if boolProp(s, ast.NegatedProp) {
			p.space()
			p.keyword("not")
		}
		p.space()
		p.keyword("null")
	default:
		p.write("/* " + string(s.Kind) + " */")
	}
}

// formatNested wraps compound operands of a compound in parentheses.
func (p *Printer) formatNested(s *ast.Snapshot) {
	if s != nil && s.Kind == core.KindCompoundCriteria {
		p.write("(")
		p.formatExpr(s)
		p.write(")")
		return
	}
	p.formatExpr(s)
}

func formatConstant(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprint(v)
	}
}
