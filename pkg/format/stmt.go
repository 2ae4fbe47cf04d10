package format

import (
	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
)

func isStatement(s *ast.Snapshot) bool {
	schema, ok := ast.SchemaOf(s.Kind)
	return ok && schema.Caps.Has(ast.CapStatement)
}

func (p *Printer) formatStatement(s *ast.Snapshot) {
	if s == nil {
		p.write(missing)
		p.write(";")
		p.writeln()
		return
	}
	switch s.Kind {
	case core.KindBlock:
		p.formatLabel(s)
		p.formatBlock(s)
	case core.KindWhile:
		p.formatLabel(s)
		p.keyword("while")
		p.write(" (")
		p.formatExpr(child(s, ast.ConditionSlot))
		p.write(")")
		p.writeln()
		p.formatBlock(child(s, ast.BlockSlot))
	case core.KindLoop:
		p.formatLabel(s)
		p.keyword("loop on")
		p.write(" (")
		p.formatExpr(child(s, ast.QuerySlot))
		p.write(") ")
		p.keyword("as")
		p.space()
		p.formatName(s, ast.CursorNameProp)
		p.writeln()
		p.formatBlock(child(s, ast.BlockSlot))
	case core.KindIf:
		p.keyword("if")
		p.write(" (")
		p.formatExpr(child(s, ast.ConditionSlot))
		p.write(")")
		p.writeln()
		p.formatBlock(child(s, ast.IfBlockSlot))
		if els := child(s, ast.ElseBlockSlot); els != nil {
			p.keyword("else")
			p.writeln()
			p.formatBlock(els)
		}
	case core.KindBranching:
		mode, ok := stringProp(s, ast.ModeProp)
		if !ok {
			mode = missing
		}
		p.keyword(mode)
		if label, ok := stringProp(s, ast.LabelProp); ok && label != "" {
			p.space()
			p.write(label)
		}
		p.endStatement()
	case core.KindAssignment:
		p.formatExpr(child(s, ast.VariableSlot))
		p.write(" = ")
		p.formatExpr(child(s, ast.ExpressionSlot))
		p.endStatement()
	case core.KindDeclare:
		p.keyword("declare")
		p.space()
		p.formatName(s, ast.VariableTypeProp)
		p.space()
		p.formatExpr(child(s, ast.VariableSlot))
		if e := child(s, ast.ExpressionSlot); e != nil {
			p.write(" = ")
			p.formatExpr(e)
		}
		p.endStatement()
	case core.KindRaise:
		p.keyword("raise")
		if boolProp(s, ast.WarningProp) {
			p.space()
			p.keyword("sqlwarning")
		}
		p.space()
		p.formatExpr(child(s, ast.ExpressionSlot))
		p.endStatement()
	case core.KindReturn:
		p.keyword("return")
		if e := child(s, ast.ExpressionSlot); e != nil {
			p.space()
			p.formatExpr(e)
		}
		p.endStatement()
	default:
		p.write("/* " + string(s.Kind) + " */")
		p.writeln()
	}
}

func (p *Printer) endStatement() {
	p.write(";")
	p.writeln()
}

// formatLabel prints "label: " when the label property is present.
func (p *Printer) formatLabel(s *ast.Snapshot) {
	if label, ok := stringProp(s, ast.LabelProp); ok && label != "" {
		p.write(label + ": ")
	}
}

func (p *Printer) formatName(s *ast.Snapshot, prop string) {
	if v, ok := stringProp(s, prop); ok && v != "" {
		p.write(v)
		return
	}
	p.write(missing)
}

func (p *Printer) formatBlock(s *ast.Snapshot) {
	p.keyword("begin")
	if s != nil && boolProp(s, ast.AtomicProp) {
		p.space()
		p.keyword("atomic")
	}
	p.writeln()
	if s == nil {
		p.nested(func() {
			p.write(missing)
			p.writeln()
		})
		p.keyword("end")
		p.writeln()
		return
	}
	p.nested(func() { p.formatStatements(slot(s, ast.StatementsSlot)) })
	if group, ok := stringProp(s, ast.ExceptionGroupProp); ok && group != "" {
		p.keyword("exception")
		p.space()
		p.write(group)
		p.writeln()
		p.nested(func() { p.formatStatements(slot(s, ast.ExceptionStatementsSlot)) })
	}
	p.keyword("end")
	p.writeln()
}

func (p *Printer) formatStatements(stmts []*ast.Snapshot) {
	for _, st := range stmts {
		p.formatStatement(st)
	}
}
