package ast

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqltree/pkg/core"
)

// ---------- Block ----------

// Block is an ordered list of statements with an optional exception handler
// section (EXCEPTION group ...).
type Block struct{ Base }

// NewBlock creates an empty, unattached block.
func NewBlock(s core.Store) (*Block, error) { return create[*Block](s, core.KindBlock) }

func (*Block) stmtNode() {}

// Label implements Labeled.
func (b *Block) Label() (string, error) { return b.label() }

// HasLabel implements Labeled.
func (b *Block) HasLabel() (bool, error) { return b.hasLabel() }

// SetLabel implements Labeled.
func (b *Block) SetLabel(label string) error { return b.setLabel(label) }

// ClearLabel implements Labeled.
func (b *Block) ClearLabel() error { return b.clearLabel() }

// Atomic reports whether the block runs as one atomic unit.
func (b *Block) Atomic() (bool, error) { return b.boolProp(AtomicProp) }

// SetAtomic sets the atomic flag.
func (b *Block) SetAtomic(atomic bool) error { return b.SetProperty(AtomicProp, atomic) }

// Statements returns the block's statements in order.
func (b *Block) Statements() ([]Statement, error) {
	return childrenAs[Statement](&b.Base, StatementsSlot, CapStatement)
}

// SetStatements replaces the block's statements.
func (b *Block) SetStatements(stmts ...Statement) error {
	return b.SetChildren(StatementsSlot, toNodes(stmts))
}

// AddStatement appends a statement.
func (b *Block) AddStatement(stmt Statement) error {
	stmts, err := b.Statements()
	if err != nil {
		return err
	}
	return b.SetStatements(append(stmts, stmt)...)
}

// ExceptionGroup returns the name the caught exception is bound to.
func (b *Block) ExceptionGroup() (string, error) { return b.stringProp(ExceptionGroupProp) }

// SetExceptionGroup sets the exception group name. An empty name removes it.
func (b *Block) SetExceptionGroup(group string) error {
	if group == "" {
		return b.SetProperty(ExceptionGroupProp, nil)
	}
	return b.SetProperty(ExceptionGroupProp, group)
}

// ExceptionStatements returns the statements of the exception section.
func (b *Block) ExceptionStatements() ([]Statement, error) {
	return childrenAs[Statement](&b.Base, ExceptionStatementsSlot, CapStatement)
}

// SetExceptionStatements replaces the exception section.
func (b *Block) SetExceptionStatements(stmts ...Statement) error {
	return b.SetChildren(ExceptionStatementsSlot, toNodes(stmts))
}

// ---------- WhileStatement ----------

// WhileStatement repeats its block while the condition holds.
type WhileStatement struct{ Base }

// NewWhileStatement creates an unattached WHILE statement.
func NewWhileStatement(s core.Store) (*WhileStatement, error) {
	return create[*WhileStatement](s, core.KindWhile)
}

func (*WhileStatement) stmtNode() {}

// Condition returns the loop condition, or nil.
func (w *WhileStatement) Condition() (Criteria, error) {
	return childAs[Criteria](&w.Base, ConditionSlot, CapCriteria)
}

// SetCondition sets the loop condition.
func (w *WhileStatement) SetCondition(c Criteria) error { return w.SetChild(ConditionSlot, c) }

// Block returns the loop body, or nil.
func (w *WhileStatement) Block() (*Block, error) {
	return childAs[*Block](&w.Base, BlockSlot, CapBlock)
}

// SetBlock sets the loop body.
func (w *WhileStatement) SetBlock(block *Block) error { return w.SetChild(BlockSlot, block) }

// Label implements Labeled.
func (w *WhileStatement) Label() (string, error) { return w.label() }

// HasLabel implements Labeled.
func (w *WhileStatement) HasLabel() (bool, error) { return w.hasLabel() }

// SetLabel implements Labeled.
func (w *WhileStatement) SetLabel(label string) error { return w.setLabel(label) }

// ClearLabel implements Labeled.
func (w *WhileStatement) ClearLabel() error { return w.clearLabel() }

// ---------- LoopStatement ----------

// LoopStatement iterates a cursor over the rows produced by its query.
type LoopStatement struct{ Base }

// NewLoopStatement creates an unattached LOOP statement.
func NewLoopStatement(s core.Store) (*LoopStatement, error) {
	return create[*LoopStatement](s, core.KindLoop)
}

func (*LoopStatement) stmtNode() {}

// CursorName returns the name rows are bound to inside the loop.
func (l *LoopStatement) CursorName() (string, error) { return l.stringProp(CursorNameProp) }

// SetCursorName sets the cursor name.
func (l *LoopStatement) SetCursorName(name string) error { return l.SetProperty(CursorNameProp, name) }

// Query returns the row source, or nil.
func (l *LoopStatement) Query() (Expression, error) {
	return childAs[Expression](&l.Base, QuerySlot, CapExpression)
}

// SetQuery sets the row source.
func (l *LoopStatement) SetQuery(q Expression) error { return l.SetChild(QuerySlot, q) }

// Block returns the loop body, or nil.
func (l *LoopStatement) Block() (*Block, error) {
	return childAs[*Block](&l.Base, BlockSlot, CapBlock)
}

// SetBlock sets the loop body.
func (l *LoopStatement) SetBlock(block *Block) error { return l.SetChild(BlockSlot, block) }

// Label implements Labeled.
func (l *LoopStatement) Label() (string, error) { return l.label() }

// HasLabel implements Labeled.
func (l *LoopStatement) HasLabel() (bool, error) { return l.hasLabel() }

// SetLabel implements Labeled.
func (l *LoopStatement) SetLabel(label string) error { return l.setLabel(label) }

// ClearLabel implements Labeled.
func (l *LoopStatement) ClearLabel() error { return l.clearLabel() }

// ---------- IfStatement ----------

// IfStatement runs IfBlock when the condition holds, ElseBlock otherwise.
type IfStatement struct{ Base }

// NewIfStatement creates an unattached IF statement.
func NewIfStatement(s core.Store) (*IfStatement, error) {
	return create[*IfStatement](s, core.KindIf)
}

func (*IfStatement) stmtNode() {}

// Condition returns the branch condition, or nil.
func (i *IfStatement) Condition() (Criteria, error) {
	return childAs[Criteria](&i.Base, ConditionSlot, CapCriteria)
}

// SetCondition sets the branch condition.
func (i *IfStatement) SetCondition(c Criteria) error { return i.SetChild(ConditionSlot, c) }

// IfBlock returns the THEN block, or nil.
func (i *IfStatement) IfBlock() (*Block, error) {
	return childAs[*Block](&i.Base, IfBlockSlot, CapBlock)
}

// SetIfBlock sets the THEN block.
func (i *IfStatement) SetIfBlock(block *Block) error { return i.SetChild(IfBlockSlot, block) }

// ElseBlock returns the ELSE block, or nil.
func (i *IfStatement) ElseBlock() (*Block, error) {
	return childAs[*Block](&i.Base, ElseBlockSlot, CapBlock)
}

// SetElseBlock sets the ELSE block.
func (i *IfStatement) SetElseBlock(block *Block) error { return i.SetChild(ElseBlockSlot, block) }

// ---------- BranchingStatement ----------

// BranchMode is the kind of jump a BranchingStatement performs.
type BranchMode string

// BranchMode constants.
const (
	BranchBreak    BranchMode = "BREAK"
	BranchContinue BranchMode = "CONTINUE"
	BranchLeave    BranchMode = "LEAVE"
)

// ParseBranchMode converts a keyword to a BranchMode.
func ParseBranchMode(s string) (BranchMode, bool) {
	switch m := BranchMode(strings.ToUpper(s)); m {
	case BranchBreak, BranchContinue, BranchLeave:
		return m, true
	default:
		return "", false
	}
}

// BranchingStatement is BREAK, CONTINUE or LEAVE with an optional target
// label. It does not carry a label of its own.
type BranchingStatement struct{ Base }

// NewBranchingStatement creates an unattached branching statement.
func NewBranchingStatement(s core.Store) (*BranchingStatement, error) {
	return create[*BranchingStatement](s, core.KindBranching)
}

func (*BranchingStatement) stmtNode() {}

// Mode returns the jump kind.
func (br *BranchingStatement) Mode() (BranchMode, error) {
	s, err := br.stringProp(ModeProp)
	return BranchMode(s), err
}

// SetMode sets the jump kind.
func (br *BranchingStatement) SetMode(mode BranchMode) error {
	if _, ok := ParseBranchMode(string(mode)); !ok {
		return fmt.Errorf("%w: branch mode %q", ErrInvalidProperty, mode)
	}
	return br.SetProperty(ModeProp, string(mode))
}

// TargetLabel returns the label of the statement jumped to, or "".
func (br *BranchingStatement) TargetLabel() (string, error) { return br.stringProp(LabelProp) }

// SetTargetLabel sets the jump target label. An empty label removes it.
func (br *BranchingStatement) SetTargetLabel(label string) error {
	if label == "" {
		return br.SetProperty(LabelProp, nil)
	}
	return br.SetProperty(LabelProp, label)
}

// ---------- AssignmentStatement ----------

// AssignmentStatement assigns an expression to a variable.
type AssignmentStatement struct{ Base }

// NewAssignmentStatement creates an unattached assignment.
func NewAssignmentStatement(s core.Store) (*AssignmentStatement, error) {
	return create[*AssignmentStatement](s, core.KindAssignment)
}

func (*AssignmentStatement) stmtNode() {}

// Variable returns the assigned variable, or nil.
func (a *AssignmentStatement) Variable() (*ElementSymbol, error) {
	return childAs[*ElementSymbol](&a.Base, VariableSlot, CapElementSymbol)
}

// SetVariable sets the assigned variable.
func (a *AssignmentStatement) SetVariable(v *ElementSymbol) error { return a.SetChild(VariableSlot, v) }

// Expression returns the assigned value, or nil.
func (a *AssignmentStatement) Expression() (Expression, error) {
	return childAs[Expression](&a.Base, ExpressionSlot, CapExpression)
}

// SetExpression sets the assigned value.
func (a *AssignmentStatement) SetExpression(e Expression) error { return a.SetChild(ExpressionSlot, e) }

// ---------- DeclareStatement ----------

// DeclareStatement declares a typed variable with an optional initial value.
type DeclareStatement struct{ Base }

// NewDeclareStatement creates an unattached declaration.
func NewDeclareStatement(s core.Store) (*DeclareStatement, error) {
	return create[*DeclareStatement](s, core.KindDeclare)
}

func (*DeclareStatement) stmtNode() {}

// Variable returns the declared variable, or nil.
func (d *DeclareStatement) Variable() (*ElementSymbol, error) {
	return childAs[*ElementSymbol](&d.Base, VariableSlot, CapElementSymbol)
}

// SetVariable sets the declared variable.
func (d *DeclareStatement) SetVariable(v *ElementSymbol) error { return d.SetChild(VariableSlot, v) }

// VariableType returns the declared type name.
func (d *DeclareStatement) VariableType() (string, error) { return d.stringProp(VariableTypeProp) }

// SetVariableType sets the declared type name.
func (d *DeclareStatement) SetVariableType(typ string) error {
	return d.SetProperty(VariableTypeProp, typ)
}

// Expression returns the initial value, or nil.
func (d *DeclareStatement) Expression() (Expression, error) {
	return childAs[Expression](&d.Base, ExpressionSlot, CapExpression)
}

// SetExpression sets the initial value.
func (d *DeclareStatement) SetExpression(e Expression) error { return d.SetChild(ExpressionSlot, e) }

// ---------- RaiseStatement ----------

// RaiseStatement raises an error, or a warning when Warning is set.
type RaiseStatement struct{ Base }

// NewRaiseStatement creates an unattached RAISE statement.
func NewRaiseStatement(s core.Store) (*RaiseStatement, error) {
	return create[*RaiseStatement](s, core.KindRaise)
}

func (*RaiseStatement) stmtNode() {}

// Expression returns the raised value, or nil.
func (r *RaiseStatement) Expression() (Expression, error) {
	return childAs[Expression](&r.Base, ExpressionSlot, CapExpression)
}

// SetExpression sets the raised value.
func (r *RaiseStatement) SetExpression(e Expression) error { return r.SetChild(ExpressionSlot, e) }

// Warning reports whether the statement raises a warning instead of an error.
func (r *RaiseStatement) Warning() (bool, error) { return r.boolProp(WarningProp) }

// SetWarning sets the warning flag.
func (r *RaiseStatement) SetWarning(warning bool) error { return r.SetProperty(WarningProp, warning) }

// ---------- ReturnStatement ----------

// ReturnStatement leaves the procedure, optionally with a value.
type ReturnStatement struct{ Base }

// NewReturnStatement creates an unattached RETURN statement.
func NewReturnStatement(s core.Store) (*ReturnStatement, error) {
	return create[*ReturnStatement](s, core.KindReturn)
}

func (*ReturnStatement) stmtNode() {}

// Expression returns the returned value, or nil.
func (r *ReturnStatement) Expression() (Expression, error) {
	return childAs[Expression](&r.Base, ExpressionSlot, CapExpression)
}

// SetExpression sets the returned value.
func (r *ReturnStatement) SetExpression(e Expression) error { return r.SetChild(ExpressionSlot, e) }
