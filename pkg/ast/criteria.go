package ast

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqltree/pkg/core"
)

// CompareOperator is a comparison operator of CompareCriteria.
type CompareOperator string

// CompareOperator constants.
const (
	OpEQ CompareOperator = "="
	OpNE CompareOperator = "<>"
	OpLT CompareOperator = "<"
	OpGT CompareOperator = ">"
	OpLE CompareOperator = "<="
	OpGE CompareOperator = ">="
)

// Valid reports whether op is a known comparison operator.
func (op CompareOperator) Valid() bool {
	switch op {
	case OpEQ, OpNE, OpLT, OpGT, OpLE, OpGE:
		return true
	default:
		return false
	}
}

// CompoundOperator joins the operands of CompoundCriteria.
type CompoundOperator string

// CompoundOperator constants.
const (
	OpAnd CompoundOperator = "AND"
	OpOr  CompoundOperator = "OR"
)

// ParseCompoundOperator converts a keyword to a CompoundOperator.
func ParseCompoundOperator(s string) (CompoundOperator, bool) {
	switch op := CompoundOperator(strings.ToUpper(s)); op {
	case OpAnd, OpOr:
		return op, true
	default:
		return "", false
	}
}

// ---------- CompareCriteria ----------

// CompareCriteria compares two expressions.
type CompareCriteria struct{ Base }

// NewCompareCriteria creates an unattached comparison.
func NewCompareCriteria(s core.Store) (*CompareCriteria, error) {
	return create[*CompareCriteria](s, core.KindCompareCriteria)
}

func (*CompareCriteria) exprNode()     {}
func (*CompareCriteria) criteriaNode() {}

// LeftExpression returns the left operand, or nil.
func (c *CompareCriteria) LeftExpression() (Expression, error) {
	return childAs[Expression](&c.Base, LeftExpressionSlot, CapExpression)
}

// SetLeftExpression sets the left operand.
func (c *CompareCriteria) SetLeftExpression(e Expression) error {
	return c.SetChild(LeftExpressionSlot, e)
}

// RightExpression returns the right operand, or nil.
func (c *CompareCriteria) RightExpression() (Expression, error) {
	return childAs[Expression](&c.Base, RightExpressionSlot, CapExpression)
}

// SetRightExpression sets the right operand.
func (c *CompareCriteria) SetRightExpression(e Expression) error {
	return c.SetChild(RightExpressionSlot, e)
}

// Operator returns the comparison operator.
func (c *CompareCriteria) Operator() (CompareOperator, error) {
	s, err := c.stringProp(OperatorProp)
	return CompareOperator(s), err
}

// SetOperator sets the comparison operator.
func (c *CompareCriteria) SetOperator(op CompareOperator) error {
	if !op.Valid() {
		return fmt.Errorf("%w: compare operator %q", ErrInvalidProperty, op)
	}
	return c.SetProperty(OperatorProp, string(op))
}

// ---------- CompoundCriteria ----------

// CompoundCriteria combines criteria with AND or OR.
type CompoundCriteria struct{ Base }

// NewCompoundCriteria creates an unattached compound criteria.
func NewCompoundCriteria(s core.Store) (*CompoundCriteria, error) {
	return create[*CompoundCriteria](s, core.KindCompoundCriteria)
}

func (*CompoundCriteria) exprNode()     {}
func (*CompoundCriteria) criteriaNode() {}

// Operator returns AND or OR.
func (c *CompoundCriteria) Operator() (CompoundOperator, error) {
	s, err := c.stringProp(OperatorProp)
	return CompoundOperator(s), err
}

// SetOperator sets AND or OR.
func (c *CompoundCriteria) SetOperator(op CompoundOperator) error {
	if _, ok := ParseCompoundOperator(string(op)); !ok {
		return fmt.Errorf("%w: compound operator %q", ErrInvalidProperty, op)
	}
	return c.SetProperty(OperatorProp, string(op))
}

// Criteria returns the operands in order.
func (c *CompoundCriteria) Criteria() ([]Criteria, error) {
	return childrenAs[Criteria](&c.Base, CriteriaSlot, CapCriteria)
}

// SetCriteria replaces the operands.
func (c *CompoundCriteria) SetCriteria(crits ...Criteria) error {
	return c.SetChildren(CriteriaSlot, toNodes(crits))
}

// AddCriteria appends an operand.
func (c *CompoundCriteria) AddCriteria(crit Criteria) error {
	crits, err := c.Criteria()
	if err != nil {
		return err
	}
	return c.SetCriteria(append(crits, crit)...)
}

// ---------- NotCriteria ----------

// NotCriteria negates a criteria.
type NotCriteria struct{ Base }

// NewNotCriteria creates an unattached NOT.
func NewNotCriteria(s core.Store) (*NotCriteria, error) {
	return create[*NotCriteria](s, core.KindNotCriteria)
}

func (*NotCriteria) exprNode()     {}
func (*NotCriteria) criteriaNode() {}

// Criteria returns the negated criteria, or nil.
func (n *NotCriteria) Criteria() (Criteria, error) {
	return childAs[Criteria](&n.Base, CriteriaSlot, CapCriteria)
}

// SetCriteria sets the negated criteria.
func (n *NotCriteria) SetCriteria(c Criteria) error { return n.SetChild(CriteriaSlot, c) }

// ---------- IsNullCriteria ----------

// IsNullCriteria is "expr IS [NOT] NULL".
type IsNullCriteria struct{ Base }

// NewIsNullCriteria creates an unattached IS NULL test.
func NewIsNullCriteria(s core.Store) (*IsNullCriteria, error) {
	return create[*IsNullCriteria](s, core.KindIsNullCriteria)
}

func (*IsNullCriteria) exprNode()     {}
func (*IsNullCriteria) criteriaNode() {}

// Expression returns the tested expression, or nil.
func (i *IsNullCriteria) Expression() (Expression, error) {
	return childAs[Expression](&i.Base, ExpressionSlot, CapExpression)
}

// SetExpression sets the tested expression.
func (i *IsNullCriteria) SetExpression(e Expression) error { return i.SetChild(ExpressionSlot, e) }

// Negated reports IS NOT NULL.
func (i *IsNullCriteria) Negated() (bool, error) { return i.boolProp(NegatedProp) }

// SetNegated sets IS NOT NULL.
func (i *IsNullCriteria) SetNegated(negated bool) error { return i.SetProperty(NegatedProp, negated) }
