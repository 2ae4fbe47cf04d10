package ast

import "github.com/leapstack-labs/sqltree/pkg/core"

// Builder constructs trees through the typed constructors and accessors.
// The first error is sticky: once set, later calls return nil nodes and do
// nothing. Check Err after building.
//
//	b := ast.NewBuilder(store)
//	w := b.While("loop1",
//		b.Compare(b.Symbol("i"), ast.OpLT, b.Const(int64(10))),
//		b.Block(b.Assign(b.Symbol("i"), b.Func("add", b.Symbol("i"), b.Const(int64(1))))),
//	)
//	if err := b.Err(); err != nil { ... }
type Builder struct {
	s   core.Store
	err error
}

// NewBuilder returns a Builder that creates nodes in s.
func NewBuilder(s core.Store) *Builder { return &Builder{s: s} }

// Err returns the first error encountered.
func (b *Builder) Err() error { return b.err }

// Store returns the store nodes are created in.
func (b *Builder) Store() core.Store { return b.s }

func (b *Builder) ok() bool { return b.err == nil }

func (b *Builder) check(err error) bool {
	if err != nil && b.err == nil {
		b.err = err
	}
	return b.err == nil
}

func build[T Node](b *Builder, ctor func(core.Store) (T, error), set ...func(T) error) T {
	var zero T
	if !b.ok() {
		return zero
	}
	n, err := ctor(b.s)
	if !b.check(err) {
		return zero
	}
	for _, fn := range set {
		if !b.check(fn(n)) {
			return zero
		}
	}
	return n
}

// Symbol creates an element symbol. A dotted name "g.x" sets the group.
func (b *Builder) Symbol(name string) *ElementSymbol {
	group, short := splitSymbol(name)
	return build(b, NewElementSymbol,
		func(e *ElementSymbol) error { return e.SetName(short) },
		func(e *ElementSymbol) error { return e.SetGroupSymbol(group) },
	)
}

func splitSymbol(name string) (group, short string) {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[:i], name[i+1:]
		}
	}
	return "", name
}

// Const creates a constant. Go ints are stored as int64; nil is NULL.
func (b *Builder) Const(v any) *Constant {
	if i, ok := v.(int); ok {
		v = int64(i)
	}
	return build(b, NewConstant, func(c *Constant) error { return c.SetValue(v) })
}

// Func creates a function call.
func (b *Builder) Func(name string, args ...Expression) *Function {
	return build(b, NewFunction,
		func(f *Function) error { return f.SetName(name) },
		func(f *Function) error { return f.SetArgs(args...) },
	)
}

// Compare creates left op right.
func (b *Builder) Compare(left Expression, op CompareOperator, right Expression) *CompareCriteria {
	return build(b, NewCompareCriteria,
		func(c *CompareCriteria) error { return c.SetLeftExpression(left) },
		func(c *CompareCriteria) error { return c.SetOperator(op) },
		func(c *CompareCriteria) error { return c.SetRightExpression(right) },
	)
}

// And creates a conjunction.
func (b *Builder) And(crits ...Criteria) *CompoundCriteria { return b.compound(OpAnd, crits) }

// Or creates a disjunction.
func (b *Builder) Or(crits ...Criteria) *CompoundCriteria { return b.compound(OpOr, crits) }

func (b *Builder) compound(op CompoundOperator, crits []Criteria) *CompoundCriteria {
	return build(b, NewCompoundCriteria,
		func(c *CompoundCriteria) error { return c.SetOperator(op) },
		func(c *CompoundCriteria) error { return c.SetCriteria(crits...) },
	)
}

// Not negates c.
func (b *Builder) Not(c Criteria) *NotCriteria {
	return build(b, NewNotCriteria, func(n *NotCriteria) error { return n.SetCriteria(c) })
}

// IsNull creates "e IS NULL", or "e IS NOT NULL" when negated.
func (b *Builder) IsNull(e Expression, negated bool) *IsNullCriteria {
	return build(b, NewIsNullCriteria,
		func(n *IsNullCriteria) error { return n.SetExpression(e) },
		func(n *IsNullCriteria) error {
			if !negated {
				return nil
			}
			return n.SetNegated(true)
		},
	)
}

// Block creates an unlabeled block holding stmts.
func (b *Builder) Block(stmts ...Statement) *Block {
	return build(b, NewBlock, func(bl *Block) error { return bl.SetStatements(stmts...) })
}

// LabeledBlock creates a labeled block holding stmts.
func (b *Builder) LabeledBlock(label string, stmts ...Statement) *Block {
	return build(b, NewBlock,
		func(bl *Block) error { return bl.SetLabel(label) },
		func(bl *Block) error { return bl.SetStatements(stmts...) },
	)
}

// While creates a WHILE loop. An empty label leaves the label absent.
func (b *Builder) While(label string, cond Criteria, body *Block) *WhileStatement {
	return build(b, NewWhileStatement,
		func(w *WhileStatement) error { return w.SetCondition(cond) },
		func(w *WhileStatement) error { return setLabelIf(w, label) },
		func(w *WhileStatement) error { return w.SetBlock(body) },
	)
}

// Loop creates a cursor LOOP over query.
func (b *Builder) Loop(label, cursor string, query Expression, body *Block) *LoopStatement {
	return build(b, NewLoopStatement,
		func(l *LoopStatement) error { return l.SetCursorName(cursor) },
		func(l *LoopStatement) error { return l.SetQuery(query) },
		func(l *LoopStatement) error { return setLabelIf(l, label) },
		func(l *LoopStatement) error { return l.SetBlock(body) },
	)
}

// If creates an IF statement. elseBlock may be nil.
func (b *Builder) If(cond Criteria, ifBlock, elseBlock *Block) *IfStatement {
	return build(b, NewIfStatement,
		func(i *IfStatement) error { return i.SetCondition(cond) },
		func(i *IfStatement) error { return i.SetIfBlock(ifBlock) },
		func(i *IfStatement) error { return i.SetElseBlock(elseBlock) },
	)
}

// Assign creates "variable = e".
func (b *Builder) Assign(variable *ElementSymbol, e Expression) *AssignmentStatement {
	return build(b, NewAssignmentStatement,
		func(a *AssignmentStatement) error { return a.SetVariable(variable) },
		func(a *AssignmentStatement) error { return a.SetExpression(e) },
	)
}

// Declare creates "DECLARE typ variable [= e]". e may be nil.
func (b *Builder) Declare(typ string, variable *ElementSymbol, e Expression) *DeclareStatement {
	return build(b, NewDeclareStatement,
		func(d *DeclareStatement) error { return d.SetVariable(variable) },
		func(d *DeclareStatement) error { return d.SetVariableType(typ) },
		func(d *DeclareStatement) error { return d.SetExpression(e) },
	)
}

// Break creates BREAK with an optional target label.
func (b *Builder) Break(label string) *BranchingStatement { return b.branch(BranchBreak, label) }

// Continue creates CONTINUE with an optional target label.
func (b *Builder) Continue(label string) *BranchingStatement {
	return b.branch(BranchContinue, label)
}

// Leave creates LEAVE label.
func (b *Builder) Leave(label string) *BranchingStatement { return b.branch(BranchLeave, label) }

func (b *Builder) branch(mode BranchMode, label string) *BranchingStatement {
	return build(b, NewBranchingStatement,
		func(br *BranchingStatement) error { return br.SetMode(mode) },
		func(br *BranchingStatement) error { return br.SetTargetLabel(label) },
	)
}

// Raise creates RAISE [SQLWARNING] e.
func (b *Builder) Raise(e Expression, warning bool) *RaiseStatement {
	return build(b, NewRaiseStatement,
		func(r *RaiseStatement) error { return r.SetExpression(e) },
		func(r *RaiseStatement) error {
			if !warning {
				return nil
			}
			return r.SetWarning(true)
		},
	)
}

// Return creates RETURN [e]. e may be nil.
func (b *Builder) Return(e Expression) *ReturnStatement {
	return build(b, NewReturnStatement, func(r *ReturnStatement) error { return r.SetExpression(e) })
}

func setLabelIf(l Labeled, label string) error {
	if label == "" {
		return nil
	}
	return l.SetLabel(label)
}
