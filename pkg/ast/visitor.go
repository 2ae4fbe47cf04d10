package ast

// Visitor has one method per variant. Implementations decide whether and in
// which order to descend into children; nodes never traverse on their own.
type Visitor interface {
	VisitBlock(*Block) error
	VisitWhile(*WhileStatement) error
	VisitLoop(*LoopStatement) error
	VisitIf(*IfStatement) error
	VisitBranching(*BranchingStatement) error
	VisitAssignment(*AssignmentStatement) error
	VisitDeclare(*DeclareStatement) error
	VisitRaise(*RaiseStatement) error
	VisitReturn(*ReturnStatement) error

	VisitCompareCriteria(*CompareCriteria) error
	VisitCompoundCriteria(*CompoundCriteria) error
	VisitNotCriteria(*NotCriteria) error
	VisitIsNullCriteria(*IsNullCriteria) error

	VisitConstant(*Constant) error
	VisitElementSymbol(*ElementSymbol) error
	VisitFunction(*Function) error
}

// Accept calls the method of v that matches the concrete variant of n.
// It is the single dispatch table for the catalogue.
func Accept(n Node, v Visitor) error {
	if isNil(n) {
		return nil
	}
	switch n := n.(type) {
	case *Block:
		return v.VisitBlock(n)
	case *WhileStatement:
		return v.VisitWhile(n)
	case *LoopStatement:
		return v.VisitLoop(n)
	case *IfStatement:
		return v.VisitIf(n)
	case *BranchingStatement:
		return v.VisitBranching(n)
	case *AssignmentStatement:
		return v.VisitAssignment(n)
	case *DeclareStatement:
		return v.VisitDeclare(n)
	case *RaiseStatement:
		return v.VisitRaise(n)
	case *ReturnStatement:
		return v.VisitReturn(n)
	case *CompareCriteria:
		return v.VisitCompareCriteria(n)
	case *CompoundCriteria:
		return v.VisitCompoundCriteria(n)
	case *NotCriteria:
		return v.VisitNotCriteria(n)
	case *IsNullCriteria:
		return v.VisitIsNullCriteria(n)
	case *Constant:
		return v.VisitConstant(n)
	case *ElementSymbol:
		return v.VisitElementSymbol(n)
	case *Function:
		return v.VisitFunction(n)
	default:
		return &UnknownKindError{ID: n.ID(), Kind: n.Kind()}
	}
}

// NoopVisitor implements every Visitor method as a no-op. Embed it to
// handle only the variants of interest.
type NoopVisitor struct{}

func (NoopVisitor) VisitBlock(*Block) error                       { return nil }
func (NoopVisitor) VisitWhile(*WhileStatement) error              { return nil }
func (NoopVisitor) VisitLoop(*LoopStatement) error                { return nil }
func (NoopVisitor) VisitIf(*IfStatement) error                    { return nil }
func (NoopVisitor) VisitBranching(*BranchingStatement) error      { return nil }
func (NoopVisitor) VisitAssignment(*AssignmentStatement) error    { return nil }
func (NoopVisitor) VisitDeclare(*DeclareStatement) error          { return nil }
func (NoopVisitor) VisitRaise(*RaiseStatement) error              { return nil }
func (NoopVisitor) VisitReturn(*ReturnStatement) error            { return nil }
func (NoopVisitor) VisitCompareCriteria(*CompareCriteria) error   { return nil }
func (NoopVisitor) VisitCompoundCriteria(*CompoundCriteria) error { return nil }
func (NoopVisitor) VisitNotCriteria(*NotCriteria) error           { return nil }
func (NoopVisitor) VisitIsNullCriteria(*IsNullCriteria) error     { return nil }
func (NoopVisitor) VisitConstant(*Constant) error                 { return nil }
func (NoopVisitor) VisitElementSymbol(*ElementSymbol) error       { return nil }
func (NoopVisitor) VisitFunction(*Function) error                 { return nil }
