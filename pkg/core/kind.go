package core

// Kind is the node-type tag that discriminates AST variants.
// A node's kind is fixed when the store creates it.
type Kind string

// Statement kinds.
const (
	KindBlock      Kind = "BLOCK"
	KindWhile      Kind = "WHILE"
	KindLoop       Kind = "LOOP"
	KindIf         Kind = "IF"
	KindBranching  Kind = "BRANCHING"
	KindAssignment Kind = "ASSIGNMENT"
	KindDeclare    Kind = "DECLARE"
	KindRaise      Kind = "RAISE"
	KindReturn     Kind = "RETURN"
)

// Criteria kinds.
const (
	KindCompareCriteria  Kind = "COMPARE_CRITERIA"
	KindCompoundCriteria Kind = "COMPOUND_CRITERIA"
	KindNotCriteria      Kind = "NOT_CRITERIA"
	KindIsNullCriteria   Kind = "IS_NULL_CRITERIA"
)

// Expression kinds.
const (
	KindConstant      Kind = "CONSTANT"
	KindElementSymbol Kind = "ELEMENT_SYMBOL"
	KindFunction      Kind = "FUNCTION"
)

// AllKinds returns every kind in declaration order.
func AllKinds() []Kind {
	return []Kind{
		KindBlock, KindWhile, KindLoop, KindIf, KindBranching,
		KindAssignment, KindDeclare, KindRaise, KindReturn,
		KindCompareCriteria, KindCompoundCriteria, KindNotCriteria, KindIsNullCriteria,
		KindConstant, KindElementSymbol, KindFunction,
	}
}

// IsValid reports whether k is one of the known kinds.
func (k Kind) IsValid() bool {
	for _, known := range AllKinds() {
		if k == known {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (k Kind) String() string { return string(k) }
