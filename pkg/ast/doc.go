// Package ast is the typed SQL procedure AST of sqltree.
//
// Every node is a thin, stateless view over a node persisted in a
// core.Store: it carries only the store, the node id and the schema of its
// kind. Typed accessors (WhileStatement.Condition, Block.Statements, ...)
// delegate to the generic Base, which validates every slot and property
// against the kind's schema before forwarding to the store.
//
// The variant catalogue is closed. Each kind has one Schema that drives
// structural equality, hashing, cloning, snapshots and the pre-order
// navigator, so none of those are written per variant. Visitor dispatch is
// a single type switch in Accept.
//
// Node hierarchy:
//
//	Statement
//	├── Block
//	├── WhileStatement, LoopStatement, IfStatement
//	├── BranchingStatement (BREAK / CONTINUE / LEAVE)
//	└── AssignmentStatement, DeclareStatement, RaiseStatement, ReturnStatement
//	Expression
//	├── Criteria
//	│   ├── CompareCriteria, CompoundCriteria
//	│   └── NotCriteria, IsNullCriteria
//	└── Constant, ElementSymbol, Function
package ast
