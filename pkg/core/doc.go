// Package core defines the shared language of the sqltree system.
//
// This package contains:
//   - Node identity and kind tags (NodeID, Kind)
//   - The node store contract (Store) that AST nodes persist through
//   - Store-origin errors (TypeMismatchError, ErrNodeNotFound, ...)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// Stores and the AST layer depend on core, not the reverse.
package core
