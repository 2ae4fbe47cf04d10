// Package references provides lint rules about labels and branch targets.
//
// Rules in this package:
//   - RF01: BREAK/CONTINUE/LEAVE with no resolvable target
//   - RF02: label shadows the label of an enclosing statement
package references
