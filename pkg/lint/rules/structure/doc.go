// Package structure provides lint rules for required slots and operands.
//
// Rules in this package:
//   - ST01: WHILE or IF without a condition
//   - ST02: loop or IF without a body
//   - ST03: criteria with a missing operand or operator
//   - ST04: empty block
//   - ST05: BREAK/CONTINUE/LEAVE without a mode
package structure
