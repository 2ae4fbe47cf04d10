// Package rules provides the built-in tree lint rules.
//
// Rules are organized by category:
//   - structure: required slots and operands (ST01-ST05)
//   - references: labels and branch targets (RF01-RF02)
//   - convention: likely mistakes and style (CV01-CV02)
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/leapstack-labs/sqltree/pkg/lint/rules"
package rules
