// Package lint checks store-backed SQL procedure trees for structural and
// semantic problems the node framework itself does not reject, such as a
// WHILE without a body or a LEAVE whose label names no enclosing statement.
//
// # Rule Registration
//
// Rules register themselves via init() when their package is imported:
//
//	import _ "github.com/leapstack-labs/sqltree/pkg/lint/rules"
//
// # Rule Categories
//
//   - ST (Structure): required slots and operands
//   - RF (References): labels and branch targets
//   - CV (Convention): style and likely mistakes
//
// # Configuration
//
// Use Config to control which rules are enabled and their severity:
//
//	config := lint.NewConfig()
//	config.Disable("ST04")
//	config.SetSeverity("CV01", core.SeverityError)
//	config.SetRuleOptions("ST04", map[string]any{"ignore_labeled": true})
//
// # Creating Custom Rules
//
//	var MyRule = lint.RuleDef{
//		ID:          "MY01",
//		Name:        "my.custom_rule",
//		Group:       "custom",
//		Description: "My custom rule description",
//		Severity:    core.SeverityWarning,
//		Kinds:       []core.Kind{core.KindWhile},
//		Check:       checkMyRule,
//	}
//
//	func init() {
//		lint.Register(MyRule)
//	}
package lint
