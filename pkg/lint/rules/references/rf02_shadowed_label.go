package references

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
	"github.com/leapstack-labs/sqltree/pkg/lint"
)

func init() {
	lint.Register(ShadowedLabel)
}

// ShadowedLabel warns when a label repeats the label of an enclosing
// statement, which makes a labeled jump bind to the inner one.
//
// Options:
//   - allow ([]string): labels that may be reused when nested.
var ShadowedLabel = lint.RuleDef{
	ID:          "RF02",
	Name:        "references.shadowed_label",
	Group:       "references",
	Description: "Label shadows the label of an enclosing statement.",
	Severity:    lint.SeverityWarning,
	Kinds:       []core.Kind{core.KindBlock, core.KindWhile, core.KindLoop},
	Check:       checkShadowedLabel,
	ConfigKeys:  []string{"allow"},
}

func checkShadowedLabel(n ast.Node, opts map[string]any) ([]lint.Diagnostic, error) {
	l, ok := n.(ast.Labeled)
	if !ok {
		return nil, nil
	}
	label, err := labelOf(l)
	if err != nil || label == "" {
		return nil, err
	}
	for _, allowed := range lint.GetStringSliceOption(opts, "allow", nil) {
		if strings.EqualFold(label, allowed) {
			return nil, nil
		}
	}

	cur := ast.Node(l)
	for {
		outer, found, err := ast.Enclosing[ast.Labeled](cur)
		if err != nil || !found {
			return nil, err
		}
		outerLabel, err := labelOf(outer)
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(label, outerLabel) {
			return []lint.Diagnostic{{
				Message: fmt.Sprintf("label %q shadows enclosing %s %s", label, outer.Kind(), outer.ID()),
			}}, nil
		}
		cur = outer
	}
}

func labelOf(l ast.Labeled) (string, error) {
	has, err := l.HasLabel()
	if err != nil || !has {
		return "", err
	}
	return l.Label()
}
