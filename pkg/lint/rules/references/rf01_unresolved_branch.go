package references

import (
	"errors"

	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
	"github.com/leapstack-labs/sqltree/pkg/lint"
)

func init() {
	lint.Register(UnresolvedBranch)
}

// UnresolvedBranch flags branching statements whose target cannot be found.
var UnresolvedBranch = lint.RuleDef{
	ID:          "RF01",
	Name:        "references.unresolved_branch",
	Group:       "references",
	Description: "BREAK, CONTINUE and LEAVE must target an enclosing statement.",
	Severity:    lint.SeverityError,
	Kinds:       []core.Kind{core.KindBranching},
	Check:       checkUnresolvedBranch,
	Rationale:   "A jump with no target is rejected when the procedure is compiled.",
}

func checkUnresolvedBranch(n ast.Node, _ map[string]any) ([]lint.Diagnostic, error) {
	br, ok := n.(*ast.BranchingStatement)
	if !ok {
		return nil, nil
	}
	mode, err := br.Mode()
	if err != nil || mode == "" {
		// A missing mode is reported by ST05.
		return nil, err
	}
	_, err = ast.ResolveBranchTarget(br)
	if errors.Is(err, ast.ErrUnresolvedLabel) {
		return []lint.Diagnostic{{Message: err.Error()}}, nil
	}
	return nil, err
}
