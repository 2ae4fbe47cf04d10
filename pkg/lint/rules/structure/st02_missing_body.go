package structure

import (
	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
	"github.com/leapstack-labs/sqltree/pkg/lint"
)

func init() {
	lint.Register(MissingBody)
}

// MissingBody flags loops without a block and IF statements without a THEN
// block.
var MissingBody = lint.RuleDef{
	ID:          "ST02",
	Name:        "structure.missing_body",
	Group:       "structure",
	Description: "Loops and IF statements must have a body block.",
	Severity:    lint.SeverityError,
	Kinds:       []core.Kind{core.KindWhile, core.KindLoop, core.KindIf},
	Check:       checkMissingBody,
}

func checkMissingBody(n ast.Node, _ map[string]any) ([]lint.Diagnostic, error) {
	var (
		blk *ast.Block
		err error
	)
	switch n := n.(type) {
	case *ast.WhileStatement:
		blk, err = n.Block()
	case *ast.LoopStatement:
		blk, err = n.Block()
	case *ast.IfStatement:
		blk, err = n.IfBlock()
	default:
		return nil, nil
	}
	if err != nil || blk != nil {
		return nil, err
	}
	return []lint.Diagnostic{{Message: string(n.Kind()) + " has no body block"}}, nil
}
