package structure

import (
	"fmt"

	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
	"github.com/leapstack-labs/sqltree/pkg/lint"
)

func init() {
	lint.Register(EmptyBlock)
}

// EmptyBlock reports blocks without statements.
//
// Options:
//   - ignore_labeled (bool): skip labeled blocks, which may exist only as a
//     LEAVE target.
//   - min_statements (int, default 1): report blocks with fewer statements.
var EmptyBlock = lint.RuleDef{
	ID:          "ST04",
	Name:        "structure.empty_block",
	Group:       "structure",
	Description: "Block contains no statements.",
	Severity:    lint.SeverityInfo,
	Kinds:       []core.Kind{core.KindBlock},
	Check:       checkEmptyBlock,
	ConfigKeys:  []string{"ignore_labeled", "min_statements"},
}

type emptyBlockOptions struct {
	IgnoreLabeled bool `mapstructure:"ignore_labeled"`
	MinStatements int  `mapstructure:"min_statements"`
}

func checkEmptyBlock(n ast.Node, opts map[string]any) ([]lint.Diagnostic, error) {
	blk, ok := n.(*ast.Block)
	if !ok {
		return nil, nil
	}
	o := emptyBlockOptions{MinStatements: 1}
	if err := lint.DecodeOptions(opts, &o); err != nil {
		return nil, err
	}
	stmts, err := blk.Statements()
	if err != nil || len(stmts) >= o.MinStatements {
		return nil, err
	}
	if o.IgnoreLabeled {
		has, err := blk.HasLabel()
		if err != nil || has {
			return nil, err
		}
	}
	if len(stmts) == 0 {
		return []lint.Diagnostic{{Message: "block contains no statements"}}, nil
	}
	return []lint.Diagnostic{{Message: fmt.Sprintf("block contains %d statement(s), want at least %d", len(stmts), o.MinStatements)}}, nil
}
