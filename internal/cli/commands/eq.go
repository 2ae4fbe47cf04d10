package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqltree/internal/config"
	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
)

// Comparison is the result of the eq command.
type Comparison struct {
	Left      core.NodeID `json:"left" yaml:"left"`
	Right     core.NodeID `json:"right" yaml:"right"`
	Equal     bool        `json:"equal" yaml:"equal"`
	LeftHash  string      `json:"left_hash" yaml:"left_hash"`
	RightHash string      `json:"right_hash" yaml:"right_hash"`
}

// NewEqualCommand creates the eq command.
func NewEqualCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "eq <id> <id>",
		Short: "Compare two trees structurally",
		Long: `Compare two trees by kind, properties and children, ignoring node IDs,
and print both structural hashes. Equal trees always have equal hashes.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			cmp, err := compareTrees(cmdCtx.Store, args[0], args[1])
			if err != nil {
				return err
			}
			if cmdCtx.Cfg.Output != config.OutputText {
				return writeData(cmdCtx.Out, cmdCtx.Cfg.Output, cmp)
			}
			_, _ = fmt.Fprintf(cmdCtx.Out, "equal: %t\n", cmp.Equal)
			_, _ = fmt.Fprintf(cmdCtx.Out, "%s  %s\n", cmp.LeftHash, cmp.Left)
			_, _ = fmt.Fprintf(cmdCtx.Out, "%s  %s\n", cmp.RightHash, cmp.Right)
			return nil
		},
	}
}

func compareTrees(s core.Store, left, right string) (*Comparison, error) {
	a, err := node(s, left)
	if err != nil {
		return nil, err
	}
	b, err := node(s, right)
	if err != nil {
		return nil, err
	}
	eq, err := ast.Equal(a, b)
	if err != nil {
		return nil, err
	}
	ha, err := ast.Hash(a)
	if err != nil {
		return nil, err
	}
	hb, err := ast.Hash(b)
	if err != nil {
		return nil, err
	}
	return &Comparison{
		Left:      a.ID(),
		Right:     b.ID(),
		Equal:     eq,
		LeftHash:  fmt.Sprintf("%016x", ha),
		RightHash: fmt.Sprintf("%016x", hb),
	}, nil
}
