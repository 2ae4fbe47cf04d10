package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqltree/internal/config"
	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/format"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	var asSQL bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a tree",
		Long: `Print the tree rooted at a node.

Text output is an indented dump with one line per node. With -o yaml or
-o json the tree is written as a snapshot that 'sqltree load' accepts.
With --sql the tree is rendered as procedure SQL.`,
		Example: `  sqltree show 5f0c...
  sqltree show 5f0c... -o yaml > tree.yaml
  sqltree show 5f0c... --sql`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			n, err := node(cmdCtx.Store, args[0])
			if err != nil {
				return err
			}
			if asSQL {
				text, err := format.Format(n)
				if err != nil {
					return err
				}
				_, err = io.WriteString(cmdCtx.Out, text)
				return err
			}
			if cmdCtx.Cfg.Output == config.OutputText {
				return ast.Fprint(cmdCtx.Out, n)
			}
			snap, err := ast.TakeSnapshot(n)
			if err != nil {
				return err
			}
			return writeData(cmdCtx.Out, cmdCtx.Cfg.Output, snap)
		},
	}

	cmd.Flags().BoolVar(&asSQL, "sql", false, "Render the tree as procedure SQL")
	return cmd
}
