package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
)

// NewRemoveCommand creates the rm command.
func NewRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>...",
		Short: "Delete nodes and their subtrees",
		Long: `Delete each node and its subtree. A node that is attached to a parent is
detached first. All deletions happen in one update.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			err = cmdCtx.Store.Update(cmd.Context(), func(tx core.Store) error {
				for _, id := range args {
					n, err := node(tx, id)
					if err != nil {
						return err
					}
					if err := ast.Delete(n); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			for _, id := range args {
				_, _ = fmt.Fprintf(cmdCtx.Out, "deleted %s\n", id)
			}
			return nil
		},
	}
}
