package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
)

// NewCloneCommand creates the clone command.
func NewCloneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clone <id>",
		Short: "Deep-copy a tree",
		Long:  `Deep-copy the tree rooted at a node into a new detached tree and print its root ID.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			var id core.NodeID
			err = cmdCtx.Store.Update(cmd.Context(), func(tx core.Store) error {
				n, err := node(tx, args[0])
				if err != nil {
					return err
				}
				c, err := ast.Clone(n)
				if err != nil {
					return err
				}
				id = c.ID()
				return nil
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmdCtx.Out, id)
			return nil
		},
	}
}
