package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
)

// NewSampleCommand creates the sample command.
func NewSampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Store a sample procedure",
		Long: `Store a sample procedure body and print its root node ID:

  BEGIN
    DECLARE integer x = 0;
    loop1: WHILE (x < 10) BEGIN
      x = add(x, 1);
      IF (x = 5) BEGIN BREAK loop1; END
    END
    RETURN x;
  END`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := storeSample(cmd.Context(), cmdCtx.Store)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmdCtx.Out, id)
			return nil
		},
	}
}

func storeSample(ctx context.Context, s core.Transactor) (core.NodeID, error) {
	var id core.NodeID
	err := s.Update(ctx, func(tx core.Store) error {
		root, err := buildSample(ast.NewBuilder(tx))
		if err != nil {
			return err
		}
		id = root.ID()
		return nil
	})
	return id, err
}

func buildSample(b *ast.Builder) (*ast.Block, error) {
	x := func() *ast.ElementSymbol { return b.Symbol("x") }

	body := b.Block(
		b.Assign(x(), b.Func("add", x(), b.Const(1))),
		b.If(b.Compare(x(), ast.OpEQ, b.Const(5)), b.Block(b.Break("loop1")), nil),
	)
	root := b.Block(
		b.Declare("integer", x(), b.Const(0)),
		b.While("loop1", b.Compare(x(), ast.OpLT, b.Const(10)), body),
		b.Return(x()),
	)
	if err := b.Err(); err != nil {
		return nil, fmt.Errorf("build sample: %w", err)
	}
	return root, nil
}
