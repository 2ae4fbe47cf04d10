package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqltree/internal/config"
	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
)

// RootInfo describes one stored tree.
type RootInfo struct {
	ID    core.NodeID `json:"id" yaml:"id"`
	Kind  core.Kind   `json:"kind" yaml:"kind"`
	Label string      `json:"label,omitempty" yaml:"label,omitempty"`
	Nodes int         `json:"nodes" yaml:"nodes"`
}

// NewListCommand creates the ls command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List stored trees",
		Long:    `List every root node in the store with its kind, label and subtree size.`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			roots, err := listRoots(cmdCtx.Store)
			if err != nil {
				return err
			}
			if cmdCtx.Cfg.Output != config.OutputText {
				return writeData(cmdCtx.Out, cmdCtx.Cfg.Output, roots)
			}
			renderRoots(cmdCtx.Out, roots)
			return nil
		},
	}
}

func listRoots(s core.Store) ([]RootInfo, error) {
	ids, err := s.Roots()
	if err != nil {
		return nil, err
	}
	roots := make([]RootInfo, 0, len(ids))
	for _, id := range ids {
		n, err := ast.Wrap(s, id)
		if err != nil {
			return nil, err
		}
		info := RootInfo{ID: id, Kind: n.Kind()}
		if l, ok := n.(ast.Labeled); ok {
			if info.Label, err = l.Label(); err != nil {
				return nil, err
			}
		}
		counts, err := ast.CountKinds(n)
		if err != nil {
			return nil, err
		}
		for _, c := range counts {
			info.Nodes += c
		}
		roots = append(roots, info)
	}
	return roots, nil
}

func renderRoots(w io.Writer, roots []RootInfo) {
	if len(roots) == 0 {
		_, _ = fmt.Fprintln(w, "(0 trees)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Kind", "Label", "Nodes"})
	for _, r := range roots {
		t.AppendRow(table.Row{r.ID, r.Kind, r.Label, r.Nodes})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d trees)\n", len(roots))
}
