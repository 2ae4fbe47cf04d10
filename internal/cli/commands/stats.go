package commands

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/sqltree/internal/config"
	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
)

// statsWorkers bounds the number of trees counted at once.
const statsWorkers = 4

// Stats summarizes node counts across all stored trees.
type Stats struct {
	Trees int               `json:"trees" yaml:"trees"`
	Nodes int               `json:"nodes" yaml:"nodes"`
	Kinds map[core.Kind]int `json:"kinds" yaml:"kinds"`
}

// NewStatsCommand creates the stats command.
func NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count stored nodes per kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			stats, err := collectStats(cmd.Context(), cmdCtx.Store)
			if err != nil {
				return err
			}
			if cmdCtx.Cfg.Output != config.OutputText {
				return writeData(cmdCtx.Out, cmdCtx.Cfg.Output, stats)
			}
			renderStats(cmdCtx.Out, stats)
			return nil
		},
	}
}

// collectStats counts every root's subtree concurrently and merges the
// results.
func collectStats(ctx context.Context, s core.Store) (*Stats, error) {
	ids, err := s.Roots()
	if err != nil {
		return nil, err
	}

	counts := make([]map[core.Kind]int, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(statsWorkers)
	for i, id := range ids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			n, err := ast.Wrap(s, id)
			if err != nil {
				return err
			}
			counts[i], err = ast.CountKinds(n)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &Stats{Trees: len(ids), Kinds: make(map[core.Kind]int)}
	for _, c := range counts {
		for kind, n := range c {
			stats.Kinds[kind] += n
			stats.Nodes += n
		}
	}
	return stats, nil
}

func renderStats(w io.Writer, stats *Stats) {
	kinds := make([]core.Kind, 0, len(stats.Kinds))
	for k := range stats.Kinds {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Kind", "Nodes"})
	for _, k := range kinds {
		t.AppendRow(table.Row{k, stats.Kinds[k]})
	}
	t.AppendFooter(table.Row{"Total", stats.Nodes})
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d trees)\n", stats.Trees)
}
