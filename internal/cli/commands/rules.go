package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqltree/internal/config"
	"github.com/leapstack-labs/sqltree/pkg/core"
	"github.com/leapstack-labs/sqltree/pkg/lint"
	_ "github.com/leapstack-labs/sqltree/pkg/lint/rules" // register rules
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group string // Filter by group
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Long: `List all available lint rules, or show one rule in detail.

Rules are organized by group (structure, references, convention).`,
		Example: `  # List all rules
  sqltree rules

  # Show details for a specific rule
  sqltree rules RF01

  # List rules in the structure group
  sqltree rules --group structure

  # Output as JSON
  sqltree rules -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContextWithoutStore(cmd)
			if len(args) > 0 {
				return showRule(cmdCtx, args[0])
			}
			return listRules(cmdCtx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")

	return cmd
}

func listRules(cmdCtx *CommandContext, opts *RulesOptions) error {
	var defs []lint.RuleDef
	if opts.Group != "" {
		defs = lint.GetByGroup(opts.Group)
	} else {
		defs = lint.GetAll()
	}

	infos := make([]lint.RuleInfo, 0, len(defs))
	for _, d := range defs {
		infos = append(infos, d.Info())
	}

	if cmdCtx.Cfg.Output != config.OutputText {
		return writeData(cmdCtx.Out, cmdCtx.Cfg.Output, infos)
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmdCtx.Out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Group", "Severity", "Kinds", "Description"})
	for _, r := range infos {
		t.AppendRow(table.Row{r.ID, r.Group, r.DefaultSeverity, formatKinds(r.Kinds), r.Description})
	}
	t.Render()
	_, _ = fmt.Fprintf(cmdCtx.Out, "(%d rules)\n", len(infos))
	return nil
}

func showRule(cmdCtx *CommandContext, ruleID string) error {
	rule, ok := lint.GetByID(strings.ToUpper(ruleID))
	if !ok {
		return fmt.Errorf("rule %q not found", ruleID)
	}
	info := rule.Info()

	if cmdCtx.Cfg.Output != config.OutputText {
		return writeData(cmdCtx.Out, cmdCtx.Cfg.Output, info)
	}
	writeRuleText(cmdCtx.Out, info)
	return nil
}

func writeRuleText(w io.Writer, r lint.RuleInfo) {
	_, _ = fmt.Fprintf(w, "%s  %s\n\n", r.ID, r.Name)
	_, _ = fmt.Fprintf(w, "  %s\n\n", r.Description)
	_, _ = fmt.Fprintf(w, "  Group:    %s\n", r.Group)
	_, _ = fmt.Fprintf(w, "  Severity: %s\n", r.DefaultSeverity)
	_, _ = fmt.Fprintf(w, "  Kinds:    %s\n", formatKinds(r.Kinds))
	if len(r.ConfigKeys) > 0 {
		_, _ = fmt.Fprintf(w, "  Options:  %s\n", strings.Join(r.ConfigKeys, ", "))
	}
	if r.Rationale != "" {
		_, _ = fmt.Fprintf(w, "\n  %s\n", r.Rationale)
	}
}

func formatKinds(kinds []core.Kind) string {
	if len(kinds) == 0 {
		return "all"
	}
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}
