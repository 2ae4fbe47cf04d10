package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqltree/internal/config"
	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
	"github.com/leapstack-labs/sqltree/pkg/lint"
	_ "github.com/leapstack-labs/sqltree/pkg/lint/rules" // register rules
	"github.com/leapstack-labs/sqltree/pkg/store/memory"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	File     string   // Snapshot file to check instead of stored trees
	Disable  []string // Rule IDs to disable
	Severity string   // Minimum severity: error, warning, info, hint
	Rules    []string // Run only specific rules
	Watch    bool     // Re-run when File changes
}

// TreeResult holds the diagnostics for one tree.
type TreeResult struct {
	Root        core.NodeID       `json:"root" yaml:"root"`
	Diagnostics []lint.Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [id...]",
		Short: "Run lint rules on stored trees",
		Long: `Analyze trees for structural problems such as loops without a body,
incomplete criteria and branches with no target.

Without arguments every stored tree is checked. Rules can be configured
under the lint key of sqltree.yaml. The command fails when any error-level
diagnostic is reported.`,
		Example: `  # Check all stored trees
  sqltree check

  # Check a snapshot file without storing it
  sqltree check --file tree.yaml

  # Disable specific rules
  sqltree check --disable ST04,CV02

  # Only report errors
  sqltree check --severity error

  # Re-check a snapshot file on every save
  sqltree check --file tree.yaml --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Watch {
				return runCheckWatch(cmd, args, opts)
			}
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Snapshot file to check")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringVar(&opts.Severity, "severity", "hint", "Minimum severity: error, warning, info, hint")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run when the --file snapshot changes")

	return cmd
}

func runCheck(cmd *cobra.Command, ids []string, opts *CheckOptions) error {
	if opts.File != "" && len(ids) > 0 {
		return fmt.Errorf("--file cannot be combined with node IDs")
	}
	threshold, ok := lint.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("invalid severity %q", opts.Severity)
	}

	var (
		cmdCtx  *CommandContext
		cleanup = func() {}
		err     error
	)
	if opts.File != "" {
		cmdCtx = NewCommandContextWithoutStore(cmd)
		scratch := memory.New(memory.WithLogger(cmdCtx.Logger))
		cmdCtx.Store = scratch
		ids, err = restoreFile(scratch, opts.File)
	} else {
		cmdCtx, cleanup, err = NewCommandContext(cmd)
	}
	if err != nil {
		return err
	}
	defer cleanup()

	lintCfg, err := buildLintConfig(cmdCtx.Cfg, opts)
	if err != nil {
		return err
	}
	var analyzerOpts []lint.Option
	if len(opts.Rules) > 0 {
		rules, err := selectRules(opts.Rules)
		if err != nil {
			return err
		}
		analyzerOpts = append(analyzerOpts, lint.WithRules(rules...))
	}
	analyzerOpts = append(analyzerOpts, lint.WithLogger(cmdCtx.Logger))
	analyzer := lint.NewAnalyzer(lintCfg, analyzerOpts...)

	if len(ids) == 0 {
		roots, err := cmdCtx.Store.Roots()
		if err != nil {
			return err
		}
		for _, id := range roots {
			ids = append(ids, string(id))
		}
	}

	var (
		results []TreeResult
		all     []lint.Diagnostic
	)
	for _, id := range ids {
		n, err := node(cmdCtx.Store, id)
		if err != nil {
			return err
		}
		diags, err := analyzer.Analyze(n)
		if err != nil {
			return err
		}
		diags = filterBySeverity(diags, threshold)
		results = append(results, TreeResult{Root: n.ID(), Diagnostics: diags})
		all = append(all, diags...)
	}

	if cmdCtx.Cfg.Output != config.OutputText {
		if err := writeData(cmdCtx.Out, cmdCtx.Cfg.Output, results); err != nil {
			return err
		}
	} else {
		renderCheckResults(cmdCtx.Out, results, all)
	}

	if lint.HasErrors(all) {
		return fmt.Errorf("check found %d error(s)", lint.Summary(all)[lint.SeverityError])
	}
	return nil
}

// runCheckWatch checks the --file snapshot, then again after every change
// until interrupted. Failed runs are reported and do not stop the watch.
func runCheckWatch(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	if opts.File == "" {
		return fmt.Errorf("--watch requires --file")
	}
	logger := config.GetLogger(cmd.Context())
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	check := func() {
		if err := runCheck(cmd, args, opts); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}
	check()
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "watching %s (Ctrl+C to stop)\n", opts.File)
	return watchFile(ctx, opts.File, logger, check)
}

func restoreFile(s *memory.Store, path string) ([]string, error) {
	snap, err := readSnapshot(path)
	if err != nil {
		return nil, err
	}
	n, err := ast.Restore(s, snap)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return []string{string(n.ID())}, nil
}

// buildLintConfig merges the lint section of the config file with CLI flags.
func buildLintConfig(cfg *config.Config, opts *CheckOptions) (*lint.Config, error) {
	lintCfg := lint.NewConfig()
	if cfg.Lint != nil {
		var err error
		lintCfg, err = lint.ConfigFromSettings(cfg.Lint.Disabled, cfg.Lint.Severity)
		if err != nil {
			return nil, err
		}
		for id, ruleOpts := range cfg.Lint.Rules {
			lintCfg.SetRuleOptions(id, ruleOpts)
		}
	}
	for _, id := range opts.Disable {
		lintCfg.Disable(id)
	}
	return lintCfg, nil
}

func selectRules(ids []string) ([]lint.RuleDef, error) {
	rules := make([]lint.RuleDef, 0, len(ids))
	for _, id := range ids {
		rule, ok := lint.GetByID(id)
		if !ok {
			return nil, fmt.Errorf("rule %q not found", id)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// filterBySeverity keeps diagnostics at or above threshold. Lower severity
// values are more severe.
func filterBySeverity(diags []lint.Diagnostic, threshold lint.Severity) []lint.Diagnostic {
	var filtered []lint.Diagnostic
	for _, d := range diags {
		if d.Severity <= threshold {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

func renderCheckResults(w io.Writer, results []TreeResult, all []lint.Diagnostic) {
	if len(all) == 0 {
		_, _ = fmt.Fprintf(w, "No issues found in %d tree(s)\n", len(results))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Root", "Path", "Severity", "Rule", "Message"})
	for _, r := range results {
		for _, d := range r.Diagnostics {
			t.AppendRow(table.Row{r.Root, d.Path, d.Severity, d.RuleID, d.Message})
		}
	}
	t.Render()

	counts := lint.Summary(all)
	_, _ = fmt.Fprintf(w, "%d error(s), %d warning(s), %d info, %d hint(s)\n",
		counts[lint.SeverityError], counts[lint.SeverityWarning],
		counts[lint.SeverityInfo], counts[lint.SeverityHint])
}
