package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/sqltree/internal/config"
	"github.com/leapstack-labs/sqltree/pkg/core"
	"github.com/leapstack-labs/sqltree/pkg/lint"
	"github.com/leapstack-labs/sqltree/pkg/store/sqlite"
)

// DoctorOutput is the structured output of the doctor command.
type DoctorOutput struct {
	Summary      WorkspaceSummary `json:"summary" yaml:"summary"`
	HealthChecks []HealthCheck    `json:"health_checks" yaml:"health_checks"`
	Score        int              `json:"score" yaml:"score"`
	IssueCount   int              `json:"issue_count" yaml:"issue_count"`
}

// WorkspaceSummary describes the configured store.
type WorkspaceSummary struct {
	ConfigFile    string `json:"config_file,omitempty" yaml:"config_file,omitempty"`
	Driver        string `json:"driver" yaml:"driver"`
	Path          string `json:"path,omitempty" yaml:"path,omitempty"`
	SchemaVersion int64  `json:"schema_version,omitempty" yaml:"schema_version,omitempty"`
	Trees         int    `json:"trees" yaml:"trees"`
	Nodes         int    `json:"nodes" yaml:"nodes"`
}

// HealthCheck is the outcome of one lint rule across all trees.
type HealthCheck struct {
	RuleID     string `json:"rule_id" yaml:"rule_id"`
	Name       string `json:"name" yaml:"name"`
	Group      string `json:"group" yaml:"group"`
	Status     string `json:"status" yaml:"status"` // "pass", "warn", "error"
	IssueCount int    `json:"issue_count" yaml:"issue_count"`
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run a workspace health check",
		Long: `Report on the configured store and run every lint rule over every stored
tree. The report includes a health score from 0 to 100.`,
		Args: cobra.NoArgs,
		RunE: runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := cmdCtx.Cfg
	summary := WorkspaceSummary{ConfigFile: cfg.ConfigFile, Driver: cfg.Store.Driver}
	if db, ok := cmdCtx.Store.(*sqlite.Store); ok {
		summary.Path = db.Path()
		if summary.SchemaVersion, err = db.MigrationVersion(); err != nil {
			return err
		}
	}

	stats, err := collectStats(cmd.Context(), cmdCtx.Store)
	if err != nil {
		return err
	}
	summary.Trees, summary.Nodes = stats.Trees, stats.Nodes

	lintCfg, err := buildLintConfig(cfg, &CheckOptions{})
	if err != nil {
		return err
	}
	checks, err := runHealthChecks(cmdCtx.Store, lintCfg)
	if err != nil {
		return err
	}

	out := DoctorOutput{
		Summary:      summary,
		HealthChecks: checks,
		Score:        calculateHealthScore(checks, summary.Trees),
	}
	for _, c := range checks {
		out.IssueCount += c.IssueCount
	}

	if cfg.Output != config.OutputText {
		return writeData(cmdCtx.Out, cfg.Output, out)
	}
	renderDoctorText(cmdCtx.Out, out)
	return nil
}

func runHealthChecks(s core.Store, lintCfg *lint.Config) ([]HealthCheck, error) {
	roots, err := s.Roots()
	if err != nil {
		return nil, err
	}

	issues := make(map[string][]lint.Diagnostic)
	analyzer := lint.NewAnalyzer(lintCfg)
	for _, id := range roots {
		n, err := node(s, string(id))
		if err != nil {
			return nil, err
		}
		diags, err := analyzer.Analyze(n)
		if err != nil {
			return nil, err
		}
		for _, d := range diags {
			issues[d.RuleID] = append(issues[d.RuleID], d)
		}
	}

	var checks []HealthCheck
	for _, rule := range lint.GetAll() {
		if lintCfg.IsDisabled(rule.ID) {
			continue
		}
		found := issues[rule.ID]
		check := HealthCheck{
			RuleID:     rule.ID,
			Name:       rule.Name,
			Group:      rule.Group,
			Status:     "pass",
			IssueCount: len(found),
		}
		if len(found) > 0 {
			check.Status = "warn"
			if lint.HasErrors(found) {
				check.Status = "error"
			}
		}
		checks = append(checks, check)
	}
	return checks, nil
}

// calculateHealthScore computes a health score from 0-100.
// More trees means each issue has less individual impact.
func calculateHealthScore(checks []HealthCheck, treeCount int) int {
	score := 100.0

	basePenalty := 5.0
	if treeCount > 10 {
		basePenalty = 3.0
	}
	if treeCount > 50 {
		basePenalty = 1.0
	}

	for _, check := range checks {
		switch check.Status {
		case "error":
			score -= float64(check.IssueCount) * basePenalty * 2 // Errors count double
		case "warn":
			score -= float64(check.IssueCount) * basePenalty
		}
	}
	return int(max(score, 0))
}

func renderDoctorText(w io.Writer, out DoctorOutput) {
	s := out.Summary
	_, _ = fmt.Fprintln(w, "Workspace")
	if s.ConfigFile != "" {
		_, _ = fmt.Fprintf(w, "  config:  %s\n", s.ConfigFile)
	} else {
		_, _ = fmt.Fprintln(w, "  config:  (defaults)")
	}
	_, _ = fmt.Fprintf(w, "  store:   %s", s.Driver)
	if s.Path != "" {
		_, _ = fmt.Fprintf(w, " %s (schema version %d)", s.Path, s.SchemaVersion)
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "  trees:   %d (%d nodes)\n", s.Trees, s.Nodes)

	titleCaser := cases.Title(language.English)
	group := ""
	for _, c := range out.HealthChecks {
		if c.Group != group {
			group = c.Group
			_, _ = fmt.Fprintf(w, "\n%s\n", titleCaser.String(group))
		}
		mark := "ok"
		if c.Status != "pass" {
			mark = fmt.Sprintf("%s (%d)", c.Status, c.IssueCount)
		}
		_, _ = fmt.Fprintf(w, "  %-5s %-32s %s\n", c.RuleID, c.Name, mark)
	}

	_, _ = fmt.Fprintf(w, "\nHealth score: %d/100\n", out.Score)
}
