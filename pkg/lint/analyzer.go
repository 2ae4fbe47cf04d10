package lint

import (
	"fmt"
	"log/slog"
	"path"

	"github.com/leapstack-labs/sqltree/pkg/ast"
)

// Analyzer runs lint rules against a tree.
type Analyzer struct {
	config *Config
	rules  []RuleDef
	logger *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithRules restricts the analyzer to rules instead of the registry.
func WithRules(rules ...RuleDef) Option {
	return func(a *Analyzer) { a.rules = rules }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAnalyzer creates a new analyzer with optional configuration.
func NewAnalyzer(config *Config, opts ...Option) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	a := &Analyzer{config: config, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(a)
	}
	if a.rules == nil {
		a.rules = GetAll()
	}
	return a
}

// Analyze walks the subtree of root and runs every enabled rule on every
// node it applies to. Diagnostics come back in pre-order.
func (a *Analyzer) Analyze(root ast.Node) ([]Diagnostic, error) {
	if root == nil {
		return nil, nil
	}
	var diagnostics []Diagnostic
	if err := a.analyze(root, "", &diagnostics); err != nil {
		return nil, err
	}
	a.logger.Debug("analyzed tree", "root", root.ID(), "diagnostics", len(diagnostics))
	return diagnostics, nil
}

func (a *Analyzer) analyze(n ast.Node, at string, out *[]Diagnostic) error {
	for _, rule := range a.rules {
		if a.config.IsDisabled(rule.ID) || !rule.AppliesTo(n.Kind()) {
			continue
		}
		diags, err := rule.Check(n, a.config.GetRuleOptions(rule.ID))
		if err != nil {
			return fmt.Errorf("rule %s on %s %s: %w", rule.ID, n.Kind(), n.ID(), err)
		}
		for _, d := range diags {
			if d.RuleID == "" {
				d.RuleID = rule.ID
			}
			if d.NodeID.IsZero() {
				d.NodeID, d.Kind = n.ID(), n.Kind()
			}
			if d.Path == "" {
				d.Path = displayPath(at)
			}
			d.Severity = a.config.GetSeverity(rule.ID, rule.Severity)
			*out = append(*out, d)
		}
	}

	edges, err := ast.Edges(n)
	if err != nil {
		return err
	}
	for _, e := range edges {
		if err := a.analyze(e.Node, path.Join(at, e.String()), out); err != nil {
			return err
		}
	}
	return nil
}

func displayPath(p string) string {
	if p == "" {
		return "."
	}
	return p
}

// Summary counts diagnostics per severity.
func Summary(diags []Diagnostic) map[Severity]int {
	counts := make(map[Severity]int)
	for _, d := range diags {
		counts[d.Severity]++
	}
	return counts
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
