package lint

import (
	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
)

// Severity aliases core.Severity so rule packages need only import lint.
type Severity = core.Severity

// Severity levels for diagnostics.
const (
	SeverityError   = core.SeverityError
	SeverityWarning = core.SeverityWarning
	SeverityInfo    = core.SeverityInfo
	SeverityHint    = core.SeverityHint
)

// =============================================================================
// Rule Definitions
// =============================================================================

// RuleDef is a data-driven rule definition.
// Rules are stateless; all context comes via the Check function parameters.
type RuleDef struct {
	ID          string      // Unique identifier, e.g., "ST01"
	Name        string      // Human-readable name, e.g., "structure.missing_condition"
	Group       string      // Category, e.g., "structure", "references", "convention"
	Description string      // Human-readable description
	Severity    Severity    // Default severity
	Kinds       []core.Kind // Node kinds the rule inspects; nil means all
	Check       CheckFunc   // The check function
	ConfigKeys  []string    // Configuration keys this rule accepts

	// Rationale explains what problems the rule prevents.
	Rationale string
}

// CheckFunc inspects a single node and returns diagnostics. The analyzer
// fills in RuleID, NodeID, Kind and Path when the rule leaves them empty,
// and always sets Severity from the configuration.
type CheckFunc func(n ast.Node, opts map[string]any) ([]Diagnostic, error)

// AppliesTo reports whether the rule inspects nodes of kind.
func (r RuleDef) AppliesTo(kind core.Kind) bool {
	if len(r.Kinds) == 0 {
		return true
	}
	for _, k := range r.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// =============================================================================
// Diagnostics
// =============================================================================

// Diagnostic represents a lint finding on one node.
type Diagnostic struct {
	RuleID   string      `json:"rule_id" yaml:"rule_id"`
	Severity Severity    `json:"severity" yaml:"severity"`
	Message  string      `json:"message" yaml:"message"`
	NodeID   core.NodeID `json:"node_id" yaml:"node_id"`
	Kind     core.Kind   `json:"kind" yaml:"kind"`
	// Path locates the node from the analyzed root, e.g. "block/statements[2]".
	Path string `json:"path" yaml:"path"`
}

// RuleInfo provides metadata about a rule for documentation and tooling.
type RuleInfo struct {
	ID              string      `json:"id" yaml:"id"`
	Name            string      `json:"name" yaml:"name"`
	Group           string      `json:"group" yaml:"group"`
	Description     string      `json:"description" yaml:"description"`
	DefaultSeverity Severity    `json:"default_severity" yaml:"default_severity"`
	Kinds           []core.Kind `json:"kinds,omitempty" yaml:"kinds,omitempty"`
	ConfigKeys      []string    `json:"config_keys,omitempty" yaml:"config_keys,omitempty"`
	Rationale       string      `json:"rationale,omitempty" yaml:"rationale,omitempty"`
}

// Info extracts metadata from a rule.
func (r RuleDef) Info() RuleInfo {
	return RuleInfo{
		ID:              r.ID,
		Name:            r.Name,
		Group:           r.Group,
		Description:     r.Description,
		DefaultSeverity: r.Severity,
		Kinds:           r.Kinds,
		ConfigKeys:      r.ConfigKeys,
		Rationale:       r.Rationale,
	}
}

// ParseSeverity converts a severity name such as "warning" to a Severity.
func ParseSeverity(s string) (Severity, bool) {
	return core.ParseSeverity(s)
}
