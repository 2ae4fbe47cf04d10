package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqltree/internal/config"
	"github.com/leapstack-labs/sqltree/internal/testutil"
	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
	"github.com/leapstack-labs/sqltree/pkg/lint"
	"github.com/leapstack-labs/sqltree/pkg/store/memory"
)

func TestSampleAndStats(t *testing.T) {
	s := memory.New(memory.WithLogger(testutil.NewTestLogger(t)))
	ctx := context.Background()

	first, err := storeSample(ctx, s)
	require.NoError(t, err)
	_, err = storeSample(ctx, s)
	require.NoError(t, err)

	root, err := ast.Load[*ast.Block](s, first)
	require.NoError(t, err)
	stmts, err := root.Statements()
	require.NoError(t, err)
	require.Len(t, stmts, 3)
	w, ok := stmts[1].(*ast.WhileStatement)
	require.True(t, ok)
	label, err := w.Label()
	require.NoError(t, err)
	assert.Equal(t, "loop1", label)

	stats, err := collectStats(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Trees)
	assert.Equal(t, 2, stats.Kinds[core.KindWhile])
	assert.Equal(t, 2*22, stats.Nodes)

	roots, err := listRoots(s)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, first, roots[0].ID)
	assert.Equal(t, 22, roots[0].Nodes)
}

func TestCompareTrees(t *testing.T) {
	s := memory.New()
	a, err := storeSample(context.Background(), s)
	require.NoError(t, err)
	b, err := storeSample(context.Background(), s)
	require.NoError(t, err)

	cmp, err := compareTrees(s, string(a), string(b))
	require.NoError(t, err)
	assert.True(t, cmp.Equal)
	assert.Equal(t, cmp.LeftHash, cmp.RightHash)
	assert.Len(t, cmp.LeftHash, 16)

	_, err = compareTrees(s, string(a), "missing")
	require.ErrorIs(t, err, core.ErrNodeNotFound)
}

func TestBuildLintConfig(t *testing.T) {
	cfg := &config.Config{Lint: &config.LintConfig{
		Disabled: []string{"ST04"},
		Severity: map[string]string{"RF02": "error"},
		Rules:    map[string]config.RuleOptions{"ST04": {"ignore_labeled": true}},
	}}

	lintCfg, err := buildLintConfig(cfg, &CheckOptions{Disable: []string{"CV02"}})
	require.NoError(t, err)
	assert.True(t, lintCfg.IsDisabled("ST04"))
	assert.True(t, lintCfg.IsDisabled("CV02"))
	assert.Equal(t, lint.SeverityError, lintCfg.GetSeverity("RF02", lint.SeverityWarning))
	assert.Equal(t, true, lintCfg.GetRuleOptions("ST04")["ignore_labeled"])

	cfg.Lint.Severity["RF02"] = "fatal"
	_, err = buildLintConfig(cfg, &CheckOptions{})
	require.Error(t, err)
}

func TestFilterBySeverity(t *testing.T) {
	diags := []lint.Diagnostic{
		{RuleID: "A", Severity: lint.SeverityError},
		{RuleID: "B", Severity: lint.SeverityWarning},
		{RuleID: "C", Severity: lint.SeverityHint},
	}
	assert.Len(t, filterBySeverity(diags, lint.SeverityError), 1)
	assert.Len(t, filterBySeverity(diags, lint.SeverityWarning), 2)
	assert.Len(t, filterBySeverity(diags, lint.SeverityHint), 3)
}

func TestCalculateHealthScore(t *testing.T) {
	tests := []struct {
		name   string
		checks []HealthCheck
		trees  int
		want   int
	}{
		{name: "no checks", want: 100},
		{name: "all pass", checks: []HealthCheck{{Status: "pass"}}, trees: 3, want: 100},
		{name: "warnings", checks: []HealthCheck{{Status: "warn", IssueCount: 2}}, trees: 3, want: 90},
		{name: "errors count double", checks: []HealthCheck{{Status: "error", IssueCount: 1}}, trees: 3, want: 90},
		{name: "many trees soften penalty", checks: []HealthCheck{{Status: "warn", IssueCount: 2}}, trees: 20, want: 94},
		{name: "clamped", checks: []HealthCheck{{Status: "error", IssueCount: 50}}, trees: 1, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calculateHealthScore(tt.checks, tt.trees))
		})
	}
}

func TestReadSnapshot(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		return path
	}

	snap, err := readSnapshot(write("ok.yaml", "kind: CONSTANT\nproperties:\n  value: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, core.KindConstant, snap.Kind)

	snap, err = readSnapshot(write("ok.json", `{"kind":"RETURN"}`))
	require.NoError(t, err)
	assert.Equal(t, core.KindReturn, snap.Kind)

	_, err = readSnapshot(write("unknown.json", `{"kind":"RETURN","extra":1}`))
	require.Error(t, err)

	_, err = readSnapshot(write("empty.yaml", "properties: {}\n"))
	require.ErrorContains(t, err, "no kind")

	_, err = readSnapshot(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestSnapshotFileRoundTrip(t *testing.T) {
	s := memory.New()
	b := ast.NewBuilder(s)
	orig := b.Func("f", b.Const(2.0), b.Const(int64(1<<62+1)), b.Const(0.5))
	require.NoError(t, b.Err())
	snap, err := ast.TakeSnapshot(orig)
	require.NoError(t, err)

	for _, format := range []string{config.OutputYAML, config.OutputJSON} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeData(&buf, format, snap))
			path := filepath.Join(t.TempDir(), "tree."+format)
			require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

			decoded, err := readSnapshot(path)
			require.NoError(t, err)
			restored, err := ast.Restore(s, decoded)
			require.NoError(t, err)

			eq, err := ast.Equal(orig, restored)
			require.NoError(t, err)
			assert.True(t, eq, buf.String())
		})
	}
}

func TestWriteData(t *testing.T) {
	v := RootInfo{ID: "n1", Kind: core.KindBlock, Nodes: 2}

	var buf bytes.Buffer
	require.NoError(t, writeData(&buf, config.OutputYAML, v))
	assert.Equal(t, "id: n1\nkind: BLOCK\nnodes: 2\n", buf.String())

	buf.Reset()
	require.NoError(t, writeData(&buf, config.OutputJSON, v))
	assert.JSONEq(t, `{"id":"n1","kind":"BLOCK","nodes":2}`, buf.String())

	require.Error(t, writeData(&buf, config.OutputText, v))
}
