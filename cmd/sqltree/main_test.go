// Package main provides end-to-end tests for the sqltree CLI.
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqltree/internal/cli"
)

// run executes the CLI against the sqlite database at db.
func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{"--driver", "sqlite", "--db", db}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func mustRun(t *testing.T, db string, args ...string) string {
	t.Helper()
	out, err := run(t, db, args...)
	require.NoError(t, err, "sqltree %s: %s", strings.Join(args, " "), out)
	return out
}

func TestVersionCommand(t *testing.T) {
	out := mustRun(t, filepath.Join(t.TempDir(), "nodes.db"), "version")
	assert.Contains(t, out, "sqltree v")
}

func TestWorkflow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "nodes.db")

	id := strings.TrimSpace(mustRun(t, db, "sample"))
	require.NotEmpty(t, id)

	out := mustRun(t, db, "ls")
	assert.Contains(t, out, id)
	assert.Contains(t, out, "(1 trees)")

	out = mustRun(t, db, "show", id)
	assert.Contains(t, out, "BLOCK")
	assert.Contains(t, out, `WHILE label="loop1"`)
	assert.Contains(t, out, "BRANCHING")

	out = mustRun(t, db, "show", "--sql", id)
	assert.Contains(t, out, "loop1: WHILE (x < 10)")
	assert.Contains(t, out, "    BREAK loop1;")

	cloneID := strings.TrimSpace(mustRun(t, db, "clone", id))
	require.NotEqual(t, id, cloneID)

	out = mustRun(t, db, "eq", id, cloneID)
	assert.Contains(t, out, "equal: true")

	out = mustRun(t, db, "-o", "json", "eq", id, cloneID)
	var cmp struct {
		Equal     bool   `json:"equal"`
		LeftHash  string `json:"left_hash"`
		RightHash string `json:"right_hash"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &cmp))
	assert.True(t, cmp.Equal)
	assert.Equal(t, cmp.LeftHash, cmp.RightHash)

	out = mustRun(t, db, "stats")
	assert.Contains(t, out, "WHILE")
	assert.Contains(t, out, "(2 trees)")

	out = mustRun(t, db, "check")
	assert.Contains(t, out, "No issues found in 2 tree(s)")

	mustRun(t, db, "rm", cloneID)
	out = mustRun(t, db, "ls")
	assert.NotContains(t, out, cloneID)

	_, err := run(t, db, "show", cloneID)
	require.Error(t, err)
}

func TestShowLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "nodes.db")
	id := strings.TrimSpace(mustRun(t, db, "sample"))

	for _, format := range []string{"yaml", "json"} {
		t.Run(format, func(t *testing.T) {
			file := filepath.Join(dir, "tree."+format)
			require.NoError(t, os.WriteFile(file, []byte(mustRun(t, db, "-o", format, "show", id)), 0o600))

			loaded := strings.TrimSpace(mustRun(t, db, "load", file))
			out := mustRun(t, db, "eq", id, loaded)
			assert.Contains(t, out, "equal: true")
		})
	}
}

func TestCheckReportsErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`kind: BLOCK
slots:
  - name: statements
    nodes:
      - kind: WHILE
        properties:
          label: outer
      - kind: BRANCHING
        properties:
          mode: LEAVE
          label: nowhere
`), 0o600))
	db := filepath.Join(dir, "nodes.db")

	out, err := run(t, db, "check", "--file", file)
	require.Error(t, err)
	assert.Contains(t, out, "ST01")
	assert.Contains(t, out, "ST02")
	assert.Contains(t, out, "RF01")
	assert.Contains(t, out, "statements[1]")

	out, err = run(t, db, "check", "--file", file, "--rule", "ST01")
	require.Error(t, err)
	assert.Contains(t, out, "ST01")
	assert.NotContains(t, out, "RF01")

	out, err = run(t, db, "check", "--file", file, "--disable", "ST01,ST02,RF01")
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found")
}

func TestRulesCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "nodes.db")

	out := mustRun(t, db, "rules")
	for _, id := range []string{"ST01", "RF01", "CV01"} {
		assert.Contains(t, out, id)
	}

	out = mustRun(t, db, "rules", "st04")
	assert.Contains(t, out, "structure.empty_block")
	assert.Contains(t, out, "min_statements")

	out = mustRun(t, db, "rules", "--group", "references")
	assert.Contains(t, out, "(2 rules)")

	_, err := run(t, db, "rules", "XX99")
	require.Error(t, err)
}

func TestInitCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "work")
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"init", dir, "--sample"})
	require.NoError(t, cmd.Execute(), buf.String())

	assert.FileExists(t, filepath.Join(dir, "sqltree.yaml"))
	assert.FileExists(t, filepath.Join(dir, ".sqltree", "nodes.db"))
	assert.Contains(t, buf.String(), "schema version 1")
	assert.Contains(t, buf.String(), "stored sample procedure")

	cmd = cli.NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"init", dir})
	require.Error(t, cmd.Execute())
}

func TestDoctorCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "nodes.db")
	mustRun(t, db, "sample")

	out := mustRun(t, db, "doctor")
	assert.Contains(t, out, "trees:   1")
	assert.Contains(t, out, "Structure")
	assert.Contains(t, out, "Health score: 100/100")
}

func TestMemoryDriver(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--driver", "memory", "sample"})
	require.NoError(t, cmd.Execute())
	assert.NotEmpty(t, strings.TrimSpace(buf.String()))
}

func TestUnknownCommand(t *testing.T) {
	_, err := run(t, filepath.Join(t.TempDir(), "nodes.db"), "nonexistent")
	require.Error(t, err)
}
