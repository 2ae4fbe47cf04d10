package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("driver", "", "")
	fs.String("db", "", "")
	fs.String("log-level", "", "")
	fs.StringP("output", "o", "", "")
	fs.Bool("unrelated", false, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", t.TempDir(), nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultDriver, cfg.Store.Driver)
	assert.Equal(t, DefaultPath, cfg.Store.Path)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Nil(t, cfg.Lint)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
store:
  driver: sqlite
  path: data/tree.db
output: yaml
lint:
  disabled: [ST04]
  severity:
    RF02: error
  rules:
    ST04:
      ignore_labeled: true
`)

	cfg, err := Load("", dir, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, ConfigFileName), cfg.ConfigFile)
	assert.Equal(t, filepath.Join(dir, "data", "tree.db"), cfg.Store.Path)
	assert.Equal(t, OutputYAML, cfg.Output)
	require.NotNil(t, cfg.Lint)
	assert.Equal(t, []string{"ST04"}, cfg.Lint.Disabled)
	assert.Equal(t, "error", cfg.Lint.Severity["RF02"])
	assert.Equal(t, true, cfg.Lint.Rules["ST04"]["ignore_labeled"])
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "output: yaml\nlog_level: info\n")
	t.Setenv("SQLTREE_OUTPUT", "json")
	t.Setenv("SQLTREE_STORE__DRIVER", "memory")

	cfg, err := Load("", dir, testFlags(t, "--log-level", "debug", "--unrelated"))
	require.NoError(t, err)

	assert.Equal(t, OutputJSON, cfg.Output, "env overrides file")
	assert.Equal(t, DriverMemory, cfg.Store.Driver, "env sets nested key")
	assert.Equal(t, "debug", cfg.LogLevel, "flag overrides file")

	cfg, err = Load("", dir, testFlags(t, "-o", "text", "--db", "rel.db"))
	require.NoError(t, err)
	assert.Equal(t, OutputText, cfg.Output, "flag overrides env")
	assert.Equal(t, "rel.db", cfg.Store.Path, "flag paths are not anchored at the config file")
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  path: ':memory:'\n"), 0o600))

	cfg, err := Load(path, t.TempDir(), nil)
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.Store.Path)

	_, err = Load(filepath.Join(dir, "missing.yaml"), dir, nil)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Store:    StoreConfig{Driver: DriverSQLite, Path: "x.db"},
			LogLevel: "warn",
			Output:   OutputText,
		}
	}

	tests := []struct {
		name      string
		mutate    func(c *Config)
		errSubstr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "memory needs no path", mutate: func(c *Config) { c.Store = StoreConfig{Driver: DriverMemory} }},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "postgres" }, errSubstr: "unknown store driver"},
		{name: "sqlite without path", mutate: func(c *Config) { c.Store.Path = "" }, errSubstr: "store.path is required"},
		{name: "unknown output", mutate: func(c *Config) { c.Output = "xml" }, errSubstr: "unknown output format"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, errSubstr: "invalid log_level"},
		{name: "upper case log level", mutate: func(c *Config) { c.LogLevel = "DEBUG" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}
