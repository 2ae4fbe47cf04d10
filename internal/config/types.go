// Package config loads sqltree configuration from defaults, a sqltree.yaml
// file, SQLTREE_ environment variables and command-line flags.
package config

// StoreConfig selects and locates the node store.
type StoreConfig struct {
	Driver string `koanf:"driver"` // memory, sqlite
	Path   string `koanf:"path"`   // sqlite database file
}

// LintConfig holds lint rule configuration.
type LintConfig struct {
	// Disabled contains rule IDs to disable
	Disabled []string `koanf:"disabled"`

	// Severity maps rule ID to severity override (error, warning, info, hint)
	Severity map[string]string `koanf:"severity"`

	// Rules contains rule-specific options keyed by rule ID
	Rules map[string]RuleOptions `koanf:"rules"`
}

// RuleOptions holds rule-specific configuration options.
type RuleOptions map[string]any

// Config holds all sqltree configuration options.
type Config struct {
	Store    StoreConfig `koanf:"store"`
	LogLevel string      `koanf:"log_level"`
	Output   string      `koanf:"output"`
	Lint     *LintConfig `koanf:"lint"`

	// ConfigFile is the file the configuration was read from, if any.
	ConfigFile string `koanf:"-"`
}
