package config

// Store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Output formats.
const (
	OutputText = "text"
	OutputYAML = "yaml"
	OutputJSON = "json"
)

// Default configuration values.
const (
	DefaultDriver   = DriverSQLite
	DefaultPath     = ".sqltree/nodes.db"
	DefaultLogLevel = "warn"
	DefaultOutput   = OutputText
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "sqltree.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "sqltree.yml"

// EnvPrefix prefixes environment variables that override config keys.
// SQLTREE_STORE__PATH sets store.path.
const EnvPrefix = "SQLTREE_"

func defaults() map[string]any {
	return map[string]any{
		"store.driver": DefaultDriver,
		"store.path":   DefaultPath,
		"log_level":    DefaultLogLevel,
		"output":       DefaultOutput,
	}
}
