package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqltree/internal/config"
	"github.com/leapstack-labs/sqltree/pkg/store/sqlite"
)

const defaultConfigFile = `# sqltree configuration
store:
  driver: sqlite
  path: .sqltree/nodes.db

log_level: warn
output: text

lint:
  disabled: []
  severity: {}
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var sample bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a sqltree workspace",
		Long: `Initialize a sqltree workspace.

This creates a sqltree.yaml configuration file and, for the sqlite driver,
the node database with all migrations applied.

Use --sample to also store the sample WHILE procedure.`,
		Example: `  # Initialize in current directory
  sqltree init

  # Initialize in a new directory with the sample procedure
  sqltree init my-trees --sample

  # Force overwrite existing config
  sqltree init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force, sample)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&sample, "sample", false, "Store the sample procedure")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force, sample bool) error {
	w := cmd.OutOrStdout()
	logger := NewCommandContextWithoutStore(cmd).Logger

	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", config.ConfigFileName)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfigFile), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}
	_, _ = fmt.Fprintf(w, "created %s\n", configPath)

	cfg, err := config.Load(configPath, dir, nil)
	if err != nil {
		return err
	}
	s, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	if db, ok := s.(*sqlite.Store); ok {
		version, err := db.MigrationVersion()
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "initialized %s (schema version %d)\n", db.Path(), version)
	}

	if sample {
		id, err := storeSample(cmd.Context(), s)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "stored sample procedure %s\n", id)
	}

	printNextSteps(w)
	return nil
}

func printNextSteps(w io.Writer) {
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "Next steps:")
	_, _ = fmt.Fprintln(w, "  1. Run 'sqltree sample' to store an example procedure")
	_, _ = fmt.Fprintln(w, "  2. Run 'sqltree ls' to list stored trees")
	_, _ = fmt.Fprintln(w, "  3. Run 'sqltree check' to lint them")
}
