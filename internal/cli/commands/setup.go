package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/sqltree/internal/config"
	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
	"github.com/leapstack-labs/sqltree/pkg/store/memory"
	"github.com/leapstack-labs/sqltree/pkg/store/sqlite"
)

// NodeStore is a store that supports atomic updates.
type NodeStore interface {
	core.Store
	core.Transactor
}

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Store  NodeStore
	Out    io.Writer
}

// NewCommandContext creates a CommandContext with an open store.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cmdCtx := NewCommandContextWithoutStore(cmd)

	s, closeStore, err := openStore(cmdCtx.Cfg, cmdCtx.Logger)
	if err != nil {
		return nil, nil, err
	}
	cmdCtx.Store = s

	cleanup := func() {
		if err := closeStore(); err != nil {
			cmdCtx.Logger.Warn("failed to close store", "error", err)
		}
	}
	return cmdCtx, cleanup, nil
}

// NewCommandContextWithoutStore creates a CommandContext without a store.
// Useful for commands that don't need node storage.
func NewCommandContextWithoutStore(cmd *cobra.Command) *CommandContext {
	return &CommandContext{
		Cfg:    getConfig(cmd.Context()),
		Logger: config.GetLogger(cmd.Context()),
		Out:    cmd.OutOrStdout(),
	}
}

// getConfig returns the configuration loaded by the root command, or the
// defaults when the command runs on its own.
func getConfig(ctx context.Context) *config.Config {
	if ctx != nil {
		if cfg := config.FromContext(ctx); cfg != nil {
			return cfg
		}
	}
	return &config.Config{
		Store:    config.StoreConfig{Driver: config.DefaultDriver, Path: config.DefaultPath},
		LogLevel: config.DefaultLogLevel,
		Output:   config.DefaultOutput,
	}
}

func openStore(cfg *config.Config, logger *slog.Logger) (NodeStore, func() error, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return memory.New(memory.WithLogger(logger)), func() error { return nil }, nil
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.Store.Path); dir != "." && dir != "" && cfg.Store.Path != ":memory:" {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, nil, fmt.Errorf("failed to create store directory: %w", err)
			}
		}
		s, err := sqlite.Open(cfg.Store.Path, sqlite.WithLogger(logger))
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// node loads the node with the given ID from s.
func node(s core.Store, id string) (ast.Node, error) {
	return ast.Wrap(s, core.NodeID(id))
}

// writeData encodes v as YAML or JSON.
func writeData(w io.Writer, format string, v any) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("cannot encode as %q", format)
	}
}
