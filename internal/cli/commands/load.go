package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
)

// NewLoadCommand creates the load command.
func NewLoadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>",
		Short: "Store a tree from a snapshot file",
		Long: `Restore a YAML or JSON snapshot, as written by 'sqltree show -o yaml',
into the store and print the new root node ID. Node IDs in the file are
ignored; the store assigns fresh ones.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := readSnapshot(args[0])
			if err != nil {
				return err
			}

			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			var id core.NodeID
			err = cmdCtx.Store.Update(cmd.Context(), func(tx core.Store) error {
				n, err := ast.Restore(tx, snap)
				if err != nil {
					return err
				}
				id = n.ID()
				return nil
			})
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			cmdCtx.Logger.Info("loaded snapshot", "file", args[0], "root", id)
			_, _ = fmt.Fprintln(cmdCtx.Out, id)
			return nil
		},
	}
}

// readSnapshot decodes a snapshot file. Files ending in .json are JSON;
// everything else is YAML.
func readSnapshot(path string) (*ast.Snapshot, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is a user-supplied CLI argument
	if err != nil {
		return nil, err
	}

	var snap ast.Snapshot
	if strings.EqualFold(filepath.Ext(path), ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&snap)
	} else {
		err = yaml.Unmarshal(data, &snap)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if snap.Kind == "" {
		return nil, fmt.Errorf("parse %s: snapshot has no kind", path)
	}
	return &snap, nil
}
