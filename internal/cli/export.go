package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/sqlite"
)

func (a *app) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy the inventory out of the data directory",
	}
	cmd.AddCommand(a.exportDBCmd())
	cmd.AddCommand(a.exportJSONLCmd())
	return cmd
}

func (a *app) exportDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "db <file>",
		Short: "Write a consistent copy of the SQLite database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, err := requireText("destination", args[0])
			if err != nil {
				return err
			}
			inv, err := a.inventory(cmd.Context())
			if err != nil {
				return err
			}
			if err := inv.ExportDB(cmd.Context(), dest); err != nil {
				if errors.Is(err, sqlite.ErrExportExists) {
					return userError("%w", err)
				}
				return sysError(fmt.Errorf("export database: %w", err))
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"exported": dest})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported database to %s\n", dest)
			return nil
		},
	}
}

func (a *app) exportJSONLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jsonl <dir>",
		Short: "Write one JSON Lines file per table and a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := requireText("directory", args[0])
			if err != nil {
				return err
			}
			inv, err := a.inventory(cmd.Context())
			if err != nil {
				return err
			}
			manifest, err := inv.ExportJSONL(cmd.Context(), dir)
			if err != nil {
				return sysError(fmt.Errorf("export jsonl: %w", err))
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), manifest)
			}
			rows := 0
			for _, n := range manifest.Tables {
				rows += n
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d row(s) from %d table(s) to %s (export %s)\n",
				rows, len(manifest.Tables), dir, manifest.ExportID)
			return nil
		},
	}
}
