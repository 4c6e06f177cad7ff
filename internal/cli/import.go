package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Restore the inventory from an export",
	}
	cmd.AddCommand(a.importJSONLCmd())
	return cmd
}

func (a *app) importJSONLCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "jsonl <dir>",
		Short: "Replace all tables with the JSON Lines files in dir",
		Long: `Import reads the <table>.jsonl files written by 'export jsonl' and
replaces the current contents of every table. Malformed lines are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return userError("import replaces all inventory data; pass --yes to confirm")
			}
			dir, err := requireText("directory", args[0])
			if err != nil {
				return err
			}
			inv, err := a.inventory(cmd.Context())
			if err != nil {
				return err
			}
			result, err := inv.ImportJSONL(cmd.Context(), dir)
			if err != nil {
				return fmt.Errorf("import jsonl: %w", err)
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			rows := 0
			for _, n := range result.Tables {
				rows += n
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d row(s) from %s, skipped %d\n", rows, dir, result.Skipped)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm replacing all data")
	return cmd
}
