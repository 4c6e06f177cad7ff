package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all inventory data",
		Long: `Reset deletes the inventory database and recreates empty tables.
It cannot be undone; export first if the data matters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return userError("reset deletes all inventory data; pass --yes to confirm")
			}
			inv, err := a.inventory(cmd.Context())
			if err != nil {
				return err
			}
			if err := inv.Reset(cmd.Context()); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"reset": inv.Path()})
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Inventory reset")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting all data")
	return cmd
}
