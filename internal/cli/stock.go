package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) stockCmd() *cobra.Command {
	var storeID int64
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Show stock levels at a store",
		Long: `Stock sums entries minus exits for each uniform at the active store,
or at the store given by --store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			inv, err := a.inventory(ctx)
			if err != nil {
				return err
			}
			store, err := targetStore(ctx, inv, storeID)
			if err != nil {
				return err
			}
			balances, err := inv.Operations().Balances(ctx, store.ID)
			if err != nil {
				return fmt.Errorf("compute stock: %w", err)
			}

			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"store":    store,
					"balances": balances,
				})
			}
			renderBalances(cmd.OutOrStdout(), store, balances)
			return nil
		},
	}
	cmd.Flags().Int64Var(&storeID, "store", 0, "store id (default: active store)")
	return cmd
}
