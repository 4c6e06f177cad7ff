package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func (a *app) storeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage stores and the active store",
	}
	cmd.AddCommand(a.storeAddCmd())
	cmd.AddCommand(a.storeListCmd())
	cmd.AddCommand(a.storeDeleteCmd())
	cmd.AddCommand(a.storeSelectCmd())
	cmd.AddCommand(a.storeClearCmd())
	cmd.AddCommand(a.storeCurrentCmd())
	return cmd
}

func (a *app) storeAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a store",
		Example: `  stockroom store add "Warehouse A"
  stockroom store add Downtown --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := requireText("store name", args[0])
			if err != nil {
				return err
			}
			inv, err := a.inventory(cmd.Context())
			if err != nil {
				return err
			}

			id, err := inv.Stores().Insert(cmd.Context(), types.Store{Name: name})
			if err != nil {
				return fmt.Errorf("add store: %w", err)
			}
			store, err := findStore(cmd.Context(), inv, id)
			if err != nil {
				return err
			}

			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), store)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added store %d (%s)\n", store.ID, store.Name)
			return nil
		},
	}
}

func (a *app) storeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stores; the active store is marked with *",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := a.inventory(cmd.Context())
			if err != nil {
				return err
			}
			stores, err := inv.Stores().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list stores: %w", err)
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), stores)
			}
			sel, err := inv.Selector().Current(cmd.Context())
			if err != nil {
				return fmt.Errorf("read selection: %w", err)
			}
			renderStores(cmd.OutOrStdout(), stores, sel)
			return nil
		},
	}
}

func (a *app) storeDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a store",
		Long: `Delete a store by id. Deleting an unknown id succeeds.

Operations recorded at the store are kept; they no longer appear in
'operation list' and are reported by 'operation orphans'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("store", args[0])
			if err != nil {
				return err
			}
			inv, err := a.inventory(cmd.Context())
			if err != nil {
				return err
			}
			if err := inv.Stores().Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete store: %w", err)
			}
			return a.printDeleted(cmd, "store", id)
		},
	}
}

func (a *app) storeSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <id>",
		Short: "Make a store the active store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("store", args[0])
			if err != nil {
				return err
			}
			inv, err := a.inventory(cmd.Context())
			if err != nil {
				return err
			}
			store, err := findStore(cmd.Context(), inv, id)
			if err != nil {
				return err
			}
			if _, err := inv.Selector().Select(cmd.Context(), store.ID); err != nil {
				return fmt.Errorf("select store: %w", err)
			}
			return a.printSelection(cmd)
		},
	}
}

func (a *app) storeClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the active store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := a.inventory(cmd.Context())
			if err != nil {
				return err
			}
			if err := inv.Selector().Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear selection: %w", err)
			}
			return a.printSelection(cmd)
		},
	}
}

func (a *app) storeCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the active store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.inventory(cmd.Context()); err != nil {
				return err
			}
			return a.printSelection(cmd)
		},
	}
}

// printSelection re-reads the selector and prints it.
func (a *app) printSelection(cmd *cobra.Command) error {
	ctx := cmd.Context()
	inv := a.backend
	sel, err := inv.Selector().Current(ctx)
	if err != nil {
		return fmt.Errorf("read selection: %w", err)
	}
	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), sel)
	}

	out := cmd.OutOrStdout()
	if !sel.Selected {
		fmt.Fprintln(out, "No store selected")
		return nil
	}
	name := "(missing)"
	if store, err := findStore(ctx, inv, sel.StoreID); err == nil {
		name = store.Name
	}
	fmt.Fprintf(out, "Active store: %d (%s)\n", sel.StoreID, name)
	return nil
}

// printDeleted reports a delete by id.
func (a *app) printDeleted(cmd *cobra.Command, entity string, id int64) error {
	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), map[string]any{"deleted": entity, "id": id})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %d\n", entity, id)
	return nil
}
