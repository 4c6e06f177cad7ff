package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func (a *app) operationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "operation",
		Aliases: []string{"op"},
		Short:   "Record and review stock movements",
	}
	cmd.AddCommand(a.operationAddCmd())
	cmd.AddCommand(a.operationListCmd())
	cmd.AddCommand(a.operationDeleteCmd())
	cmd.AddCommand(a.operationOrphansCmd())
	return cmd
}

func (a *app) operationAddCmd() *cobra.Command {
	var (
		typeName string
		concept  string
		uniform  int64
		quantity int64
		date     string
		storeID  int64
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record stock entering or leaving a store",
		Long: `Add records an entry or exit of one uniform at a store.

The store defaults to the active store and the date to today.`,
		Example: `  stockroom operation add --type entry --concept restock --uniform 1 --quantity 5
  stockroom operation add --type exit --concept "issued to staff" --uniform 2 --quantity 1 --date 2024-03-01 --store 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opType, err := types.ParseOperationType(typeName)
			if err != nil {
				return userError("%w", err)
			}
			reason, err := requireText("concept", concept)
			if err != nil {
				return err
			}
			if quantity <= 0 {
				return userError("quantity must be a positive number, got %d", quantity)
			}
			day := types.Today()
			if strings.TrimSpace(date) != "" {
				if day, err = types.ParseDate(date); err != nil {
					return userError("%w", err)
				}
			}

			ctx := cmd.Context()
			inv, err := a.inventory(ctx)
			if err != nil {
				return err
			}
			store, err := targetStore(ctx, inv, storeID)
			if err != nil {
				return err
			}
			u, err := findUniform(ctx, inv, uniform)
			if err != nil {
				return err
			}

			op := types.Operation{
				StoreID:   store.ID,
				Type:      opType,
				Concept:   reason,
				UniformID: u.ID,
				Quantity:  quantity,
				Date:      day,
			}
			op.ID, err = inv.Operations().Insert(ctx, op)
			if err != nil {
				return fmt.Errorf("add operation: %w", err)
			}

			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), op)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded operation %d: %s of %d %s %s at %s on %s\n",
				op.ID, op.Type, op.Quantity, u.Type, u.Size, store.Name, op.Date)
			return nil
		},
	}
	cmd.Flags().StringVar(&typeName, "type", "", "entry or exit (required)")
	cmd.Flags().StringVar(&concept, "concept", "", "reason for the movement (required)")
	cmd.Flags().Int64Var(&uniform, "uniform", 0, "uniform id (required)")
	cmd.Flags().Int64Var(&quantity, "quantity", 0, "number of items (required)")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default: today)")
	cmd.Flags().Int64Var(&storeID, "store", 0, "store id (default: active store)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("concept")
	_ = cmd.MarkFlagRequired("uniform")
	_ = cmd.MarkFlagRequired("quantity")
	return cmd
}

func (a *app) operationListCmd() *cobra.Command {
	var (
		all     bool
		storeID int64
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List operations, newest first",
		Long: `List operations at the active store, newest date first.

Use --store to list another store or --all for every store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			inv, err := a.inventory(ctx)
			if err != nil {
				return err
			}

			var records []types.OperationRecord
			if all {
				records, err = inv.Operations().List(ctx)
			} else {
				store, serr := targetStore(ctx, inv, storeID)
				if serr != nil {
					return serr
				}
				records, err = inv.Operations().ListByStore(ctx, store.ID)
			}
			if err != nil {
				return fmt.Errorf("list operations: %w", err)
			}

			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), records)
			}
			renderOperations(cmd.OutOrStdout(), records)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "list operations at every store")
	cmd.Flags().Int64Var(&storeID, "store", 0, "store id (default: active store)")
	cmd.MarkFlagsMutuallyExclusive("all", "store")
	return cmd
}

func (a *app) operationDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("operation", args[0])
			if err != nil {
				return err
			}
			inv, err := a.inventory(cmd.Context())
			if err != nil {
				return err
			}
			if err := inv.Operations().Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete operation: %w", err)
			}
			return a.printDeleted(cmd, "operation", id)
		},
	}
}

func (a *app) operationOrphansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orphans",
		Short: "List operations whose store or uniform was deleted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := a.inventory(cmd.Context())
			if err != nil {
				return err
			}
			orphans, err := inv.Operations().Orphans(cmd.Context())
			if err != nil {
				return fmt.Errorf("list orphans: %w", err)
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), orphans)
			}
			renderOrphans(cmd.OutOrStdout(), orphans)
			return nil
		},
	}
}
