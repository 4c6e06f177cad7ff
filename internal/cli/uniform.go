package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func (a *app) uniformCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uniform",
		Short: "Manage the uniform catalog",
	}
	cmd.AddCommand(a.uniformAddCmd())
	cmd.AddCommand(a.uniformListCmd())
	cmd.AddCommand(a.uniformDeleteCmd())
	return cmd
}

func (a *app) uniformAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add <type> <size>",
		Short:   "Add a uniform type and size",
		Example: `  stockroom uniform add Shirt M`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := requireText("uniform type", args[0])
			if err != nil {
				return err
			}
			size, err := requireText("uniform size", args[1])
			if err != nil {
				return err
			}
			inv, err := a.inventory(cmd.Context())
			if err != nil {
				return err
			}

			id, err := inv.Uniforms().Insert(cmd.Context(), types.Uniform{Type: kind, Size: size})
			if err != nil {
				return fmt.Errorf("add uniform: %w", err)
			}
			u, err := findUniform(cmd.Context(), inv, id)
			if err != nil {
				return err
			}

			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), u)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added uniform %d (%s %s)\n", u.ID, u.Type, u.Size)
			return nil
		},
	}
}

func (a *app) uniformListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List uniforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := a.inventory(cmd.Context())
			if err != nil {
				return err
			}
			uniforms, err := inv.Uniforms().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list uniforms: %w", err)
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), uniforms)
			}
			renderUniforms(cmd.OutOrStdout(), uniforms)
			return nil
		},
	}
}

func (a *app) uniformDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a uniform",
		Long: `Delete a uniform by id. Deleting an unknown id succeeds.

Operations on the uniform are kept and reported by 'operation orphans'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("uniform", args[0])
			if err != nil {
				return err
			}
			inv, err := a.inventory(cmd.Context())
			if err != nil {
				return err
			}
			if err := inv.Uniforms().Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete uniform: %w", err)
			}
			return a.printDeleted(cmd, "uniform", id)
		},
	}
}
