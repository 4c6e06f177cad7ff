package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/pkg/stockroom"
)

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the stockroom version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]string{
					"version": stockroom.Version,
					"module":  stockroom.ModulePath,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stockroom v%s\nmodule: %s\n", stockroom.Version, stockroom.ModulePath)
			return nil
		},
	}
}
