package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func (a *app) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize stockroom storage",
		Long: `Create the configuration and data directories and the inventory tables.

A --data-dir given to init is recorded in config.yaml so later commands
use it without the flag.`,
		Args: cobra.NoArgs,
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	configPath := filepath.Join(a.configDir, configFileExt)
	cfg, err := readConfigFile(configPath)
	if err != nil {
		return sysError(fmt.Errorf("read config: %w", err))
	}

	if a.flags.dataDir != "" {
		abs, err := filepath.Abs(a.flags.dataDir)
		if err != nil {
			return userError("data dir %q: %v", a.flags.dataDir, err)
		}
		if cfg.DataDir != abs {
			cfg.DataDir = abs
			if err := writeConfigFile(configPath, cfg); err != nil {
				return sysError(fmt.Errorf("write config: %w", err))
			}
		}
	}

	inv, err := a.inventory(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if a.flags.jsonMode {
		return writeJSON(out, map[string]string{
			"config":   configPath,
			"database": inv.Path(),
		})
	}
	fmt.Fprintln(out, "Stockroom initialized successfully")
	fmt.Fprintf(out, "config:   %s\n", configPath)
	fmt.Fprintf(out, "database: %s\n", inv.Path())
	return nil
}
