// Package cli implements the stockroom command-line interface. Each command
// migrates the inventory, performs one data-access call, and prints the
// resulting state as text or JSON.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/stockroom/internal/paths"
	"github.com/mesh-intelligence/stockroom/internal/sqlite"
	"github.com/mesh-intelligence/stockroom/pkg/logging"
	"github.com/mesh-intelligence/stockroom/pkg/stockroom"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	logLevel  string
	jsonMode  bool
}

// app is the state shared by one invocation of the command tree.
type app struct {
	flags     rootFlags
	stderr    io.Writer
	configDir string
	config    *viper.Viper
	backend   *sqlite.Backend
}

// rootCmd creates the top-level "stockroom" command with global flags and
// all subcommands registered.
func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "stockroom",
		Short:   "Track uniform stock across stores",
		Long:    "Stockroom records uniform stock entering and leaving a set of stores,\nkeeping everything in a local SQLite database.",
		Version: stockroom.Version,
		// Errors are printed by Run with their exit code.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $(CWD)/.stockroom or the user config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.stockroom-db)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error (default: warn)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(a.versionCmd())
	root.AddCommand(a.initCmd())
	root.AddCommand(a.storeCmd())
	root.AddCommand(a.uniformCmd())
	root.AddCommand(a.operationCmd())
	root.AddCommand(a.stockCmd())
	root.AddCommand(a.exportCmd())
	root.AddCommand(a.importCmd())
	root.AddCommand(a.resetCmd())

	return root
}

// Execute runs the CLI with the process arguments and exits with the
// resulting code.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the command tree with args and returns the exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	a := &app{stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(context.Background())
	if cerr := a.close(); err == nil && cerr != nil {
		err = sysError(cerr)
	}
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "Error:", err)
	return exitCode(err)
}

// setup loads config.yaml and configures logging. It runs before every
// subcommand.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	a.configDir = configDir
	a.config = cfg

	levelName := a.flags.logLevel
	if levelName == "" {
		levelName = cfg.GetString(cfgKeyLogLevel)
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return userError("%v", err)
	}
	logging.Setup(a.stderr, level)
	slog.Debug("config loaded", "dir", configDir, "file", cfg.ConfigFileUsed())
	return nil
}

// dataDir resolves the data directory from flag, env, and config.yaml.
func (a *app) dataDir() (string, error) {
	var configured string
	if a.config != nil {
		configured = a.config.GetString(cfgKeyDataDir)
	}
	return paths.ResolveDataDir(a.flags.dataDir, configured)
}

// inventory attaches the SQLite backend and runs Migrate. The backend is
// detached by Run when the command finishes.
func (a *app) inventory(ctx context.Context) (*sqlite.Backend, error) {
	if a.backend != nil {
		return a.backend, a.backend.Migrate(ctx)
	}

	dataDir, err := a.dataDir()
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	backendName := types.BackendSQLite
	if a.config != nil {
		backendName = a.config.GetString(cfgKeyBackend)
	}
	cfg := types.Config{Backend: backendName, DataDir: dataDir}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		if errors.Is(err, types.ErrBackendUnknown) || errors.Is(err, types.ErrBackendEmpty) {
			return nil, userError("%v", err)
		}
		return nil, fmt.Errorf("attach inventory: %w", err)
	}
	a.backend = backend

	if err := backend.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return backend, nil
}

func (a *app) close() error {
	if a.backend == nil {
		return nil
	}
	err := a.backend.Detach()
	a.backend = nil
	return err
}
