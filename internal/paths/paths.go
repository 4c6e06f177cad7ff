// Package paths resolves where stockroom keeps its configuration and its
// inventory database.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user directories.
const AppName = "stockroom"

// CWD-relative directory names.
const (
	DefaultConfigDirName = ".stockroom"
	DefaultDataDirName   = ".stockroom-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "STOCKROOM_CONFIG_DIR"
	EnvDataDir   = "STOCKROOM_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// xdgDir returns $<env>/stockroom on Linux, falling back to ~/<fallback...>/stockroom.
// Other platforms use os.UserConfigDir for both kinds of directory.
func xdgDir(env string, fallback ...string) (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append(append([]string{home}, fallback...), AppName)...), nil
}

// DefaultConfigDir returns the platform-specific configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/stockroom (fallback ~/.config/stockroom)
// macOS:   ~/Library/Application Support/stockroom
// Windows: %APPDATA%/stockroom
func DefaultConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-specific data directory.
//
// Linux:   $XDG_DATA_HOME/stockroom (fallback ~/.local/share/stockroom)
// macOS and Windows: same as DefaultConfigDir.
func DefaultDataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// ResolveConfigDir returns the configuration directory:
// flag > STOCKROOM_CONFIG_DIR > $(CWD)/.stockroom if it exists > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	local := filepath.Join(cwd, DefaultConfigDirName)
	if info, err := os.Stat(local); err == nil && info.IsDir() {
		return local, nil
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory:
// flag > STOCKROOM_DATA_DIR > config.yaml data_dir > $(CWD)/.stockroom-db.
func ResolveDataDir(flag, configValue string) (string, error) {
	for _, v := range []string{flag, os.Getenv(EnvDataDir), configValue} {
		if v != "" {
			return filepath.Abs(v)
		}
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
