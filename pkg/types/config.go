package types

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// BackendSQLite names the embedded SQLite backend, the only one shipped.
const BackendSQLite = "sqlite"

// DatabaseFileName is the file the SQLite backend keeps under the data
// directory.
const DatabaseFileName = "inventory.db"

// Errors returned by Config.Validate.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// Backends lists the backend names Validate accepts.
func Backends() []string {
	return []string{BackendSQLite}
}

// Config is what Inventory.Attach needs to open the store: which backend to
// use and the directory holding its data. The CLI fills it from config.yaml,
// STOCKROOM_* variables, and flags.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Validate reports ErrBackendEmpty or ErrBackendUnknown. An empty DataDir is
// allowed and means the working directory.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	for _, name := range Backends() {
		if c.Backend == name {
			return nil
		}
	}
	return fmt.Errorf("%w %q (supported: %s)", ErrBackendUnknown, c.Backend, strings.Join(Backends(), ", "))
}

// Dir returns DataDir, or "." when it is empty.
func (c Config) Dir() string {
	if c.DataDir == "" {
		return "."
	}
	return c.DataDir
}

// DatabasePath is the SQLite file under Dir.
func (c Config) DatabasePath() string {
	return filepath.Join(c.Dir(), DatabaseFileName)
}
