// Package sqlite provides the public API for the SQLite inventory backend.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"github.com/mesh-intelligence/stockroom/internal/sqlite"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	inv := sqlite.NewBackend()
//	err := inv.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".stockroom-db",
//	})
//	defer inv.Detach()
func NewBackend() types.Inventory {
	return sqlite.NewBackend()
}
