// Package sqlite implements the SQLite storage backend for the stockroom
// inventory. A single database file under Config.DataDir holds the stores,
// selected_store, uniforms, and operations tables.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Compile-time interface check.
var _ types.Inventory = (*Backend)(nil)

const pragmaBusyTimeout = `PRAGMA busy_timeout=5000`

// errNotOpen reports an attached backend whose handle was lost when Migrate
// or Reset failed to reopen the file. Migrate retries the open.
var errNotOpen = errors.New("database not open")

// Backend implements the Inventory interface on an embedded SQLite file.
// Reads share the lock; writes, Migrate, Reset, and Detach hold it
// exclusively. The pool is capped at one connection.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	dbPath   string
	db       *sql.DB
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, opens the database file, and ensures
// the schema. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(config.Dir(), 0o755); err != nil {
		return types.NewUnavailableError("create data dir", err)
	}

	b.config = config
	b.dbPath = config.DatabasePath()

	if err := b.openLocked(context.Background()); err != nil {
		return err
	}

	b.attached = true
	slog.Debug("inventory attached", "path", b.dbPath)
	return nil
}

// Detach releases all resources held by the backend. After Detach, all
// operations return ErrDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	b.attached = false
	if b.db != nil {
		err := b.db.Close()
		b.db = nil
		if err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}
	return nil
}

// Migrate ensures every table exists. It is safe to call on every view
// focus. If the database file was removed since Attach, or an earlier
// reopen failed, Migrate reopens it so the schema is recreated.
func (b *Backend) Migrate(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}

	if b.db == nil {
		return b.openLocked(ctx)
	}
	if _, err := os.Stat(b.dbPath); errors.Is(err, os.ErrNotExist) {
		slog.Info("database file missing, recreating", "path", b.dbPath)
		b.closeLocked()
		return b.openLocked(ctx)
	}

	if err := ensureSchema(ctx, b.db); err != nil {
		return types.NewUnavailableError("migrate", err)
	}
	return nil
}

// Path returns the database file path. Empty before the first Attach.
func (b *Backend) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dbPath
}

// Stores returns the stores table accessor.
func (b *Backend) Stores() types.StoresTable {
	return &storesTable{backend: b}
}

// Uniforms returns the uniforms table accessor.
func (b *Backend) Uniforms() types.UniformsTable {
	return &uniformsTable{backend: b}
}

// Operations returns the operations table accessor.
func (b *Backend) Operations() types.OperationsTable {
	return &operationsTable{backend: b}
}

// Selector returns the active-store selector accessor.
func (b *Backend) Selector() types.SelectorTable {
	return &selectorTable{backend: b}
}

// openLocked opens b.dbPath and ensures the schema. The caller must hold
// b.mu for writing.
func (b *Backend) openLocked(ctx context.Context) error {
	db, err := sql.Open("sqlite", b.dbPath)
	if err != nil {
		return types.NewUnavailableError("open", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, pragmaBusyTimeout); err != nil {
		db.Close()
		return types.NewUnavailableError("configure", err)
	}

	if err := ensureSchema(ctx, db); err != nil {
		db.Close()
		return types.NewUnavailableError("migrate", err)
	}

	b.db = db
	return nil
}

// closeLocked closes the open handle, if any. Close errors are logged; the
// handle is discarded either way.
func (b *Backend) closeLocked() {
	if b.db == nil {
		return
	}
	if err := b.db.Close(); err != nil {
		slog.Warn("close database", "path", b.dbPath, "error", err)
	}
	b.db = nil
}

// reader acquires the read lock and returns the open database. The caller
// must call the returned release function. A detached backend reports
// ErrDetached; an attached one without a handle reports
// ErrStorageUnavailable.
func (b *Backend) reader() (*sql.DB, func(), error) {
	b.mu.RLock()
	if !b.attached {
		b.mu.RUnlock()
		return nil, nil, types.ErrDetached
	}
	if b.db == nil {
		b.mu.RUnlock()
		return nil, nil, types.NewUnavailableError("read", errNotOpen)
	}
	return b.db, b.mu.RUnlock, nil
}

// writer acquires the write lock and returns the open database. The caller
// must call the returned release function.
func (b *Backend) writer() (*sql.DB, func(), error) {
	b.mu.Lock()
	if !b.attached {
		b.mu.Unlock()
		return nil, nil, types.ErrDetached
	}
	if b.db == nil {
		b.mu.Unlock()
		return nil, nil, types.NewUnavailableError("write", errNotOpen)
	}
	return b.db, b.mu.Unlock, nil
}

// queryError logs a failed statement with its entity and operation and
// returns it classified as ErrQueryFailure.
func queryError(entity, op string, err error) error {
	slog.Error("storage query failed", "entity", entity, "op", op, "error", err)
	return types.NewQueryError(entity, op, err)
}
