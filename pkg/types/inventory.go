package types

import "context"

// Entity names used in errors and logs.
const (
	EntityStore         = "store"
	EntitySelectedStore = "selected_store"
	EntityUniform       = "uniform"
	EntityOperation     = "operation"
)

// Inventory is the backend-agnostic entry point to the data-access layer.
// Callers attach to a backend, run Migrate on each view focus, use the
// table accessors, and detach when done.
type Inventory interface {
	// Attach opens the backend described by config and ensures the schema.
	// Returns ErrAlreadyAttached if called while attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	Detach() error

	// Migrate idempotently ensures every table exists. It reopens the
	// database file if it was deleted since Attach.
	Migrate(ctx context.Context) error

	Stores() StoresTable
	Uniforms() UniformsTable
	Operations() OperationsTable
	Selector() SelectorTable
}

// StoresTable reads and writes stores.
type StoresTable interface {
	// List returns every store in insertion order. Never nil.
	List(ctx context.Context) ([]Store, error)

	// Insert appends a store and returns its id.
	Insert(ctx context.Context, s Store) (int64, error)

	// Delete removes the store with id. A missing id is not an error.
	// Operations referencing the store are left in place.
	Delete(ctx context.Context, id int64) error
}

// UniformsTable reads and writes uniforms.
type UniformsTable interface {
	List(ctx context.Context) ([]Uniform, error)
	Insert(ctx context.Context, u Uniform) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// OperationsTable reads and writes stock operations.
type OperationsTable interface {
	// List returns every operation joined with its store and uniform,
	// newest date first. Operations with dangling references are skipped.
	List(ctx context.Context) ([]OperationRecord, error)

	// ListByStore is List restricted to one store.
	ListByStore(ctx context.Context, storeID int64) ([]OperationRecord, error)

	// Insert appends an operation and returns its id.
	Insert(ctx context.Context, op Operation) (int64, error)

	// Delete removes the operation with id. A missing id is not an error.
	Delete(ctx context.Context, id int64) error

	// Orphans returns operations whose store or uniform no longer exists.
	Orphans(ctx context.Context) ([]OrphanedOperation, error)

	// Balances returns the stock level of each uniform at storeID.
	Balances(ctx context.Context, storeID int64) ([]Balance, error)
}

// SelectorTable manages the single-row active-store selector.
type SelectorTable interface {
	// List returns the selector rows; zero or one in normal operation.
	List(ctx context.Context) ([]SelectedStore, error)

	// Select atomically replaces any selection with storeID and returns the
	// id of the new selector row.
	Select(ctx context.Context, storeID int64) (int64, error)

	// Clear removes every selector row.
	Clear(ctx context.Context) error

	// Delete removes one selector row by id. A missing id is not an error.
	Delete(ctx context.Context, id int64) error

	// Current reports the selector state.
	Current(ctx context.Context) (Selection, error)
}
