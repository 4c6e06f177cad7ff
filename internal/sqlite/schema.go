package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// Table names.
const (
	tableStores        = "stores"
	tableSelectedStore = "selected_store"
	tableUniforms      = "uniforms"
	tableOperations    = "operations"
)

// tableNames lists every table in creation order.
var tableNames = []string{
	tableStores,
	tableSelectedStore,
	tableUniforms,
	tableOperations,
}

// Schema DDL. Every statement is idempotent. References between tables are
// kept by convention only; there are no FOREIGN KEY clauses, so deleting a
// store or uniform never cascades. AUTOINCREMENT keeps a deleted id from
// being reassigned to a new row. Operations carry CHECKs on quantity and
// date so rows the read path cannot decode are rejected on write.
const (
	createStores = `CREATE TABLE IF NOT EXISTS stores (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL
);`

	createSelectedStore = `CREATE TABLE IF NOT EXISTS selected_store (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    store INTEGER NOT NULL
);`

	createUniforms = `CREATE TABLE IF NOT EXISTS uniforms (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    type TEXT NOT NULL,
    size TEXT NOT NULL
);`

	createOperations = `CREATE TABLE IF NOT EXISTS operations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    store INTEGER NOT NULL,
    type INTEGER NOT NULL CHECK (type IN (0, 1)),
    concept TEXT NOT NULL,
    uniform INTEGER NOT NULL,
    quantity INTEGER NOT NULL CHECK (typeof(quantity) = 'integer'),
    date TEXT NOT NULL CHECK (date GLOB '[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]')
);`
)

// Index DDL for the operations read paths.
const (
	idxOperationsDate  = `CREATE INDEX IF NOT EXISTS idx_operations_date ON operations(date);`
	idxOperationsStore = `CREATE INDEX IF NOT EXISTS idx_operations_store ON operations(store);`
)

// schemaDDL lists all CREATE TABLE statements in creation order.
var schemaDDL = []string{
	createStores,
	createSelectedStore,
	createUniforms,
	createOperations,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxOperationsDate,
	idxOperationsStore,
}

// ensureSchema runs every DDL statement in one transaction.
func ensureSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schemaDDL {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	for _, stmt := range indexDDL {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}
