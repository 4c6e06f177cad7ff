package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

var _ types.SelectorTable = (*selectorTable)(nil)

// selectorTable implements SelectorTable over the selected_store table.
// The table holds zero rows (Unselected) or one row (Selected).
type selectorTable struct {
	backend *Backend
}

// List returns the selector rows ordered by id.
func (sel *selectorTable) List(ctx context.Context) ([]types.SelectedStore, error) {
	db, release, err := sel.backend.reader()
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := db.QueryContext(ctx, "SELECT id, store FROM selected_store ORDER BY id")
	if err != nil {
		return nil, queryError(types.EntitySelectedStore, "list", err)
	}
	defer rows.Close()

	selected := []types.SelectedStore{}
	for rows.Next() {
		var s types.SelectedStore
		if err := rows.Scan(&s.ID, &s.StoreID); err != nil {
			return nil, queryError(types.EntitySelectedStore, "list", err)
		}
		selected = append(selected, s)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(types.EntitySelectedStore, "list", err)
	}
	return selected, nil
}

// Select deletes every selector row and inserts one for storeID in a single
// transaction, so a failure leaves the previous selection in place.
func (sel *selectorTable) Select(ctx context.Context, storeID int64) (int64, error) {
	db, release, err := sel.backend.writer()
	if err != nil {
		return 0, err
	}
	defer release()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, queryError(types.EntitySelectedStore, "select", fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM selected_store"); err != nil {
		return 0, queryError(types.EntitySelectedStore, "select", fmt.Errorf("clearing selection: %w", err))
	}
	res, err := tx.ExecContext(ctx, "INSERT INTO selected_store (store) VALUES (?)", storeID)
	if err != nil {
		return 0, queryError(types.EntitySelectedStore, "select", fmt.Errorf("inserting selection: %w", err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, queryError(types.EntitySelectedStore, "select", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, queryError(types.EntitySelectedStore, "select", fmt.Errorf("committing selection: %w", err))
	}
	return id, nil
}

// Clear removes every selector row.
func (sel *selectorTable) Clear(ctx context.Context) error {
	db, release, err := sel.backend.writer()
	if err != nil {
		return err
	}
	defer release()

	if _, err := db.ExecContext(ctx, "DELETE FROM selected_store"); err != nil {
		return queryError(types.EntitySelectedStore, "clear", err)
	}
	return nil
}

// Delete removes one selector row by id.
func (sel *selectorTable) Delete(ctx context.Context, id int64) error {
	db, release, err := sel.backend.writer()
	if err != nil {
		return err
	}
	defer release()

	if _, err := db.ExecContext(ctx, "DELETE FROM selected_store WHERE id = ?", id); err != nil {
		return queryError(types.EntitySelectedStore, "delete", err)
	}
	return nil
}

// Current reports the selector state. If more than one row exists, which
// only happens in databases written by other tools, the newest row wins.
func (sel *selectorTable) Current(ctx context.Context) (types.Selection, error) {
	db, release, err := sel.backend.reader()
	if err != nil {
		return types.Unselected, err
	}
	defer release()

	var storeID int64
	err = db.QueryRowContext(ctx, "SELECT store FROM selected_store ORDER BY id DESC LIMIT 1").Scan(&storeID)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Unselected, nil
	}
	if err != nil {
		return types.Unselected, queryError(types.EntitySelectedStore, "current", err)
	}
	return types.SelectedAs(storeID), nil
}
