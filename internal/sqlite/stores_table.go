package sqlite

import (
	"context"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

var _ types.StoresTable = (*storesTable)(nil)

// storesTable implements StoresTable.
type storesTable struct {
	backend *Backend
}

// List returns every store ordered by id. Returns an empty slice when the
// table is empty.
func (st *storesTable) List(ctx context.Context) ([]types.Store, error) {
	db, release, err := st.backend.reader()
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := db.QueryContext(ctx, "SELECT id, name FROM stores ORDER BY id")
	if err != nil {
		return nil, queryError(types.EntityStore, "list", err)
	}
	defer rows.Close()

	stores := []types.Store{}
	for rows.Next() {
		var s types.Store
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, queryError(types.EntityStore, "list", err)
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(types.EntityStore, "list", err)
	}
	return stores, nil
}

// Insert appends a store and returns its id. The name is stored as given.
func (st *storesTable) Insert(ctx context.Context, s types.Store) (int64, error) {
	db, release, err := st.backend.writer()
	if err != nil {
		return 0, err
	}
	defer release()

	res, err := db.ExecContext(ctx, "INSERT INTO stores (name) VALUES (?)", s.Name)
	if err != nil {
		return 0, queryError(types.EntityStore, "insert", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, queryError(types.EntityStore, "insert", err)
	}
	return id, nil
}

// Delete removes the store with id. Operations and selector rows that
// reference it are left untouched.
func (st *storesTable) Delete(ctx context.Context, id int64) error {
	db, release, err := st.backend.writer()
	if err != nil {
		return err
	}
	defer release()

	if _, err := db.ExecContext(ctx, "DELETE FROM stores WHERE id = ?", id); err != nil {
		return queryError(types.EntityStore, "delete", err)
	}
	return nil
}
