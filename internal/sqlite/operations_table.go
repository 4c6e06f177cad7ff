package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

var _ types.OperationsTable = (*operationsTable)(nil)

// operationsTable implements OperationsTable. Reads join each operation with
// its store and uniform; rows whose references no longer resolve are
// skipped and reported through Orphans.
type operationsTable struct {
	backend *Backend
}

const selectOperationRecords = `SELECT
    o.id, o.type, o.concept, o.quantity, o.date,
    o.store, s.name,
    o.uniform, u.type, u.size,
    s.id IS NULL, u.id IS NULL
FROM operations o
LEFT JOIN stores s ON s.id = o.store
LEFT JOIN uniforms u ON u.id = o.uniform`

const orderOperationRecords = ` ORDER BY o.date DESC, o.id DESC`

// List returns every operation, newest date first.
func (ot *operationsTable) List(ctx context.Context) ([]types.OperationRecord, error) {
	return ot.fetch(ctx, "list", selectOperationRecords+orderOperationRecords)
}

// ListByStore returns the operations recorded against storeID, newest date
// first.
func (ot *operationsTable) ListByStore(ctx context.Context, storeID int64) ([]types.OperationRecord, error) {
	return ot.fetch(ctx, "list by store",
		selectOperationRecords+" WHERE o.store = ?"+orderOperationRecords, storeID)
}

func (ot *operationsTable) fetch(ctx context.Context, op, query string, args ...any) ([]types.OperationRecord, error) {
	db, release, err := ot.backend.reader()
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryError(types.EntityOperation, op, err)
	}
	defer rows.Close()

	records := []types.OperationRecord{}
	for rows.Next() {
		rec, orphan, err := scanOperationRecord(rows)
		if err != nil {
			return nil, queryError(types.EntityOperation, op, err)
		}
		if orphan != nil {
			slog.Warn("skipping operation with dangling reference",
				"operation_id", orphan.ID,
				"missing", orphan.Missing(),
				"error", types.ErrReferentialGap,
			)
			continue
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(types.EntityOperation, op, err)
	}
	return records, nil
}

// scanOperationRecord hydrates one joined row. When the store or uniform is
// missing it returns the orphan description instead of a record.
func scanOperationRecord(rows *sql.Rows) (*types.OperationRecord, *types.OrphanedOperation, error) {
	var (
		rec                       types.OperationRecord
		typ                       int
		date                      string
		storeID, uniformID        int64
		storeName                 sql.NullString
		uniformType, uniformSize  sql.NullString
		missingStore, missingUnif bool
	)
	if err := rows.Scan(
		&rec.ID, &typ, &rec.Concept, &rec.Quantity, &date,
		&storeID, &storeName,
		&uniformID, &uniformType, &uniformSize,
		&missingStore, &missingUnif,
	); err != nil {
		return nil, nil, fmt.Errorf("scanning operation: %w", err)
	}

	if missingStore || missingUnif {
		return nil, &types.OrphanedOperation{
			ID:             rec.ID,
			StoreID:        storeID,
			UniformID:      uniformID,
			MissingStore:   missingStore,
			MissingUniform: missingUnif,
		}, nil
	}

	d, err := types.ParseDate(date)
	if err != nil {
		return nil, nil, fmt.Errorf("operation %d: %w", rec.ID, err)
	}
	rec.Type = types.OperationType(typ)
	rec.Date = d
	rec.Store = &types.Store{ID: storeID, Name: storeName.String}
	rec.Uniform = &types.Uniform{ID: uniformID, Type: uniformType.String, Size: uniformSize.String}
	return &rec, nil, nil
}

// Insert appends an operation and returns its id. The store and uniform
// ids are trusted; they are not checked against their tables.
func (ot *operationsTable) Insert(ctx context.Context, op types.Operation) (int64, error) {
	db, release, err := ot.backend.writer()
	if err != nil {
		return 0, err
	}
	defer release()

	res, err := db.ExecContext(ctx,
		"INSERT INTO operations (store, type, concept, uniform, quantity, date) VALUES (?, ?, ?, ?, ?, ?)",
		op.StoreID, int(op.Type), op.Concept, op.UniformID, op.Quantity, op.Date.String(),
	)
	if err != nil {
		return 0, queryError(types.EntityOperation, "insert", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, queryError(types.EntityOperation, "insert", err)
	}
	return id, nil
}

// Delete removes the operation with id.
func (ot *operationsTable) Delete(ctx context.Context, id int64) error {
	db, release, err := ot.backend.writer()
	if err != nil {
		return err
	}
	defer release()

	if _, err := db.ExecContext(ctx, "DELETE FROM operations WHERE id = ?", id); err != nil {
		return queryError(types.EntityOperation, "delete", err)
	}
	return nil
}

// Orphans returns every operation whose store or uniform is gone, ordered
// by id.
func (ot *operationsTable) Orphans(ctx context.Context) ([]types.OrphanedOperation, error) {
	db, release, err := ot.backend.reader()
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := db.QueryContext(ctx, `SELECT o.id, o.store, o.uniform, s.id IS NULL, u.id IS NULL
FROM operations o
LEFT JOIN stores s ON s.id = o.store
LEFT JOIN uniforms u ON u.id = o.uniform
WHERE s.id IS NULL OR u.id IS NULL
ORDER BY o.id`)
	if err != nil {
		return nil, queryError(types.EntityOperation, "orphans", err)
	}
	defer rows.Close()

	orphans := []types.OrphanedOperation{}
	for rows.Next() {
		var o types.OrphanedOperation
		if err := rows.Scan(&o.ID, &o.StoreID, &o.UniformID, &o.MissingStore, &o.MissingUniform); err != nil {
			return nil, queryError(types.EntityOperation, "orphans", err)
		}
		orphans = append(orphans, o)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(types.EntityOperation, "orphans", err)
	}
	return orphans, nil
}

// Balances sums entries minus exits per uniform for storeID. Uniforms with
// no operations at the store are omitted; so are deleted uniforms.
func (ot *operationsTable) Balances(ctx context.Context, storeID int64) ([]types.Balance, error) {
	db, release, err := ot.backend.reader()
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := db.QueryContext(ctx, `SELECT u.id, u.type, u.size,
    SUM(CASE WHEN o.type = 1 THEN o.quantity ELSE -o.quantity END)
FROM operations o
JOIN uniforms u ON u.id = o.uniform
WHERE o.store = ?
GROUP BY u.id, u.type, u.size
ORDER BY u.id`, storeID)
	if err != nil {
		return nil, queryError(types.EntityOperation, "balances", err)
	}
	defer rows.Close()

	balances := []types.Balance{}
	for rows.Next() {
		var b types.Balance
		if err := rows.Scan(&b.Uniform.ID, &b.Uniform.Type, &b.Uniform.Size, &b.Quantity); err != nil {
			return nil, queryError(types.EntityOperation, "balances", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(types.EntityOperation, "balances", err)
	}
	return balances, nil
}
