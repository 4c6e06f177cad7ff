package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// tableColumns lists the columns restored for each table, in load order.
// Fields outside these lists are ignored. A table with a check func skips
// records the check rejects before they reach the schema.
var tableColumns = []struct {
	table   string
	columns []string
	check   func(map[string]any) error
}{
	{tableStores, []string{"id", "name"}, nil},
	{tableSelectedStore, []string{"id", "store"}, nil},
	{tableUniforms, []string{"id", "type", "size"}, nil},
	{tableOperations, []string{"id", "store", "type", "concept", "uniform", "quantity", "date"}, checkOperation},
}

// checkOperation rejects operation records that List and Balances could not
// read back: a date outside YYYY-MM-DD or a non-integral quantity.
func checkOperation(rec map[string]any) error {
	date, ok := rec["date"].(string)
	if !ok {
		return fmt.Errorf("date %v is not a string", rec["date"])
	}
	if _, err := types.ParseDate(date); err != nil {
		return err
	}
	n, ok := rec["quantity"].(json.Number)
	if !ok {
		return fmt.Errorf("quantity %v is not a number", rec["quantity"])
	}
	if _, err := n.Int64(); err != nil {
		return fmt.Errorf("quantity %s is not an integer", n)
	}
	return nil
}

// ImportResult reports what ImportJSONL loaded.
type ImportResult struct {
	Tables  map[string]int `json:"tables"`
	Skipped int            `json:"skipped"`
}

// ImportJSONL replaces the contents of every table with the records in the
// <table>.jsonl files under dir, as written by ExportJSONL. Loading is
// transactional: on error the database is left as it was. Malformed lines
// and rows the schema rejects are skipped and counted. A missing file
// leaves its table empty.
func (b *Backend) ImportJSONL(ctx context.Context, dir string) (*ImportResult, error) {
	db, release, err := b.writer()
	if err != nil {
		return nil, err
	}
	defer release()

	result := &ImportResult{Tables: make(map[string]int, len(tableColumns))}
	loaded := make(map[string][]map[string]any, len(tableColumns))
	for _, tc := range tableColumns {
		records, skipped, err := readJSONL(filepath.Join(dir, tc.table+".jsonl"))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", tc.table, err)
		}
		loaded[tc.table] = records
		result.Skipped += skipped
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, queryError("database", "import", fmt.Errorf("beginning load transaction: %w", err))
	}
	defer tx.Rollback()

	for _, tc := range tableColumns {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+tc.table); err != nil {
			return nil, queryError(tc.table, "import", err)
		}
		n, skipped, err := insertRecords(ctx, tx, tc.table, tc.columns, tc.check, loaded[tc.table])
		if err != nil {
			return nil, queryError(tc.table, "import", err)
		}
		result.Tables[tc.table] = n
		result.Skipped += skipped
	}

	if err := tx.Commit(); err != nil {
		return nil, queryError("database", "import", fmt.Errorf("committing load transaction: %w", err))
	}

	if result.Skipped > 0 {
		slog.Warn("import skipped records", "dir", dir, "skipped", result.Skipped)
	}
	slog.Info("jsonl import loaded", "dir", dir, "tables", result.Tables)
	return result, nil
}

// insertRecords inserts records into table, taking only the listed columns.
// Rows that fail check or that the schema rejects are skipped; the count of
// each is returned.
func insertRecords(ctx context.Context, tx *sql.Tx, table string, columns []string, check func(map[string]any) error, records []map[string]any) (int, int, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders)

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return 0, 0, fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	var inserted, skipped int
	for _, rec := range records {
		if check != nil {
			if err := check(rec); err != nil {
				slog.Debug("skipping record", "table", table, "record", rec, "error", err)
				skipped++
				continue
			}
		}
		args := make([]any, len(columns))
		for i, col := range columns {
			args[i] = sqlValue(rec[col])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			slog.Debug("skipping record", "table", table, "record", rec, "error", err)
			skipped++
			continue
		}
		inserted++
	}
	return inserted, skipped, nil
}

// sqlValue converts a decoded JSON value to a driver argument. Integral
// numbers become int64 so INTEGER columns and ids round-trip exactly.
func sqlValue(v any) any {
	switch v := v.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		f, _ := v.Float64()
		return f
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		return string(b)
	default:
		return v
	}
}
