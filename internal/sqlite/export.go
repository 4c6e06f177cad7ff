package sqlite

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ErrExportExists is returned by ExportDB when the destination file exists.
var ErrExportExists = errors.New("export destination already exists")

// manifestFileName is written last by ExportJSONL.
const manifestFileName = "manifest.json"

// Manifest describes one JSONL export.
type Manifest struct {
	ExportID  string            `json:"export_id"`
	CreatedAt time.Time         `json:"created_at"`
	Source    string            `json:"source"`
	Tables    map[string]int    `json:"tables"`
	Files     map[string]string `json:"files"`
}

// ExportDB writes a consistent copy of the database to dest using
// VACUUM INTO. dest must not exist.
func (b *Backend) ExportDB(ctx context.Context, dest string) error {
	db, release, err := b.reader()
	if err != nil {
		return err
	}
	defer release()

	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("%w: %s", ErrExportExists, dest)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	if _, err := db.ExecContext(ctx, "VACUUM INTO ?", dest); err != nil {
		return queryError("database", "export", err)
	}
	slog.Info("database exported", "dest", dest)
	return nil
}

// ExportJSONL writes one <table>.jsonl file per table into dir, followed by
// manifest.json. Existing files in dir are replaced.
func (b *Backend) ExportJSONL(ctx context.Context, dir string) (*Manifest, error) {
	db, release, err := b.reader()
	if err != nil {
		return nil, err
	}
	defer release()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating export id: %w", err)
	}
	manifest := &Manifest{
		ExportID:  id.String(),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Source:    b.dbPath,
		Tables:    make(map[string]int, len(tableNames)),
		Files:     make(map[string]string, len(tableNames)),
	}

	for _, name := range tableNames {
		records, err := dumpTable(ctx, db, name)
		if err != nil {
			return nil, queryError(name, "export", err)
		}
		fileName := name + ".jsonl"
		if err := writeJSONL(filepath.Join(dir, fileName), records); err != nil {
			return nil, fmt.Errorf("writing %s: %w", fileName, err)
		}
		manifest.Tables[name] = len(records)
		manifest.Files[name] = fileName
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling manifest: %w", err)
	}
	err = writeAtomic(filepath.Join(dir, manifestFileName), func(w *bufio.Writer) error {
		if _, err := w.Write(data); err != nil {
			return err
		}
		return w.WriteByte('\n')
	})
	if err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}

	slog.Info("jsonl export written", "dir", dir, "export_id", manifest.ExportID)
	return manifest, nil
}
