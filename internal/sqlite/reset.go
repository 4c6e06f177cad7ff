package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// sidecarSuffixes are the files SQLite may keep next to the database.
var sidecarSuffixes = []string{"", "-journal", "-wal", "-shm"}

// Reset deletes the database file and starts over with an empty schema.
// The backend stays attached. Reset succeeds when the file is already gone.
func (b *Backend) Reset(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}

	b.closeLocked()
	for _, suffix := range sidecarSuffixes {
		path := b.dbPath + suffix
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return types.NewUnavailableError("reset", fmt.Errorf("remove %s: %w", path, err))
		}
	}

	if err := b.openLocked(ctx); err != nil {
		return err
	}
	slog.Info("database reset", "path", b.dbPath)
	return nil
}
