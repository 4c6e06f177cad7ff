package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/stockroom/internal/sqlite"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// parseID parses a positive integer id argument.
func parseID(what, arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, userError("invalid %s id %q", what, arg)
	}
	return id, nil
}

// requireText returns s trimmed, or a user error naming field if it is empty.
func requireText(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", userError("%s must not be empty", field)
	}
	return s, nil
}

// findStore returns the store with id, or a user error if none exists.
func findStore(ctx context.Context, inv *sqlite.Backend, id int64) (types.Store, error) {
	stores, err := inv.Stores().List(ctx)
	if err != nil {
		return types.Store{}, err
	}
	for _, s := range stores {
		if s.ID == id {
			return s, nil
		}
	}
	return types.Store{}, userError("store %d not found", id)
}

// findUniform returns the uniform with id, or a user error if none exists.
func findUniform(ctx context.Context, inv *sqlite.Backend, id int64) (types.Uniform, error) {
	uniforms, err := inv.Uniforms().List(ctx)
	if err != nil {
		return types.Uniform{}, err
	}
	for _, u := range uniforms {
		if u.ID == id {
			return u, nil
		}
	}
	return types.Uniform{}, userError("uniform %d not found", id)
}

// targetStore resolves the store a command acts on: the --store flag when
// set, otherwise the selected store.
func targetStore(ctx context.Context, inv *sqlite.Backend, flag int64) (types.Store, error) {
	if flag != 0 {
		return findStore(ctx, inv, flag)
	}
	sel, err := inv.Selector().Current(ctx)
	if err != nil {
		return types.Store{}, err
	}
	if !sel.Selected {
		return types.Store{}, userError("%w: run 'stockroom store select <id>' or pass --store", types.ErrNoStoreSelected)
	}
	store, err := findStore(ctx, inv, sel.StoreID)
	if err != nil && exitCode(err) == exitUserError {
		return types.Store{}, userError("selected store %d no longer exists: run 'stockroom store select <id>'", sel.StoreID)
	}
	return store, err
}
