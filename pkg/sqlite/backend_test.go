package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func TestNewBackendAttachesThroughInterface(t *testing.T) {
	inv := NewBackend()
	require.NoError(t, inv.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { inv.Detach() })

	ctx := context.Background()
	require.NoError(t, inv.Migrate(ctx))

	id, err := inv.Stores().Insert(ctx, types.Store{Name: "Downtown"})
	require.NoError(t, err)

	stores, err := inv.Stores().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.Store{{ID: id, Name: "Downtown"}}, stores)
}
