package types

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
		wantMsg string
	}{
		{
			name:    "empty backend",
			config:  Config{DataDir: "/var/lib/stockroom"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend names the value",
			config:  Config{Backend: "postgres", DataDir: "/var/lib/stockroom"},
			wantErr: ErrBackendUnknown,
			wantMsg: `unknown backend "postgres" (supported: sqlite)`,
		},
		{
			name:    "backend names are case sensitive",
			config:  Config{Backend: "SQLite"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:   "sqlite",
			config: Config{Backend: BackendSQLite, DataDir: "/var/lib/stockroom"},
		},
		{
			name:   "sqlite without a data dir",
			config: Config{Backend: BackendSQLite},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.EqualError(t, err, tt.wantMsg)
			}
		})
	}
}

func TestConfigDatabasePath(t *testing.T) {
	assert.Equal(t, filepath.Join("/var/lib/stockroom", "inventory.db"),
		Config{Backend: BackendSQLite, DataDir: "/var/lib/stockroom"}.DatabasePath())
	assert.Equal(t, ".", Config{}.Dir())
	assert.Equal(t, filepath.Join(".", "inventory.db"), Config{}.DatabasePath())
}
