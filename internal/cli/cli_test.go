package cli

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/stockroom/internal/paths"
	"github.com/mesh-intelligence/stockroom/pkg/stockroom"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// testEnv is an isolated config and data directory pair.
type testEnv struct {
	configDir string
	dataDir   string
}

type result struct {
	code   int
	stdout string
	stderr string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	for _, name := range []string{paths.EnvConfigDir, paths.EnvDataDir, "STOCKROOM_BACKEND", "STOCKROOM_LOG_LEVEL"} {
		t.Setenv(name, "")
	}
	orig := slog.Default()
	t.Cleanup(func() { slog.SetDefault(orig) })

	root := t.TempDir()
	return &testEnv{
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
	}
}

// run executes the CLI against the environment's directories.
func (e *testEnv) run(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	args = append(args, "--config-dir", e.configDir, "--data-dir", e.dataDir)
	code := Run(args, &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// mustRun executes the CLI and fails the test on a non-zero exit.
func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	res := e.run(t, args...)
	require.Equal(t, exitSuccess, res.code, "stockroom %s\nstderr: %s", strings.Join(args, " "), res.stderr)
	return res.stdout
}

// seed creates two stores, two uniforms, and three operations at the first
// store, which is selected.
func (e *testEnv) seed(t *testing.T) {
	t.Helper()
	e.mustRun(t, "store", "add", "Warehouse A")
	e.mustRun(t, "store", "add", "Warehouse B")
	e.mustRun(t, "store", "select", "1")
	e.mustRun(t, "uniform", "add", "Shirt", "M")
	e.mustRun(t, "uniform", "add", "Trousers", "42")
	e.mustRun(t, "operation", "add", "--type", "entry", "--concept", "restock", "--uniform", "1", "--quantity", "10", "--date", "2024-01-01")
	e.mustRun(t, "operation", "add", "--type", "exit", "--concept", "issued to staff", "--uniform", "1", "--quantity", "3", "--date", "2024-03-01")
	e.mustRun(t, "operation", "add", "--type", "entry", "--concept", "restock", "--uniform", "2", "--quantity", "4", "--date", "2024-02-01")
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRender_Golden(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	g := newGoldie(t)

	tests := []struct {
		golden string
		args   []string
	}{
		{"store_list", []string{"store", "list"}},
		{"uniform_list", []string{"uniform", "list"}},
		{"operation_list", []string{"operation", "list"}},
		{"stock", []string{"stock"}},
	}
	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			g.Assert(t, tt.golden, []byte(env.mustRun(t, tt.args...)))
		})
	}
}

func TestOrphans_Golden(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	env.mustRun(t, "uniform", "delete", "2")

	g := newGoldie(t)
	g.Assert(t, "orphans", []byte(env.mustRun(t, "operation", "orphans")))

	res := env.run(t, "operation", "list")
	require.Equal(t, exitSuccess, res.code)
	assert.Contains(t, res.stdout, "Total: 2 operation(s)")
	assert.NotContains(t, res.stdout, "Trousers")
	assert.Contains(t, res.stderr, "skipping operation with dangling reference")

	stock := env.mustRun(t, "stock")
	assert.NotContains(t, stock, "Trousers")

	env.mustRun(t, "operation", "delete", "3")
	assert.Equal(t, "No orphaned operations.\n", env.mustRun(t, "operation", "orphans"))
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "version")
	assert.Equal(t, "stockroom v"+stockroom.Version+"\nmodule: "+stockroom.ModulePath+"\n", out)
}

func TestInit(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "init")
	assert.Contains(t, out, "Stockroom initialized successfully")
	assert.FileExists(t, filepath.Join(env.dataDir, types.DatabaseFileName))

	data, err := os.ReadFile(filepath.Join(env.configDir, configFileExt))
	require.NoError(t, err)
	var cfg configFile
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, types.BackendSQLite, cfg.Backend)
	assert.Equal(t, env.dataDir, cfg.DataDir, "init records --data-dir")

	t.Run("recorded data dir is used without the flag", func(t *testing.T) {
		env.mustRun(t, "store", "add", "Warehouse A")
		var stdout, stderr bytes.Buffer
		code := Run([]string{"store", "list", "--json", "--config-dir", env.configDir}, &stdout, &stderr)
		require.Equal(t, exitSuccess, code, stderr.String())
		var stores []types.Store
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &stores))
		assert.Equal(t, []types.Store{{ID: 1, Name: "Warehouse A"}}, stores)
	})

	t.Run("idempotent", func(t *testing.T) {
		env.mustRun(t, "init")
		env.mustRun(t, "init")
	})
}

func TestStoreSelectionLifecycle(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, "No stores found.\n", env.mustRun(t, "store", "list"))
	assert.Equal(t, "Added store 1 (Warehouse A)\n", env.mustRun(t, "store", "add", "Warehouse A"))
	assert.Equal(t, "Active store: 1 (Warehouse A)\n", env.mustRun(t, "store", "select", "1"))
	assert.Equal(t, "Active store: 1 (Warehouse A)\n", env.mustRun(t, "store", "current"))
	assert.Equal(t, "No store selected\n", env.mustRun(t, "store", "clear"))
	assert.Equal(t, "No store selected\n", env.mustRun(t, "store", "current"))

	t.Run("deleted selected store", func(t *testing.T) {
		env.mustRun(t, "store", "select", "1")
		assert.Equal(t, "Deleted store 1\n", env.mustRun(t, "store", "delete", "1"))
		assert.Equal(t, "Active store: 1 (missing)\n", env.mustRun(t, "store", "current"))

		res := env.run(t, "operation", "list")
		assert.Equal(t, exitUserError, res.code)
		assert.Contains(t, res.stderr, "selected store 1 no longer exists")
	})
}

func TestJSONOutput(t *testing.T) {
	env := newTestEnv(t)

	var store types.Store
	require.NoError(t, json.Unmarshal([]byte(env.mustRun(t, "store", "add", "Downtown", "--json")), &store))
	assert.Equal(t, types.Store{ID: 1, Name: "Downtown"}, store)

	var sel types.Selection
	require.NoError(t, json.Unmarshal([]byte(env.mustRun(t, "store", "select", "1", "--json")), &sel))
	assert.Equal(t, types.SelectedAs(1), sel)

	env.mustRun(t, "uniform", "add", "Jacket", "L")
	var op types.Operation
	out := env.mustRun(t, "operation", "add", "--type", "entry", "--concept", "initial",
		"--uniform", "1", "--quantity", "5", "--date", "2024-03-01", "--json")
	require.NoError(t, json.Unmarshal([]byte(out), &op))
	assert.Equal(t, int64(1), op.ID)
	assert.Equal(t, int64(1), op.StoreID)
	assert.Equal(t, types.OperationEntry, op.Type)
	assert.Equal(t, "2024-03-01", op.Date.String())

	var records []types.OperationRecord
	require.NoError(t, json.Unmarshal([]byte(env.mustRun(t, "operation", "list", "--all", "--json")), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Downtown", records[0].Store.Name)
	assert.Equal(t, "Jacket", records[0].Uniform.Type)
}

func TestOperationAdd_Defaults(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "store", "add", "Warehouse A")
	env.mustRun(t, "store", "add", "Warehouse B")
	env.mustRun(t, "uniform", "add", "Shirt", "M")

	out := env.mustRun(t, "operation", "add", "--type", "exit", "--concept", "issued",
		"--uniform", "1", "--quantity", "2", "--store", "2")
	assert.Equal(t, "Recorded operation 1: exit of 2 Shirt M at Warehouse B on "+types.Today().String()+"\n", out)

	assert.Equal(t, "No operations found.\n", env.mustRun(t, "operation", "list", "--store", "1"))
	assert.Contains(t, env.mustRun(t, "operation", "list", "--store", "2"), "Total: 1 operation(s)")
	assert.Contains(t, env.mustRun(t, "stock", "--store", "2"), "1   Shirt  M     -2")
}

func TestExitCodes(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "store", "add", "Warehouse A")
	env.mustRun(t, "uniform", "add", "Shirt", "M")

	tests := []struct {
		name    string
		args    []string
		code    int
		wantErr string
	}{
		{"unknown command", []string{"shelve"}, exitUserError, "unknown command"},
		{"missing argument", []string{"store", "add"}, exitUserError, "accepts 1 arg"},
		{"blank store name", []string{"store", "add", "  "}, exitUserError, "store name must not be empty"},
		{"non-numeric id", []string{"store", "select", "abc"}, exitUserError, `invalid store id "abc"`},
		{"unknown store", []string{"store", "select", "99"}, exitUserError, "store 99 not found"},
		{"no selection", []string{"operation", "add", "--type", "entry", "--concept", "c", "--uniform", "1", "--quantity", "1"}, exitUserError, "no store selected"},
		{"bad type", []string{"operation", "add", "--type", "return", "--concept", "c", "--uniform", "1", "--quantity", "1", "--store", "1"}, exitUserError, "invalid operation type"},
		{"bad date", []string{"operation", "add", "--type", "entry", "--concept", "c", "--uniform", "1", "--quantity", "1", "--store", "1", "--date", "03/01/2024"}, exitUserError, "03/01/2024"},
		{"zero quantity", []string{"operation", "add", "--type", "entry", "--concept", "c", "--uniform", "1", "--quantity", "0", "--store", "1"}, exitUserError, "quantity must be a positive number"},
		{"unknown uniform", []string{"operation", "add", "--type", "entry", "--concept", "c", "--uniform", "7", "--quantity", "1", "--store", "1"}, exitUserError, "uniform 7 not found"},
		{"missing required flag", []string{"operation", "add", "--type", "entry"}, exitUserError, "required flag"},
		{"stock without selection", []string{"stock"}, exitUserError, "no store selected"},
		{"reset without confirmation", []string{"reset"}, exitUserError, "pass --yes"},
		{"bad log level", []string{"store", "list", "--log-level", "loud"}, exitUserError, "unknown log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := env.run(t, tt.args...)
			assert.Equal(t, tt.code, res.code)
			assert.Contains(t, res.stderr, tt.wantErr)
		})
	}
}

func TestExitCodes_System(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(env.dataDir), 0o755))
	require.NoError(t, os.WriteFile(env.dataDir, []byte("not a directory"), 0o644))

	res := env.run(t, "store", "list")
	assert.Equal(t, exitSysError, res.code)
	assert.Contains(t, res.stderr, "storage unavailable")
}

func TestConfig_EnvOverridesBackend(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("STOCKROOM_BACKEND", "postgres")

	res := env.run(t, "store", "list")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "unknown backend")
}

func TestConfig_LogLevel(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("STOCKROOM_LOG_LEVEL", "debug")

	res := env.run(t, "store", "list")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stderr, "config loaded")

	res = env.run(t, "store", "list", "--log-level", "warn")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.NotContains(t, res.stderr, "config loaded", "flag wins over env")
}

func TestConfig_DefaultFileWritten(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "version")

	data, err := os.ReadFile(filepath.Join(env.configDir, configFileExt))
	require.NoError(t, err)
	assert.Equal(t, defaultConfigYAML, string(data))
}

func TestExportAndReset(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	out := t.TempDir()

	dbCopy := filepath.Join(out, "copy.db")
	assert.Equal(t, "Exported database to "+dbCopy+"\n", env.mustRun(t, "export", "db", dbCopy))
	assert.FileExists(t, dbCopy)

	res := env.run(t, "export", "db", dbCopy)
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "already exists")

	jsonlDir := filepath.Join(out, "jsonl")
	stdout := env.mustRun(t, "export", "jsonl", jsonlDir)
	assert.Contains(t, stdout, "Exported 8 row(s) from 4 table(s)")
	assert.FileExists(t, filepath.Join(jsonlDir, "operations.jsonl"))
	assert.FileExists(t, filepath.Join(jsonlDir, "manifest.json"))

	assert.Equal(t, "Inventory reset\n", env.mustRun(t, "reset", "--yes"))
	assert.Equal(t, "No stores found.\n", env.mustRun(t, "store", "list"))
	assert.Equal(t, "No store selected\n", env.mustRun(t, "store", "current"))

	res = env.run(t, "import", "jsonl", jsonlDir)
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "pass --yes")

	assert.Equal(t, "Imported 8 row(s) from "+jsonlDir+", skipped 0\n", env.mustRun(t, "import", "jsonl", jsonlDir, "--yes"))
	g := newGoldie(t)
	g.Assert(t, "store_list", []byte(env.mustRun(t, "store", "list")))
	g.Assert(t, "operation_list", []byte(env.mustRun(t, "operation", "list")))
}

func TestMigrateRecreatesDeletedDatabase(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "store", "add", "Warehouse A")
	require.NoError(t, os.Remove(filepath.Join(env.dataDir, types.DatabaseFileName)))

	assert.Equal(t, "No stores found.\n", env.mustRun(t, "store", "list"))
}
