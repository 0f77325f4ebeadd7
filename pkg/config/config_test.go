package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Run from an empty directory so no stray stockroute.yaml is picked up.
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, StoreCSV, cfg.Store)
	assert.Equal(t, "warehouse_stock.csv", cfg.StockFile)
	assert.Equal(t, "warehouse_connections.csv", cfg.ConnectionFile)
	assert.Equal(t, "updated_warehouse_stock.csv", cfg.OutputFile)
	assert.Equal(t, "stockroute.db", cfg.DBPath)
	assert.False(t, cfg.Verbose)
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"store: sqlite\ndb_path: /var/lib/stockroute/snap.db\nverbose: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "/var/lib/stockroute/snap.db", cfg.DBPath)
	assert.True(t, cfg.Verbose)
	// Unset keys keep their defaults.
	assert.Equal(t, "warehouse_stock.csv", cfg.StockFile)
}

func TestLoad_WorkingDirFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stockroute.yaml"),
		[]byte("stock_file: here.csv\n"), 0o644))
	chdir(t, dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "here.csv", cfg.StockFile)
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STOCKROUTE_STORE", "sqlite")
	t.Setenv("STOCKROUTE_STOCK_FILE", "env.csv")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "env.csv", cfg.StockFile)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	badStore := filepath.Join(dir, "bad-store.yaml")
	require.NoError(t, os.WriteFile(badStore, []byte("store: postgres\n"), 0o644))
	_, err := Load(badStore)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid store backend")

	badYAML := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(badYAML, []byte("store: [unterminated\n"), 0o644))
	_, err = Load(badYAML)
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
