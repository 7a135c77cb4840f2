// File: internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "blockgraph", cfg.Logger.ServiceName)
	assert.Equal(t, 100, cfg.Logger.MaxSize)
	assert.True(t, cfg.Logger.Compress)

	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, 50, cfg.History.MaxSnapshots)
	assert.True(t, cfg.Plan.IncludeRefresh)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	// Point the search away from any real config file.
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 50, cfg.History.MaxSnapshots)
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
logger:
  level: debug
  format: json
database:
  url: postgres://localhost/blockgraph
history:
  max_snapshots: 5
plan:
  include_refresh: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "postgres://localhost/blockgraph", cfg.Database.URL)
	assert.Equal(t, 5, cfg.History.MaxSnapshots)
	assert.False(t, cfg.Plan.IncludeRefresh)

	// Unspecified keys keep their defaults.
	assert.Equal(t, "blockgraph", cfg.Logger.ServiceName)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BLOCKGRAPH_LOGGER_LEVEL", "warn")
	t.Setenv("BLOCKGRAPH_HISTORY_MAX_SNAPSHOTS", "7")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Equal(t, 7, cfg.History.MaxSnapshots)
}
