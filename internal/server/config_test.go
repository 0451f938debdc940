package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", cfg.ListenAddress())
	require.Len(t, cfg.Games, 1)
	assert.Equal(t, 2, cfg.Games[0].Players)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "server.hcl")
	content := `
server {
  address   = "0.0.0.0"
  port      = 9000
  log_level = "debug"
}

game "friday" {
  players = 4
  seed    = 42
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.ListenAddress())
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	require.Len(t, cfg.Games, 1)
	assert.Equal(t, "friday", cfg.Games[0].Name)
	assert.Equal(t, 4, cfg.Games[0].Players)
	assert.Equal(t, int64(42), cfg.Games[0].Seed)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigAppliesGameDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "server.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`game "main" {}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Games[0].Players)
	assert.Equal(t, "localhost", cfg.Server.Address)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Games[0].Players = 7
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Games = nil
	assert.Error(t, cfg.Validate())
}
