package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg := Load()

	assert.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.ListenAddr)
	assert.Equal(t, "sqlite", cfg.PersistBackend)
	assert.NotEmpty(t, cfg.DBPath)
	assert.Equal(t, "none", cfg.VisionBackend)
	assert.False(t, cfg.Unrestricted)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.Equal(t, 128, cfg.ImportCacheSize)
}

func TestLoadCustomValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("PERSIST_BACKEND", "file")
	t.Setenv("DATA_DIR", "/custom/data")
	t.Setenv("VISION_BACKEND", "claude")
	t.Setenv("CLAUDE_API_KEY", "sk-test123")
	t.Setenv("UNRESTRICTED", "true")
	t.Setenv("SWEEP_INTERVAL", "30s")
	t.Setenv("IMPORT_CACHE_SIZE", "16")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "file", cfg.PersistBackend)
	assert.Equal(t, "/custom/data", cfg.DataDir)
	assert.Equal(t, "claude", cfg.VisionBackend)
	assert.Equal(t, "sk-test123", cfg.ClaudeAPIKey)
	assert.True(t, cfg.Unrestricted)
	assert.Equal(t, 30*time.Second, cfg.SweepInterval)
	assert.Equal(t, 16, cfg.ImportCacheSize)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("UNRESTRICTED", "maybe")
	t.Setenv("SWEEP_INTERVAL", "soon")
	t.Setenv("IMPORT_CACHE_SIZE", "-3")

	cfg := Load()

	assert.False(t, cfg.Unrestricted)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.Equal(t, 128, cfg.ImportCacheSize)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\nLISTEN_ADDR=:7000\n"), 0600))
	t.Chdir(dir)
	t.Setenv("LISTEN_ADDR", ":9100")

	cfg := Load()

	assert.Equal(t, ":9100", cfg.ListenAddr, "environment wins over .env")
	assert.Equal(t, "debug", cfg.LogLevel)
	t.Cleanup(func() { _ = os.Unsetenv("LOG_LEVEL") })
}
