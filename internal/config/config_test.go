package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Bind)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, 2, cfg.Workers)
	assert.False(t, cfg.Debug)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("BIND", "127.0.0.1")
	t.Setenv("WORKERS", "4")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "127.0.0.1", cfg.Bind)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Debug)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=8080\n"), 0644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadRealEnvWinsOverEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=8080\n"), 0644))
	chdir(t, dir)
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoadInvalidPort(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "70000")

	_, err := Load()
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadInvalidWorkers(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("WORKERS", "0")

	_, err := Load()
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestAddr(t *testing.T) {
	cfg := Config{Bind: "0.0.0.0", Port: 8000}
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}
