package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfigDirPrecedence(t *testing.T) {
	t.Run("flag wins over env", func(t *testing.T) {
		t.Setenv(EnvHome, "/from/env")

		dir, err := ResolveConfigDir("/from/flag")

		require.NoError(t, err)
		assert.Equal(t, "/from/flag", dir)
	})

	t.Run("env wins over home", func(t *testing.T) {
		t.Setenv(EnvHome, "/from/env")

		dir, err := ResolveConfigDir("")

		require.NoError(t, err)
		assert.Equal(t, "/from/env", dir)
	})

	t.Run("falls back to home dotdir", func(t *testing.T) {
		t.Setenv(EnvHome, "")
		t.Setenv("HOME", "/home/trader")

		dir, err := ResolveConfigDir("")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/home/trader", ".tickwatch"), dir)
	})
}

func TestConfigPaths(t *testing.T) {
	dir := "/etc/tickwatch"

	assert.Equal(t, filepath.Join(dir, "settings.yaml"), SettingsPath(dir))
	assert.Equal(t, filepath.Join(dir, "tickers.yaml"), TickersPath(dir))
	assert.Equal(t, filepath.Join(dir, "cache.json"), CachePath(dir))
}

func TestEnsureConfigDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, EnsureConfigDir(dir))
	assert.DirExists(t, dir)

	// Idempotent on an existing directory.
	assert.NoError(t, EnsureConfigDir(dir))
}
