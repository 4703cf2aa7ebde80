// Package config loads the tickwatch configuration: the ordered ticker
// list and the settings file. Both loads fail soft — a missing or
// malformed file produces documented defaults with a logged warning, never
// a failed run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvHome overrides the configuration directory (like HOME-relative
// dotdirs, but relocatable for tests and containers).
const EnvHome = "TICKWATCH_HOME"

// Config file names inside the configuration directory.
const (
	SettingsFileName = "settings.yaml"
	TickersFileName  = "tickers.yaml"
	CacheFileName    = "cache.json"
)

// dirPerm is the permission mode for the configuration directory.
const dirPerm = 0o700

// ResolveConfigDir determines the configuration directory. Precedence:
// the --config-dir flag value, then TICKWATCH_HOME, then ~/.tickwatch.
func ResolveConfigDir(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(EnvHome); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".tickwatch"), nil
}

// EnsureConfigDir creates dir (and parents) if needed.
func EnsureConfigDir(dir string) error {
	return os.MkdirAll(dir, dirPerm)
}

// SettingsPath returns the settings file path under dir.
func SettingsPath(dir string) string {
	return filepath.Join(dir, SettingsFileName)
}

// TickersPath returns the ticker list path under dir.
func TickersPath(dir string) string {
	return filepath.Join(dir, TickersFileName)
}

// CachePath returns the cache snapshot path under dir.
func CachePath(dir string) string {
	return filepath.Join(dir, CacheFileName)
}
