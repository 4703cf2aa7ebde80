package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/tickwatch/internal/logging"
)

// Default values applied by DefaultSettings and restored by Normalize.
const (
	DefaultCacheInterval = 60 // minutes
	DefaultWatchInterval = 5  // seconds
	DefaultLogLevel      = "info"
	DefaultLogFormat     = logging.FormatConsole
)

// Columns selects the optional display columns. The base columns
// (ticker, company name, price, daily change) are always shown.
type Columns struct {
	EPS           bool `yaml:"eps"`
	PERatio       bool `yaml:"pe_ratio"`
	Dividend      bool `yaml:"dividend"`
	YTDChange     bool `yaml:"ytd_change"`
	TenYearChange bool `yaml:"ten_year_change"`
}

// CacheSettings controls snapshot reuse. Interval is the freshness
// window in minutes.
type CacheSettings struct {
	Enabled  bool `yaml:"enabled"`
	Interval int  `yaml:"interval"`
}

// LoggingSettings mirrors the logging block of settings.yaml.
type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Settings is the parsed settings.yaml. Zero values are never used
// directly; obtain one via DefaultSettings or LoadSettings.
type Settings struct {
	Columns       Columns         `yaml:"columns"`
	Cache         CacheSettings   `yaml:"cache"`
	WatchInterval int             `yaml:"watch_interval"`
	Logging       LoggingSettings `yaml:"logging"`
}

// DefaultSettings returns the documented defaults: caching disabled with
// a 60 minute interval, 5 second watch repaint, info-level console logs,
// and no optional columns.
func DefaultSettings() *Settings {
	return &Settings{
		Cache: CacheSettings{
			Enabled:  false,
			Interval: DefaultCacheInterval,
		},
		WatchInterval: DefaultWatchInterval,
		Logging: LoggingSettings{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Normalize repairs out-of-range values in place and returns a note for
// each repair. It is the single validation step after unmarshalling;
// callers log the notes as warnings.
func (s *Settings) Normalize() []string {
	var notes []string
	if s.Cache.Interval <= 0 {
		notes = append(notes, fmt.Sprintf("cache.interval must be positive, using %d", DefaultCacheInterval))
		s.Cache.Interval = DefaultCacheInterval
	}
	if s.WatchInterval <= 0 {
		notes = append(notes, fmt.Sprintf("watch_interval must be positive, using %d", DefaultWatchInterval))
		s.WatchInterval = DefaultWatchInterval
	}
	if s.Logging.Level == "" {
		s.Logging.Level = DefaultLogLevel
	}
	switch s.Logging.Format {
	case logging.FormatConsole, logging.FormatJSON:
	case "":
		s.Logging.Format = DefaultLogFormat
	default:
		notes = append(notes, fmt.Sprintf("logging.format %q not recognized, using %s", s.Logging.Format, DefaultLogFormat))
		s.Logging.Format = DefaultLogFormat
	}
	return notes
}

// CacheInterval returns the freshness window as a duration.
func (s *Settings) CacheInterval() time.Duration {
	return time.Duration(s.Cache.Interval) * time.Minute
}

// WatchIntervalDuration returns the watch repaint period as a duration.
func (s *Settings) WatchIntervalDuration() time.Duration {
	return time.Duration(s.WatchInterval) * time.Second
}

// ToLoggingConfig bridges the settings logging block to the logger
// constructor.
func (s *Settings) ToLoggingConfig() logging.Config {
	return logging.Config{
		Level:  s.Logging.Level,
		Format: s.Logging.Format,
		File:   s.Logging.File,
	}
}

// LoadSettings reads and parses the settings file. A missing or
// unreadable file yields defaults silently at debug level; a malformed
// file yields defaults with a warning. LoadSettings never fails.
func LoadSettings(ctx context.Context, path string) *Settings {
	log := logging.FromContext(ctx)
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", path).Msg("Settings file not found, using defaults")
		} else {
			log.Warn().Err(err).Str("path", path).Msg("Failed to read settings file, using defaults")
		}
		return s
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to parse settings file, using defaults")
		return DefaultSettings()
	}

	for _, note := range s.Normalize() {
		log.Warn().Str("path", path).Msg(note)
	}
	return s
}

// Save writes the settings to path as YAML, creating parent directories
// as needed.
func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}
