package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tickwatch/internal/logging"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.False(t, s.Cache.Enabled, "caching is opt-in")
	assert.Equal(t, DefaultCacheInterval, s.Cache.Interval)
	assert.Equal(t, DefaultWatchInterval, s.WatchInterval)
	assert.Equal(t, DefaultLogLevel, s.Logging.Level)
	assert.Equal(t, logging.FormatConsole, s.Logging.Format)
	assert.False(t, s.Columns.EPS)
	assert.False(t, s.Columns.YTDChange)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Settings)
		check     func(*testing.T, *Settings)
		wantNotes int
	}{
		{
			name:   "defaults pass untouched",
			mutate: func(*Settings) {},
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, DefaultCacheInterval, s.Cache.Interval)
			},
		},
		{
			name:   "zero cache interval repaired",
			mutate: func(s *Settings) { s.Cache.Interval = 0 },
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, DefaultCacheInterval, s.Cache.Interval)
			},
			wantNotes: 1,
		},
		{
			name:   "negative watch interval repaired",
			mutate: func(s *Settings) { s.WatchInterval = -3 },
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, DefaultWatchInterval, s.WatchInterval)
			},
			wantNotes: 1,
		},
		{
			name:   "unknown log format repaired",
			mutate: func(s *Settings) { s.Logging.Format = "xml" },
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, DefaultLogFormat, s.Logging.Format)
			},
			wantNotes: 1,
		},
		{
			name:   "json log format accepted",
			mutate: func(s *Settings) { s.Logging.Format = logging.FormatJSON },
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, logging.FormatJSON, s.Logging.Format)
			},
		},
		{
			name: "multiple repairs noted independently",
			mutate: func(s *Settings) {
				s.Cache.Interval = -1
				s.WatchInterval = 0
			},
			check:     func(*testing.T, *Settings) {},
			wantNotes: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)
			notes := s.Normalize()
			assert.Len(t, notes, tt.wantNotes)
			tt.check(t, s)
		})
	}
}

func TestIntervalDurations(t *testing.T) {
	s := DefaultSettings()
	s.Cache.Interval = 90
	s.WatchInterval = 10

	assert.Equal(t, 90*time.Minute, s.CacheInterval())
	assert.Equal(t, 10*time.Second, s.WatchIntervalDuration())
}

func TestLoadSettingsMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)

	s := LoadSettings(context.Background(), path)

	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettingsMalformedFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("columns: [broken"), 0o600))

	s := LoadSettings(context.Background(), path)

	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettingsParsesAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	content := `
columns:
  eps: true
  ytd_change: true
cache:
  enabled: true
  interval: -5
watch_interval: 2
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s := LoadSettings(context.Background(), path)

	assert.True(t, s.Columns.EPS)
	assert.True(t, s.Columns.YTDChange)
	assert.False(t, s.Columns.PERatio)
	assert.True(t, s.Cache.Enabled)
	assert.Equal(t, DefaultCacheInterval, s.Cache.Interval, "invalid interval repaired on load")
	assert.Equal(t, 2, s.WatchInterval)
	assert.Equal(t, "debug", s.Logging.Level)
	assert.Equal(t, logging.FormatJSON, s.Logging.Format)
}

func TestSettingsSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", SettingsFileName)
	s := DefaultSettings()
	s.Cache.Enabled = true
	s.Columns.Dividend = true

	require.NoError(t, s.Save(path))
	loaded := LoadSettings(context.Background(), path)

	assert.Equal(t, s, loaded)
}
