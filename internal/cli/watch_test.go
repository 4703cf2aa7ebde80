package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/tickwatch/internal/config"
)

func TestResolveWatchInterval(t *testing.T) {
	settings := config.DefaultSettings()
	settings.WatchInterval = 7

	t.Run("positive flag wins", func(t *testing.T) {
		var warned bool

		got := ResolveWatchInterval(3, settings, func(string) { warned = true })

		assert.Equal(t, 3*time.Second, got)
		assert.False(t, warned)
	})

	t.Run("zero means unset", func(t *testing.T) {
		var warned bool

		got := ResolveWatchInterval(0, settings, func(string) { warned = true })

		assert.Equal(t, 7*time.Second, got)
		assert.False(t, warned, "zero is the flag default, not a user mistake")
	})

	t.Run("negative warns and falls back", func(t *testing.T) {
		var warning string

		got := ResolveWatchInterval(-1, settings, func(msg string) { warning = msg })

		assert.Equal(t, 7*time.Second, got)
		assert.Contains(t, warning, "positive")
	})
}

func TestExecuteWatchNoTickers(t *testing.T) {
	cmd, _, _ := newTestCommand(t, t.TempDir(), nil)

	err := executeWatch(cmd, WatchParams{})

	assert.ErrorIs(t, err, config.ErrNoTickers)
}
