package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithPathConsole(t *testing.T) {
	result := NewLoggerWithPath(Config{Level: "debug", Format: FormatConsole})

	assert.False(t, result.UsingFile)
	assert.False(t, result.FallbackUsed)
	assert.Equal(t, zerolog.DebugLevel, result.Logger.GetLevel())
	assert.NoError(t, result.Close(), "Close is safe without a file")
}

func TestNewLoggerWithPathFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickwatch.log")

	result := NewLoggerWithPath(Config{Level: "info", Format: FormatJSON, File: path})
	result.Logger.Info().Str("k", "v").Msg("hello")
	require.NoError(t, result.Close())

	assert.True(t, result.UsingFile)
	assert.Equal(t, path, result.FilePath)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var event map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &event))
	assert.Equal(t, "hello", event["message"])
	assert.Equal(t, "v", event["k"])
}

func TestNewLoggerWithPathFallsBackToStderr(t *testing.T) {
	// A directory path cannot be opened as a file.
	result := NewLoggerWithPath(Config{Level: "info", Format: FormatJSON, File: t.TempDir()})

	assert.False(t, result.UsingFile)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)
	assert.NoError(t, result.Close())
}

func TestNewLoggerInvalidLevelFallsBackToInfo(t *testing.T) {
	log := NewLogger(Config{Level: "shouting", Format: FormatJSON})

	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	log := ComponentLogger(base, "engine")
	log.Info().Msg("pass complete")

	var event map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &event))
	assert.Equal(t, "engine", event["component"])
}

func TestFromContext(t *testing.T) {
	t.Run("attached logger round-trips", func(t *testing.T) {
		var buf bytes.Buffer
		log := zerolog.New(&buf)
		ctx := log.WithContext(context.Background())

		fromCtx := FromContext(ctx)
		fromCtx.Info().Msg("from ctx")

		assert.Contains(t, buf.String(), "from ctx")
	})

	t.Run("bare context is safe to log through", func(t *testing.T) {
		log := FromContext(context.Background())

		// Must not panic.
		log.Info().Msg("nowhere")
	})
}

func TestTraceID(t *testing.T) {
	id := NewTraceID()
	assert.Len(t, id, 26, "ULIDs are 26 characters")
	assert.NotEqual(t, id, NewTraceID())

	ctx := ContextWithTraceID(context.Background(), id)
	assert.Equal(t, id, TraceIDFromContext(ctx))
	assert.Equal(t, id, GetOrGenerateTraceID(ctx), "an existing id is reused")

	assert.Empty(t, TraceIDFromContext(context.Background()))
	assert.NotEmpty(t, GetOrGenerateTraceID(context.Background()))
}

func TestPrintMessages(t *testing.T) {
	var buf bytes.Buffer

	PrintLogPathMessage(&buf, "/var/log/tickwatch.log")
	assert.Contains(t, buf.String(), "/var/log/tickwatch.log")

	buf.Reset()
	PrintFallbackWarning(&buf, "permission denied")
	assert.Contains(t, buf.String(), "permission denied")
}
