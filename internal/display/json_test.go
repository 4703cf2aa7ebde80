package display

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tickwatch/internal/engine"
	"github.com/rshade/tickwatch/internal/engine/cache"
)

func jsonRecords() []engine.Record {
	entry := cache.NewEntry("AAPL", time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC), cache.Metrics{
		Price:       ptr(150.25),
		DailyChange: ptr(1.2),
	})
	return []engine.Record{
		{Symbol: "AAPL", DisplayName: "Apple Inc", Entry: entry, Status: engine.StatusFetched},
		{Symbol: "BAD", DisplayName: "BAD", Status: engine.StatusError, Err: errors.New("quote failed")},
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, RenderJSON(&buf, jsonRecords()))

	var payloads []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payloads))
	require.Len(t, payloads, 2)

	assert.Equal(t, "AAPL", payloads[0]["symbol"])
	assert.Equal(t, "Apple Inc", payloads[0]["name"])
	assert.Equal(t, "fetched", payloads[0]["status"])
	assert.InDelta(t, 150.25, payloads[0]["price"], 0.001)
	assert.NotContains(t, payloads[0], "error")
	assert.NotContains(t, payloads[0], "eps", "absent optional metrics are omitted")

	assert.Equal(t, "BAD", payloads[1]["symbol"])
	assert.Equal(t, "error", payloads[1]["status"])
	assert.Equal(t, "quote failed", payloads[1]["error"])
	assert.Nil(t, payloads[1]["price"], "an error record carries null metrics")
	assert.NotContains(t, payloads[1], "fetched_at")
}

func TestRenderNDJSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, RenderNDJSON(&buf, jsonRecords()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2, "one object per line")

	for _, line := range lines {
		var payload map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &payload), "each line parses standalone")
	}

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "AAPL", first["symbol"])
}

func TestRenderJSONEmpty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, RenderJSON(&buf, nil))

	var payloads []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payloads))
	assert.Empty(t, payloads)
}
