package finnhub

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// tradeServer accepts one websocket session, collects subscriptions,
// then replays the given messages.
func tradeServer(t *testing.T, messages []TradeMessage, subs chan<- subscribeMessage) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "done")

		ctx := r.Context()
		for range cap(subs) {
			var sub subscribeMessage
			if err := wsjson.Read(ctx, conn, &sub); err != nil {
				return
			}
			subs <- sub
		}

		for _, msg := range messages {
			if err := wsjson.Write(ctx, conn, msg); err != nil {
				return
			}
		}
		// Hold the connection open until the client goes away.
		_, _, _ = conn.Read(ctx)
	}))
	t.Cleanup(server.Close)
	return server
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestStreamSubscribesAndDeliversTrades(t *testing.T) {
	messages := []TradeMessage{
		{Type: "ping"},
		{Type: "trade", Data: []Trade{
			{Symbol: "AAPL", Price: 150.5},
			{Symbol: "MSFT", Price: 400.25},
		}},
		{Type: "trade", Data: []Trade{{Symbol: "AAPL", Price: 151}}},
	}
	subs := make(chan subscribeMessage, 2)
	server := tradeServer(t, messages, subs)

	updates := make(chan PriceUpdate, 8)
	stream := NewStream("test-token", []string{"AAPL", "MSFT"}, func(u PriceUpdate) {
		updates <- u
	}).WithURL(wsURL(server))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- stream.Run(ctx) }()

	var received []PriceUpdate
	for i := 0; i < 3; i++ {
		select {
		case u := <-updates:
			received = append(received, u)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for price updates")
		}
	}

	assert.Equal(t, PriceUpdate{Symbol: "AAPL", Price: 150.5}, received[0])
	assert.Equal(t, PriceUpdate{Symbol: "MSFT", Price: 400.25}, received[1])
	assert.Equal(t, PriceUpdate{Symbol: "AAPL", Price: 151}, received[2])

	// Both symbols were subscribed before any trade arrived.
	close(subs)
	var symbols []string
	for sub := range subs {
		assert.Equal(t, "subscribe", sub.Type)
		symbols = append(symbols, sub.Symbol)
	}
	assert.ElementsMatch(t, []string{"AAPL", "MSFT"}, symbols)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err, "cancellation is a clean stop")
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not stop after cancellation")
	}
}

func TestStreamRunReturnsNilWhenCancelledBeforeConnect(t *testing.T) {
	stream := NewStream("test-token", []string{"AAPL"}, func(PriceUpdate) {}).
		WithURL("ws://127.0.0.1:1") // nothing listening
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := stream.Run(ctx)

	assert.NoError(t, err)
}

func TestTradeMessageDecoding(t *testing.T) {
	raw := `{"type":"trade","data":[{"s":"AAPL","p":150.25,"t":1700000000000,"v":100}]}`

	var msg TradeMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &msg))

	assert.Equal(t, "trade", msg.Type)
	require.Len(t, msg.Data, 1)
	assert.Equal(t, "AAPL", msg.Data[0].Symbol)
	assert.InDelta(t, 150.25, msg.Data[0].Price, 0.001)
	assert.EqualValues(t, 1700000000000, msg.Data[0].Timestamp)
}
