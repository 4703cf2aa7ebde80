package finnhub

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	defaultStreamURL = "wss://ws.finnhub.io"
	reconnectDelay   = 5 * time.Second
)

// PriceUpdate is the latest trade price for a symbol.
type PriceUpdate struct {
	Symbol string
	Price  float64
}

// subscribeMessage is the per-symbol subscription request.
type subscribeMessage struct {
	Type   string `json:"type"`
	Symbol string `json:"symbol"`
}

// Stream maintains a websocket connection to Finnhub's trade feed,
// delivering the latest price per symbol through a callback. It
// reconnects after errors and stops when its context is cancelled.
type Stream struct {
	url      string
	token    string
	symbols  []string
	onUpdate func(PriceUpdate)
	log      zerolog.Logger
}

// NewStream creates a trade stream for the given symbols. onUpdate is
// called from the stream's goroutine for every received trade.
func NewStream(token string, symbols []string, onUpdate func(PriceUpdate)) *Stream {
	return &Stream{
		url:      defaultStreamURL,
		token:    token,
		symbols:  symbols,
		onUpdate: onUpdate,
		log:      zerolog.Nop(),
	}
}

// WithURL points the stream at a different websocket endpoint, for tests.
func (s *Stream) WithURL(url string) *Stream {
	s.url = url
	return s
}

// WithLogger sets the logger and returns the stream for chaining.
func (s *Stream) WithLogger(log zerolog.Logger) *Stream {
	s.log = log.With().Str("component", "stream").Logger()
	return s
}

// Run connects, subscribes, and reads trades until ctx is cancelled.
// Connection errors trigger a reconnect after a fixed delay; Run only
// returns on cancellation, and returns nil then.
func (s *Stream) Run(ctx context.Context) error {
	for {
		if err := s.connectAndRead(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.log.Warn().Err(err).Dur("retry_in", reconnectDelay).Msg("Stream disconnected, reconnecting")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(reconnectDelay):
		}
	}
}

// connectAndRead holds one websocket session: dial, subscribe every
// symbol, then decode trade messages until the connection drops.
func (s *Stream) connectAndRead(ctx context.Context) error {
	conn, _, err := websocket.Dial(ctx, s.url+"?token="+s.token, nil)
	if err != nil {
		return err
	}
	defer conn.Close(websocket.StatusNormalClosure, "done")

	for _, symbol := range s.symbols {
		if err := wsjson.Write(ctx, conn, subscribeMessage{Type: "subscribe", Symbol: symbol}); err != nil {
			return err
		}
	}
	s.log.Info().Int("symbols", len(s.symbols)).Msg("Subscribed to trade stream")

	for {
		var msg TradeMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			return err
		}
		if msg.Type != "trade" {
			continue
		}
		for _, trade := range msg.Data {
			s.onUpdate(PriceUpdate{Symbol: trade.Symbol, Price: trade.Price})
		}
	}
}
