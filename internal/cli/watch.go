package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/tickwatch/internal/config"
	"github.com/rshade/tickwatch/internal/engine"
	"github.com/rshade/tickwatch/internal/finnhub"
	"github.com/rshade/tickwatch/internal/logging"
	"github.com/rshade/tickwatch/internal/tui"
)

// priceBufferSize bounds the stream-to-TUI channel; a full buffer drops
// the oldest style of update by skipping the send, and the next trade
// catches the display up.
const priceBufferSize = 64

// WatchParams holds the parameters for watch mode. Exported for testing.
type WatchParams struct {
	Interval int
}

// NewWatchCmd creates the watch command: a live-updating table fed by
// the Finnhub trade stream.
func NewWatchCmd() *cobra.Command {
	var params WatchParams

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show a live-updating table of prices",
		Long: `Fetches each ticker's static data once, then streams live trade prices
over the Finnhub websocket into a continuously repainting table. Watch
mode never reads or writes the cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeWatch(cmd, params)
		},
	}

	cmd.Flags().IntVar(&params.Interval, "interval", 0,
		"seconds between repaints (default from settings)")

	return cmd
}

// ResolveWatchInterval picks the repaint period: a positive flag value
// wins; zero means unset; a negative value warns and falls back to the
// settings value. Exported for testing.
func ResolveWatchInterval(flagValue int, settings *config.Settings, warn func(string)) time.Duration {
	if flagValue > 0 {
		return time.Duration(flagValue) * time.Second
	}
	if flagValue < 0 {
		warn("interval must be positive, using settings value")
	}
	return settings.WatchIntervalDuration()
}

func executeWatch(cmd *cobra.Command, params WatchParams) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logging.FromContext(ctx)
	settings := settingsFromContext(ctx)
	configDir := configDirFromContext(ctx)

	tickers := config.LoadTickers(ctx, config.TickersPath(configDir))
	if len(tickers) == 0 {
		return config.ErrNoTickers
	}

	apiKey := apiKeyFromEnv()
	if apiKey == "" {
		return ErrMissingAPIKey
	}

	interval := ResolveWatchInterval(params.Interval, settings, func(msg string) {
		cmd.PrintErrf("Warning: %s\n", msg)
	})

	client := finnhub.NewClient(apiKey).WithLogger(log)
	items := fetchWatchItems(ctx, client, tickers, settings)

	symbols := make([]string, 0, len(tickers))
	seen := map[string]bool{}
	for _, ticker := range tickers {
		if !seen[ticker.Symbol] {
			seen[ticker.Symbol] = true
			symbols = append(symbols, ticker.Symbol)
		}
	}

	updates := make(chan tui.PriceMsg, priceBufferSize)
	stream := finnhub.NewStream(apiKey, symbols, func(u finnhub.PriceUpdate) {
		select {
		case updates <- tui.PriceMsg{Symbol: u.Symbol, Price: u.Price}:
		default:
		}
	}).WithLogger(log)

	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(streamCtx)
	g.Go(func() error {
		return stream.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		model := tui.NewWatchModel(items, settings.Columns, interval, updates)
		program := tea.NewProgram(model, tea.WithContext(gctx), tea.WithOutput(cmd.OutOrStdout()))
		_, err := program.Run()
		return err
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// fetchWatchItems does the one-shot static fetch per ticker. A failed
// fetch yields an unavailable row rather than aborting the mode.
func fetchWatchItems(
	ctx context.Context,
	client *finnhub.Client,
	tickers []config.TickerSpec,
	settings *config.Settings,
) []tui.WatchItem {
	log := logging.FromContext(ctx)
	items := make([]tui.WatchItem, 0, len(tickers))

	for _, ticker := range tickers {
		snap, err := client.FetchStatic(ctx, engine.FetchRequest{
			Symbol:        ticker.Symbol,
			IncludeName:   ticker.Name == "",
			IncludeYTD:    settings.Columns.YTDChange,
			IncludeDecade: settings.Columns.TenYearChange,
		})
		if err != nil {
			log.Warn().Err(err).Str("symbol", ticker.Symbol).Msg("Static fetch failed")
			items = append(items, tui.WatchItem{Symbol: ticker.Symbol, Unavailable: true})
			continue
		}

		name := ticker.Name
		if name == "" {
			name = snap.Name
		}
		items = append(items, tui.WatchItem{
			Symbol:       ticker.Symbol,
			Name:         name,
			Price:        snap.InitialPrice,
			PrevClose:    snap.PrevClose,
			EPS:          snap.EPS,
			PERatio:      snap.PERatio,
			Dividend:     snap.Dividend,
			YTDPrice:     snap.YTDPrice,
			TenYearPrice: snap.TenYearPrice,
		})
	}
	return items
}
