package cli

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/tickwatch/internal/config"
	"github.com/rshade/tickwatch/internal/engine"
	"github.com/rshade/tickwatch/internal/engine/cache"
	"github.com/rshade/tickwatch/internal/finnhub"
	"github.com/rshade/tickwatch/internal/logging"
)

// daemonStagger is the fixed inter-ticker fetch delay within one cycle.
const daemonStagger = time.Second

// NewDaemonCmd creates the daemon command: a background refresh loop
// that keeps the cache warm and never renders.
func NewDaemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Refresh the cache periodically in the background",
		Long: `Runs an unattended refresh loop: one pass over the configured tickers
immediately, then one pass every cache interval. Per-ticker fetches are
staggered to respect the API rate limit. Daemon mode produces no display
output; its only effect is the persisted cache file.

Stop with SIGINT or SIGTERM; an in-flight pass finishes its cache write
before the process exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeDaemon(cmd)
		},
	}
}

func executeDaemon(cmd *cobra.Command) error {
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

	client := finnhub.NewClient(apiKey).WithLogger(log)
	store := cache.NewFileStore(config.CachePath(configDir)).
		WithLogger(logging.ComponentLogger(log, "cache"))
	orch := engine.New(client, store).
		WithStagger(daemonStagger).
		WithLogger(logging.ComponentLogger(log, "engine"))

	// The daemon writes to the cache regardless of the foreground
	// cache.enabled toggle; running it is an explicit opt-in.
	daemonSettings := *settings
	daemonSettings.Cache.Enabled = true

	return engine.RunDaemon(ctx, orch, tickers, &daemonSettings, logging.ComponentLogger(log, "daemon"))
}
