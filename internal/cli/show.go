package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/tickwatch/internal/config"
	"github.com/rshade/tickwatch/internal/display"
	"github.com/rshade/tickwatch/internal/engine"
	"github.com/rshade/tickwatch/internal/engine/cache"
	"github.com/rshade/tickwatch/internal/finnhub"
	"github.com/rshade/tickwatch/internal/logging"
)

// Output format names.
const (
	outputFormatTable  = "table"
	outputFormatJSON   = "json"
	outputFormatNDJSON = "ndjson"
)

// ErrMissingAPIKey is returned when no Finnhub API key is configured.
var ErrMissingAPIKey = errors.New("FINNHUB_API_KEY environment variable is not set")

// ShowParams holds the parameters for the default show run.
// Exported for testing.
type ShowParams struct {
	Refresh bool
	Output  string
}

// ValidateOutputFormat checks the --output flag value.
// Exported for testing.
func ValidateOutputFormat(format string) error {
	switch format {
	case outputFormatTable, outputFormatJSON, outputFormatNDJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (expected table, json, or ndjson)", format)
	}
}

// executeShow runs the normal mode: one orchestration pass, then render.
// With --refresh the freshness check is bypassed but the cache is still
// written. A cache persist failure degrades to a warning; only a missing
// API key or an empty ticker list fail the run.
func executeShow(cmd *cobra.Command, params ShowParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	start := time.Now()

	if err := ValidateOutputFormat(params.Output); err != nil {
		return err
	}

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
	orch := engine.New(client, store).WithLogger(logging.ComponentLogger(log, "engine"))

	records, warnings, err := orch.Run(ctx, tickers, settings, params.Refresh, time.Now())
	if err != nil {
		// Rendering still proceeds; an unwritable cache costs the next
		// run a refetch, not this run its output.
		log.Warn().Err(err).Msg("Cache persist failed")
		cmd.PrintErrf("Warning: %v\n", err)
	}

	if renderErr := renderRecords(cmd, params.Output, records, settings); renderErr != nil {
		return renderErr
	}

	for _, warning := range warnings {
		cmd.PrintErrf("Warning: %s\n", warning)
	}

	log.Debug().
		Int("tickers", len(tickers)).
		Int("warnings", len(warnings)).
		Dur("duration_ms", time.Since(start)).
		Msg("show complete")

	return nil
}

func renderRecords(cmd *cobra.Command, format string, records []engine.Record, settings *config.Settings) error {
	out := cmd.OutOrStdout()
	switch format {
	case outputFormatJSON:
		return display.RenderJSON(out, records)
	case outputFormatNDJSON:
		return display.RenderNDJSON(out, records)
	default:
		return display.RenderTable(out, records, settings)
	}
}
