package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/tickwatch/internal/config"
	"github.com/rshade/tickwatch/internal/logging"
	"github.com/rshade/tickwatch/internal/scheduler"
)

// RefreshJob runs one unattended refresh pass: fetch what is stale or
// missing, fall back where fetches fail, persist the merged snapshot.
// It never renders; the persisted cache file is its only output.
type RefreshJob struct {
	ctx      context.Context
	orch     *Orchestrator
	tickers  []config.TickerSpec
	settings *config.Settings
	log      zerolog.Logger
}

// NewRefreshJob creates the daemon's per-cycle job. ctx bounds every
// cycle's fetches; cancelling it makes in-progress fetches fail fast.
func NewRefreshJob(
	ctx context.Context,
	orch *Orchestrator,
	tickers []config.TickerSpec,
	settings *config.Settings,
	log zerolog.Logger,
) *RefreshJob {
	return &RefreshJob{
		ctx:      ctx,
		orch:     orch,
		tickers:  tickers,
		settings: settings,
		log:      log,
	}
}

// Name implements scheduler.Job.
func (j *RefreshJob) Name() string { return "cache-refresh" }

// Run implements scheduler.Job. Each cycle gets a ULID id so interleaved
// daemon logs stay attributable. Fetch failures are absorbed per ticker
// inside Resolve; a snapshot save failure is returned for the scheduler
// to log, never to stop the loop.
func (j *RefreshJob) Run() error {
	cycleID := logging.NewTraceID()
	log := j.log.With().Str("cycle_id", cycleID).Logger()
	start := time.Now()

	records, warnings, err := j.orch.Run(j.ctx, j.tickers, j.settings, false, start)

	counts := map[Status]int{}
	for _, r := range records {
		counts[r.Status]++
	}
	log.Info().
		Int("tickers", len(j.tickers)).
		Int("fetched", counts[StatusFetched]).
		Int("cached", counts[StatusCached]).
		Int("stale", counts[StatusStale]).
		Int("errors", counts[StatusError]).
		Int("warnings", len(warnings)).
		Dur("duration_ms", time.Since(start)).
		Msg("Refresh cycle complete")

	return err
}

// RunDaemon drives the refresh loop: an immediate first pass, then one
// pass every cache interval until ctx is cancelled. Stopping waits for
// an in-flight pass to finish so its cache writes complete. Run-level
// errors are logged and never terminate the loop; only an empty ticker
// list refuses to start.
func RunDaemon(
	ctx context.Context,
	orch *Orchestrator,
	tickers []config.TickerSpec,
	settings *config.Settings,
	log zerolog.Logger,
) error {
	if len(tickers) == 0 {
		return config.ErrNoTickers
	}

	job := NewRefreshJob(ctx, orch, tickers, settings, log)

	log.Info().
		Int("tickers", len(tickers)).
		Int("interval_minutes", settings.Cache.Interval).
		Msg("Starting daemon")

	// First pass runs immediately; the scheduler handles the rest.
	if err := job.Run(); err != nil {
		log.Error().Err(err).Msg("Initial refresh cycle failed")
	}

	sched := scheduler.New(log)
	spec := fmt.Sprintf("@every %dm", settings.Cache.Interval)
	if err := sched.AddJob(spec, job); err != nil {
		return fmt.Errorf("failed to schedule refresh job: %w", err)
	}
	sched.Start()

	<-ctx.Done()

	log.Info().Msg("Shutdown signal received, draining")
	sched.Stop()
	return nil
}
