// Package engine implements the per-ticker refresh orchestration: it
// decides, ticker by ticker, whether to reuse cached metrics or fetch
// fresh ones, and merges the results back into the cache snapshot.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/tickwatch/internal/config"
	"github.com/rshade/tickwatch/internal/engine/cache"
)

// Status classifies how a record's data was obtained.
type Status string

const (
	// StatusFetched means the metrics came from a fresh fetch this pass.
	StatusFetched Status = "fetched"

	// StatusCached means a fresh cache entry was reused without a fetch.
	StatusCached Status = "cached"

	// StatusStale means the fetch failed and a stale cache entry was
	// used as fallback.
	StatusStale Status = "stale"

	// StatusError means the fetch failed and no cached data exists.
	StatusError Status = "error"
)

// Record is the finalized per-ticker result handed to the render layer.
// An error record carries a nil Entry.
type Record struct {
	Symbol      string
	DisplayName string
	Entry       *cache.Entry
	Status      Status
	Err         error
}

// FetchRequest tells the fetcher which optional fields a ticker needs.
// IncludeName is false when the user supplied a display name, so the
// profile endpoint is never queried for that symbol.
type FetchRequest struct {
	Symbol        string
	IncludeName   bool
	IncludeYTD    bool
	IncludeDecade bool
}

// Fetcher is the field-fetcher boundary. A fetch is all-or-nothing per
// ticker: an error result carries no partial fields.
type Fetcher interface {
	Fetch(ctx context.Context, req FetchRequest) (*cache.Metrics, error)
}

// Store is the persistence boundary the orchestrator writes through.
type Store interface {
	Load() cache.Snapshot
	Save(cache.Snapshot) error
}

// Orchestrator runs one refresh pass over a ticker list.
type Orchestrator struct {
	fetcher Fetcher
	store   Store
	stagger time.Duration
	log     zerolog.Logger
}

// New creates an orchestrator over the given fetcher and store.
func New(fetcher Fetcher, store Store) *Orchestrator {
	return &Orchestrator{
		fetcher: fetcher,
		store:   store,
		log:     zerolog.Nop(),
	}
}

// WithStagger sets a fixed delay before every network fetch after the
// first, to spread load against the remote rate limit. Reused cache
// entries incur no delay. Returns the orchestrator for chaining.
func (o *Orchestrator) WithStagger(d time.Duration) *Orchestrator {
	o.stagger = d
	return o
}

// WithLogger sets the logger and returns the orchestrator for chaining.
func (o *Orchestrator) WithLogger(log zerolog.Logger) *Orchestrator {
	o.log = log
	return o
}

// Resolve processes tickers in order against the loaded snapshot and
// returns one record per ticker, the merged snapshot to persist, and
// any stale-fallback warnings. It never touches the store; Run does.
//
// Per ticker: with caching disabled it always fetches. With caching
// enabled it reuses a fresh entry unless force is set, fetches on
// miss, staleness, or force, and on fetch failure falls back to the
// existing entry with a warning when one exists. One ticker's failure
// never aborts the pass, so every invocation returns len(tickers)
// records.
//
// Duplicate symbols are independent rows sharing one cache entry: a
// fetch earlier in the pass is visible to later rows, so an unforced
// duplicate reuses it instead of refetching.
func (o *Orchestrator) Resolve(
	ctx context.Context,
	tickers []config.TickerSpec,
	cached cache.Snapshot,
	settings *config.Settings,
	force bool,
	now time.Time,
) ([]Record, cache.Snapshot, []string) {
	records := make([]Record, 0, len(tickers))
	updates := cache.Snapshot{}
	var warnings []string

	cacheEnabled := settings.Cache.Enabled
	interval := settings.CacheInterval()
	fetched := 0

	for _, ticker := range tickers {
		var existing *cache.Entry
		if cacheEnabled {
			// This pass's own fetches win over the loaded snapshot so
			// duplicate symbols do not refetch.
			if entry, ok := updates[ticker.Symbol]; ok {
				existing = entry
			} else if entry, ok := cached[ticker.Symbol]; ok {
				existing = entry
			}
		}

		if cacheEnabled && !force && cache.IsFresh(existing, interval, now) {
			o.log.Debug().Str("symbol", ticker.Symbol).Msg("Using fresh cached entry")
			records = append(records, Record{
				Symbol:      ticker.Symbol,
				DisplayName: displayName(ticker, existing),
				Entry:       existing,
				Status:      StatusCached,
			})
			continue
		}

		if fetched > 0 {
			waitStagger(ctx, o.stagger)
		}
		fetched++

		metrics, err := o.fetcher.Fetch(ctx, FetchRequest{
			Symbol:        ticker.Symbol,
			IncludeName:   ticker.Name == "",
			IncludeYTD:    settings.Columns.YTDChange,
			IncludeDecade: settings.Columns.TenYearChange,
		})
		if err != nil {
			if existing != nil {
				o.log.Warn().Err(err).Str("symbol", ticker.Symbol).Msg("Fetch failed, falling back to cached entry")
				warnings = append(warnings, fmt.Sprintf("using stale data for %s", ticker.Symbol))
				records = append(records, Record{
					Symbol:      ticker.Symbol,
					DisplayName: displayName(ticker, existing),
					Entry:       existing,
					Status:      StatusStale,
					Err:         err,
				})
				continue
			}
			o.log.Warn().Err(err).Str("symbol", ticker.Symbol).Msg("Fetch failed with no cached fallback")
			records = append(records, Record{
				Symbol:      ticker.Symbol,
				DisplayName: displayName(ticker, nil),
				Status:      StatusError,
				Err:         err,
			})
			continue
		}

		entry := cache.NewEntry(ticker.Symbol, now, *metrics)
		if cacheEnabled {
			updates[ticker.Symbol] = entry
		}
		records = append(records, Record{
			Symbol:      ticker.Symbol,
			DisplayName: displayName(ticker, entry),
			Entry:       entry,
			Status:      StatusFetched,
		})
	}

	if !cacheEnabled {
		return records, nil, warnings
	}
	return records, cache.Merge(cached, updates), warnings
}

// Run executes one orchestration pass through the store: load, resolve,
// persist. With caching disabled the store is never touched. A save
// failure is returned for run-level surfacing, but records and warnings
// are still valid and returned.
func (o *Orchestrator) Run(
	ctx context.Context,
	tickers []config.TickerSpec,
	settings *config.Settings,
	force bool,
	now time.Time,
) ([]Record, []string, error) {
	if !settings.Cache.Enabled {
		records, _, warnings := o.Resolve(ctx, tickers, nil, settings, force, now)
		return records, warnings, nil
	}

	cached := o.store.Load()
	records, updated, warnings := o.Resolve(ctx, tickers, cached, settings, force, now)
	if err := o.store.Save(updated); err != nil {
		return records, warnings, fmt.Errorf("failed to persist cache: %w", err)
	}
	return records, warnings, nil
}

// displayName resolves the name to show for a ticker: the user-provided
// name, else the fetched company name, else the raw symbol.
func displayName(ticker config.TickerSpec, entry *cache.Entry) string {
	if ticker.Name != "" {
		return ticker.Name
	}
	if entry != nil && entry.ResolvedName != "" {
		return entry.ResolvedName
	}
	return ticker.Symbol
}

// waitStagger sleeps for d, returning early if ctx is cancelled. A
// cancelled wait falls through to the fetch, which fails fast on the
// dead context and takes the normal per-ticker failure path.
func waitStagger(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
