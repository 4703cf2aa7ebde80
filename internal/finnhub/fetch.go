package finnhub

import (
	"context"
	"fmt"
	"time"

	"github.com/rshade/tickwatch/internal/engine"
	"github.com/rshade/tickwatch/internal/engine/cache"
)

// Candle windows for the historical reference closes. The ranges span
// several days so a non-trading start date still captures a close.
const (
	ytdWindowDays     = 10
	decadeWindowDays  = 5
	decadeLookbackDay = 3650
)

// Fetch assembles one ticker's metrics, implementing engine.Fetcher.
// The quote is the gate: its failure fails the ticker. The profile
// (only when a name is needed), financials, and historical closes
// degrade to absent fields on their own failures, so a free-plan 403
// on candles costs two columns, not the row.
func (c *Client) Fetch(ctx context.Context, req engine.FetchRequest) (*cache.Metrics, error) {
	quote, err := c.Quote(ctx, req.Symbol)
	if err != nil {
		return nil, fmt.Errorf("fetching quote for %s: %w", req.Symbol, err)
	}

	metrics := &cache.Metrics{
		Price:       &quote.Current,
		DailyChange: percentChange(quote.Current, &quote.PrevClose),
	}

	if req.IncludeName {
		profile, profErr := c.CompanyProfile(ctx, req.Symbol)
		if profErr != nil {
			c.log.Debug().Err(profErr).Str("symbol", req.Symbol).Msg("Profile lookup failed")
		} else {
			metrics.ResolvedName = profile.Name
		}
	}

	if financials, finErr := c.BasicFinancials(ctx, req.Symbol); finErr != nil {
		c.log.Debug().Err(finErr).Str("symbol", req.Symbol).Msg("Financials lookup failed")
	} else {
		metrics.EPS = financials.EPS
		metrics.PERatio = financials.PERatio
		metrics.Dividend = financials.Dividend
	}

	if req.IncludeYTD {
		metrics.YTDChange = percentChange(quote.Current, c.ytdReferenceClose(ctx, req.Symbol))
	}
	if req.IncludeDecade {
		metrics.TenYearChange = percentChange(quote.Current, c.tenYearReferenceClose(ctx, req.Symbol))
	}

	return metrics, nil
}

// FetchStatic gathers the slow-moving data watch mode needs once per
// ticker before the live price stream takes over. Gating and
// degradation match Fetch.
func (c *Client) FetchStatic(ctx context.Context, req engine.FetchRequest) (*StaticSnapshot, error) {
	quote, err := c.Quote(ctx, req.Symbol)
	if err != nil {
		return nil, fmt.Errorf("fetching quote for %s: %w", req.Symbol, err)
	}

	snap := &StaticSnapshot{
		Symbol:       req.Symbol,
		PrevClose:    quote.PrevClose,
		InitialPrice: quote.Current,
	}

	if req.IncludeName {
		profile, profErr := c.CompanyProfile(ctx, req.Symbol)
		if profErr != nil {
			c.log.Debug().Err(profErr).Str("symbol", req.Symbol).Msg("Profile lookup failed")
		} else {
			snap.Name = profile.Name
		}
	}

	if financials, finErr := c.BasicFinancials(ctx, req.Symbol); finErr != nil {
		c.log.Debug().Err(finErr).Str("symbol", req.Symbol).Msg("Financials lookup failed")
	} else {
		snap.EPS = financials.EPS
		snap.PERatio = financials.PERatio
		snap.Dividend = financials.Dividend
	}

	if req.IncludeYTD {
		snap.YTDPrice = c.ytdReferenceClose(ctx, req.Symbol)
	}
	if req.IncludeDecade {
		snap.TenYearPrice = c.tenYearReferenceClose(ctx, req.Symbol)
	}

	return snap, nil
}

// ytdReferenceClose returns the first close on or after January 1 UTC of
// the current year, or nil when unavailable.
func (c *Client) ytdReferenceClose(ctx context.Context, symbol string) *float64 {
	now := time.Now().UTC()
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return c.referenceClose(ctx, symbol, start, start.AddDate(0, 0, ytdWindowDays))
}

// tenYearReferenceClose returns the first close on or after ten years
// ago (midnight UTC), or nil when unavailable.
func (c *Client) tenYearReferenceClose(ctx context.Context, symbol string) *float64 {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -decadeLookbackDay)
	return c.referenceClose(ctx, symbol, start, start.AddDate(0, 0, decadeWindowDays))
}

func (c *Client) referenceClose(ctx context.Context, symbol string, from, to time.Time) *float64 {
	closes, err := c.Candles(ctx, symbol, from, to)
	if err != nil {
		c.log.Debug().Err(err).Str("symbol", symbol).Msg("Candle lookup failed")
		return nil
	}
	if len(closes) == 0 {
		return nil
	}
	return &closes[0]
}

// percentChange computes (current-ref)/ref*100, or nil when the
// reference is missing or zero.
func percentChange(current float64, ref *float64) *float64 {
	if ref == nil || *ref == 0 {
		return nil
	}
	change := (current - *ref) / *ref * 100
	return &change
}
