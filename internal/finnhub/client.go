// Package finnhub is the Finnhub REST and websocket client: it fetches
// quotes, company profiles, financial metrics, and historical closes,
// and composes them into the per-ticker metrics the engine consumes.
// All requests are paced through a token bucket and retried with
// backoff on transient failures.
package finnhub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultBaseURL = "https://finnhub.io/api/v1"
	requestTimeout = 10 * time.Second

	// Free-tier pacing: one request per second with a small burst.
	requestsPerSecond = 1.0
	requestBurst      = 5

	// Transient failures retry with exponential backoff.
	retryAttempts  = 3
	retryBaseDelay = 500 * time.Millisecond
)

// ErrNotFound is returned when the API reports no data for a symbol.
var ErrNotFound = errors.New("finnhub: symbol not found")

// apiError is a non-2xx REST response. 429 and 5xx are retryable.
type apiError struct {
	status int
	path   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("finnhub: %s returned status %d", e.path, e.status)
}

// retryable reports whether err is worth another attempt: network
// failures, throttling, and server errors are; 4xx responses are not.
func retryable(err error) bool {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		return apiErr.status == http.StatusTooManyRequests || apiErr.status >= http.StatusInternalServerError
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Client is a Finnhub REST client. Build one with NewClient and the
// With* chainers; the zero value is not usable.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rateLimiter
	log     zerolog.Logger
}

// NewClient creates a client authenticating with token.
func NewClient(token string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		token:   token,
		http:    &http.Client{Timeout: requestTimeout},
		limiter: newRateLimiter(requestsPerSecond, requestBurst),
		log:     zerolog.Nop(),
	}
}

// WithBaseURL points the client at a different API root, for tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// WithLogger sets the logger and returns the client for chaining.
func (c *Client) WithLogger(log zerolog.Logger) *Client {
	c.log = log.With().Str("client", "finnhub").Logger()
	return c
}

// Quote fetches the current quote for symbol. A zeroed current price
// means the symbol is unknown to the API and maps to ErrNotFound.
func (c *Client) Quote(ctx context.Context, symbol string) (*Quote, error) {
	var quote Quote
	if err := c.get(ctx, "/quote", url.Values{"symbol": {symbol}}, &quote); err != nil {
		return nil, err
	}
	if quote.Current == 0 && quote.PrevClose == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, symbol)
	}
	return &quote, nil
}

// CompanyProfile fetches the company profile for symbol.
func (c *Client) CompanyProfile(ctx context.Context, symbol string) (*Profile, error) {
	var profile Profile
	if err := c.get(ctx, "/stock/profile2", url.Values{"symbol": {symbol}}, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// BasicFinancials fetches EPS, P/E, and dividend yield for symbol.
func (c *Client) BasicFinancials(ctx context.Context, symbol string) (*Financials, error) {
	var resp basicFinancialsResponse
	params := url.Values{"symbol": {symbol}, "metric": {"all"}}
	if err := c.get(ctx, "/stock/metric", params, &resp); err != nil {
		return nil, err
	}
	return &Financials{
		EPS:      resp.Metric.EPSTTM,
		PERatio:  resp.Metric.PETTM,
		Dividend: resp.Metric.CurrentDividendYieldTTM,
	}, nil
}

// Candles fetches daily closes for symbol between from and to. Returns
// the closes in chronological order, or nil when the range holds no
// trading days.
func (c *Client) Candles(ctx context.Context, symbol string, from, to time.Time) ([]float64, error) {
	params := url.Values{
		"symbol":     {symbol},
		"resolution": {"D"},
		"from":       {fmt.Sprintf("%d", from.Unix())},
		"to":         {fmt.Sprintf("%d", to.Unix())},
	}
	var resp candleResponse
	if err := c.get(ctx, "/stock/candle", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != candleStatusOK || len(resp.Close) == 0 {
		return nil, nil
	}
	return resp.Close, nil
}

// get performs one paced, retried GET against path and decodes the JSON
// body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	return retry(ctx, retryAttempts, retryBaseDelay, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		return c.doGet(ctx, path, params, out)
	})
}

func (c *Client) doGet(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("X-Finnhub-Token", c.token)

	c.log.Debug().Str("path", path).Msg("API request")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &apiError{status: resp.StatusCode, path: path}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
