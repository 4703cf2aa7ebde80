package finnhub

import (
	"context"
	"sync"
	"time"
)

// pollInterval is how long Wait sleeps between token checks.
const pollInterval = 10 * time.Millisecond

// rateLimiter is a token bucket replenished at a fixed rate. It paces
// every outbound API request so a long ticker list does not trip the
// remote rate limit.
type rateLimiter struct {
	rate  float64 // tokens per second
	burst float64

	mu       sync.Mutex
	tokens   float64
	lastTime time.Time
}

// newRateLimiter allows perSecond sustained requests with the given
// burst. The bucket starts full so short runs pay no pacing cost.
func newRateLimiter(perSecond float64, burst int) *rateLimiter {
	return &rateLimiter{
		rate:     perSecond,
		burst:    float64(burst),
		tokens:   float64(burst),
		lastTime: time.Now(),
	}
}

// Wait blocks until a token is available or the context is cancelled.
func (rl *rateLimiter) Wait(ctx context.Context) error {
	for {
		rl.mu.Lock()
		now := time.Now()
		elapsed := now.Sub(rl.lastTime).Seconds()
		rl.tokens += elapsed * rl.rate
		if rl.tokens > rl.burst {
			rl.tokens = rl.burst
		}
		rl.lastTime = now

		if rl.tokens >= 1 {
			rl.tokens--
			rl.mu.Unlock()
			return nil
		}
		rl.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}
