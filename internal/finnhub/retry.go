package finnhub

import (
	"context"
	"time"
)

// retry calls fn up to maxAttempts times with exponential backoff
// starting at baseDelay. It returns nil on the first success and stops
// early on non-retryable errors (4xx responses, cancelled contexts).
// Cancellation is honored between attempts.
func retry(ctx context.Context, maxAttempts int, baseDelay time.Duration, fn func() error) error {
	var err error
	delay := baseDelay

	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}

		// No sleep after the last failed attempt.
		if attempt < maxAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return err
}
