package finnhub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterBurstIsImmediate(t *testing.T) {
	rl := newRateLimiter(1, 3)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, rl.Wait(ctx))
	}

	assert.Less(t, time.Since(start), 100*time.Millisecond, "the bucket starts full")
}

func TestRateLimiterPacesBeyondBurst(t *testing.T) {
	// 20 tokens/s so the post-burst wait is short but measurable.
	rl := newRateLimiter(20, 1)
	ctx := context.Background()

	require.NoError(t, rl.Wait(ctx))

	start := time.Now()
	require.NoError(t, rl.Wait(ctx))

	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond, "second request waits for replenishment")
}

func TestRateLimiterWaitCancellation(t *testing.T) {
	rl := newRateLimiter(0.001, 1)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, rl.Wait(ctx))

	cancel()
	err := rl.Wait(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRateLimiterTokensCapAtBurst(t *testing.T) {
	rl := newRateLimiter(1000, 2)
	ctx := context.Background()

	// Let far more than burst worth of tokens accrue.
	time.Sleep(20 * time.Millisecond)

	start := time.Now()
	require.NoError(t, rl.Wait(ctx))
	require.NoError(t, rl.Wait(ctx))
	require.NoError(t, rl.Wait(ctx))

	// Third request needs a replenished token; at 1000/s that is
	// near-instant, so just assert nothing blocked for long.
	assert.Less(t, time.Since(start), 200*time.Millisecond)
}
