package ratelimiter

import (
	"context"
	"time"
)

// Store defines the interface for rate limit storage backends.
type Store interface {
	// ConsumeTokens refills the bucket for elapsed intervals, then subtracts
	// tokens if enough are available. A negative remaining value means the
	// request is denied and nothing was taken.
	ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (remaining int, resetAt time.Time, err error)

	// Reset clears the rate limit state for the given key.
	Reset(ctx context.Context, key string) error
}

// refill applies the token bucket arithmetic shared by every store.
// Elapsed intervals are capped so huge gaps cannot overflow.
func refill(tokens int, lastRefill, now time.Time, config Config) (int, time.Time) {
	elapsed := now.Sub(lastRefill)
	if elapsed <= 0 {
		return tokens, lastRefill
	}

	maxIntervals := int64(config.Capacity/config.RefillRate + 1)
	intervals := int(min(int64(elapsed/config.RefillInterval), maxIntervals))
	if intervals == 0 {
		return tokens, lastRefill
	}

	return min(tokens+intervals*config.RefillRate, config.Capacity), now
}
