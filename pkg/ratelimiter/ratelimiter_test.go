package ratelimiter_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/paytoken/pkg/ratelimiter"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var testConfig = ratelimiter.Config{
	Capacity:       3,
	RefillRate:     1,
	RefillInterval: time.Second,
}

func TestNewBucket(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))

	tests := []struct {
		name   string
		store  ratelimiter.Store
		config ratelimiter.Config
	}{
		{"nil store", nil, testConfig},
		{"zero capacity", store, ratelimiter.Config{Capacity: 0, RefillRate: 1, RefillInterval: time.Second}},
		{"zero refill rate", store, ratelimiter.Config{Capacity: 1, RefillRate: 0, RefillInterval: time.Second}},
		{"negative interval", store, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: -time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ratelimiter.NewBucket(tt.store, tt.config)
			assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
		})
	}

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		b, err := ratelimiter.NewBucket(store, testConfig)
		require.NoError(t, err)
		assert.NotNil(t, b)
	})
}

func TestBucket_AllowN(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	store := ratelimiter.NewMemoryStore(
		ratelimiter.WithCleanupInterval(0),
		ratelimiter.WithMemoryClock(clock.Now),
	)
	b, err := ratelimiter.NewBucket(store, testConfig)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = b.AllowN(ctx, "k", 0)
	require.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)

	res, err := b.AllowN(ctx, "k", 2)
	require.NoError(t, err)
	assert.True(t, res.Allowed())
	assert.Equal(t, 3, res.Limit)
	assert.Equal(t, 1, res.Remaining)

	res, err = b.AllowN(ctx, "k", 2)
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.Equal(t, -1, res.Remaining)

	res, err = b.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed(), "a denied request must not drain the bucket")
	assert.Equal(t, 0, res.Remaining)
}

func TestBucket_StatusAndReset(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	b, err := ratelimiter.NewBucket(store, testConfig)
	require.NoError(t, err)
	ctx := context.Background()

	for range 3 {
		_, err := b.Allow(ctx, "k")
		require.NoError(t, err)
	}

	status, err := b.Status(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 0, status.Remaining)
	assert.True(t, status.Allowed())

	require.NoError(t, b.Reset(ctx, "k"))

	status, err = b.Status(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 3, status.Remaining)
}

func TestBucket_CancelledContext(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	b, err := ratelimiter.NewBucket(store, testConfig)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = b.Allow(ctx, "k")
	assert.ErrorIs(t, err, ratelimiter.ErrContextCancelled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResult_RetryAfter(t *testing.T) {
	t.Parallel()

	allowed := ratelimiter.Result{Remaining: 0, ResetAt: time.Now().Add(time.Minute)}
	assert.Zero(t, allowed.RetryAfter())

	denied := ratelimiter.Result{Remaining: -1, ResetAt: time.Now().Add(time.Minute)}
	assert.InDelta(t, time.Minute.Seconds(), denied.RetryAfter().Seconds(), 1)

	past := ratelimiter.Result{Remaining: -1, ResetAt: time.Now().Add(-time.Minute)}
	assert.Zero(t, past.RetryAfter())
}
