package ratelimiter_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/paytoken/pkg/ratelimiter"
)

type failingStore struct{}

func (failingStore) ConsumeTokens(context.Context, string, int, ratelimiter.Config) (int, time.Time, error) {
	return 0, time.Time{}, ratelimiter.ErrStoreUnavailable
}

func (failingStore) Reset(context.Context, string) error { return nil }

func byRemoteAddr(r *http.Request) string { return r.RemoteAddr }

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func newLimitedHandler(t *testing.T, store ratelimiter.Store, keyFunc ratelimiter.KeyFunc, opts ...ratelimiter.MiddlewareOption) http.Handler {
	t.Helper()
	b, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Minute})
	require.NoError(t, err)
	return ratelimiter.Middleware(b, keyFunc, opts...)(okHandler)
}

func serve(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/verify", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	h := newLimitedHandler(t, store, byRemoteAddr)

	rec := serve(h, "10.0.0.1")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))
	assert.Empty(t, rec.Header().Get("Retry-After"))

	rec = serve(h, "10.0.0.1")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = serve(h, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	rec = serve(h, "10.0.0.2")
	assert.Equal(t, http.StatusNoContent, rec.Code, "other clients have their own bucket")
}

func TestMiddleware_LimitedHandler(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	h := newLimitedHandler(t, store, byRemoteAddr, ratelimiter.WithLimitedHandler(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"valid":false,"reason":"rate_limited"}`))
		}),
	))

	serve(h, "10.0.0.1")
	serve(h, "10.0.0.1")
	rec := serve(h, "10.0.0.1")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"valid":false,"reason":"rate_limited"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestMiddleware_EmptyKeySkipsLimiting(t *testing.T) {
	t.Parallel()

	h := newLimitedHandler(t, failingStore{}, func(*http.Request) string { return "" })

	rec := serve(h, "10.0.0.1")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestMiddleware_StoreFailure(t *testing.T) {
	t.Parallel()

	t.Run("fails closed by default", func(t *testing.T) {
		t.Parallel()

		var seen error
		h := newLimitedHandler(t, failingStore{}, byRemoteAddr,
			ratelimiter.WithErrorFunc(func(_ *http.Request, err error) { seen = err }))

		rec := serve(h, "10.0.0.1")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.True(t, errors.Is(seen, ratelimiter.ErrStoreUnavailable))
	})

	t.Run("fail open passes the request through", func(t *testing.T) {
		t.Parallel()

		h := newLimitedHandler(t, failingStore{}, byRemoteAddr, ratelimiter.WithFailOpen())

		rec := serve(h, "10.0.0.1")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestComposite(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1"
	empty := func(*http.Request) string { return "" }
	long := func(*http.Request) string { return strings.Repeat("x", 100) }

	assert.Equal(t, "", ratelimiter.Composite(empty)(req))
	assert.Equal(t, "10.0.0.1", ratelimiter.Composite(empty, byRemoteAddr)(req))
	assert.Equal(t, "10.0.0.1:10.0.0.1", ratelimiter.Composite(byRemoteAddr, byRemoteAddr)(req))

	hashed := ratelimiter.Composite(byRemoteAddr, long)(req)
	assert.LessOrEqual(t, len(hashed), 64)
	assert.Equal(t, hashed, ratelimiter.Composite(byRemoteAddr, long)(req))
}

func TestPrefixed(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1"

	assert.Equal(t, "verify:10.0.0.1", ratelimiter.Prefixed("verify:", byRemoteAddr)(req))
	assert.Equal(t, "", ratelimiter.Prefixed("verify:", func(*http.Request) string { return "" })(req))
}
