package verification_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/paytoken/modules/verification"
	"github.com/dmitrymomot/paytoken/pkg/ratelimiter"
	"github.com/dmitrymomot/paytoken/pkg/verifier"
)

func TestRouter_RateLimited(t *testing.T) {
	t.Parallel()

	secret, err := verifier.NewSecretFromString(testSecret)
	require.NoError(t, err)
	v, err := verifier.New(secret)
	require.NoError(t, err)

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Minute})
	require.NoError(t, err)

	limit := ratelimiter.Middleware(bucket,
		func(r *http.Request) string { return r.RemoteAddr },
		ratelimiter.WithLimitedHandler(http.HandlerFunc(verification.RateLimited)),
	)

	h := verification.Router(verification.RouterOptions{
		Verify:      verification.NewService(v),
		Middlewares: []func(http.Handler) http.Handler{limit},
	})

	do := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"token":"a.b"}`))
		req.RemoteAddr = "192.0.2.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusBadRequest, do(verification.PathVerify).Code)
	assert.Equal(t, http.StatusBadRequest, do(verification.PathVerifyLegacy).Code)

	rec := do(verification.PathVerify)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"valid":false,"reason":"rate_limited"}`, rec.Body.String())
}

func TestRouter_MethodNotAllowedBypassesMiddlewares(t *testing.T) {
	t.Parallel()

	secret, err := verifier.NewSecretFromString(testSecret)
	require.NoError(t, err)
	v, err := verifier.New(secret)
	require.NoError(t, err)

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})
	require.NoError(t, err)

	limit := ratelimiter.Middleware(bucket,
		func(r *http.Request) string { return r.RemoteAddr },
		ratelimiter.WithLimitedHandler(http.HandlerFunc(verification.RateLimited)),
	)

	h := verification.Router(verification.RouterOptions{
		Verify:      verification.NewService(v),
		Middlewares: []func(http.Handler) http.Handler{limit},
	})

	do := func(method string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, verification.PathVerify, strings.NewReader(`{}`))
		req.RemoteAddr = "192.0.2.2:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	for range 5 {
		rec := do(http.MethodGet)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
		assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	}

	assert.Equal(t, http.StatusBadRequest, do(http.MethodPost).Code, "GETs must not drain the bucket")
	assert.Equal(t, http.StatusTooManyRequests, do(http.MethodPost).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(http.MethodGet).Code)
}
