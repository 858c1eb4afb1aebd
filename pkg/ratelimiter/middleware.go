package ratelimiter

import (
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// maxKeyLength is the maximum allowed length for a rate limit key
// to prevent excessively long storage keys.
const maxKeyLength = 64

// KeyFunc extracts a rate limit key from the request.
// An empty key skips rate limiting for that request.
type KeyFunc func(r *http.Request) string

// Composite combines multiple key functions into one.
// Long keys (>64 chars) are hashed using FNV-1a.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}

		if len(parts) == 0 {
			return ""
		}
		if len(parts) == 1 && len(parts[0]) <= maxKeyLength {
			return parts[0]
		}

		combined := strings.Join(parts, ":")
		if len(combined) > maxKeyLength {
			h := fnv.New64a()
			h.Write([]byte(combined))
			return strconv.FormatUint(h.Sum64(), 36)
		}

		return combined
	}
}

// Prefixed namespaces the key produced by fn.
func Prefixed(prefix string, fn KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		key := fn(r)
		if key == "" {
			return ""
		}
		return prefix + key
	}
}

// ErrorFunc observes store failures inside the middleware.
type ErrorFunc func(r *http.Request, err error)

type middlewareOptions struct {
	onLimited http.Handler
	onError   ErrorFunc
	failOpen  bool
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareOptions)

// WithLimitedHandler replaces the default 429 plain-text response.
// Rate limit headers are already set when the handler runs.
func WithLimitedHandler(h http.Handler) MiddlewareOption {
	return func(o *middlewareOptions) {
		if h != nil {
			o.onLimited = h
		}
	}
}

// WithErrorFunc registers a callback for limiter errors.
func WithErrorFunc(fn ErrorFunc) MiddlewareOption {
	return func(o *middlewareOptions) {
		o.onError = fn
	}
}

// WithFailOpen lets requests through when the limiter itself fails.
// By default such requests get a 500.
func WithFailOpen() MiddlewareOption {
	return func(o *middlewareOptions) {
		o.failOpen = true
	}
}

// Middleware creates an HTTP middleware for rate limiting.
func Middleware(limiter RateLimiter, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	o := middlewareOptions{
		onLimited: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		}),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			result, err := limiter.Allow(r.Context(), key)
			if err != nil {
				if o.onError != nil {
					o.onError(r, err)
				}
				if o.failOpen {
					next.ServeHTTP(w, r)
					return
				}
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed() {
				// Round up so clients never retry before the refill.
				retryAfter := int((result.RetryAfter() + time.Second - 1) / time.Second)
				w.Header().Set("Retry-After", strconv.Itoa(max(retryAfter, 1)))
				o.onLimited.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
