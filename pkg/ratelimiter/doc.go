// Package ratelimiter provides token bucket rate limiting with pluggable
// storage and HTTP middleware.
//
// A bucket holds up to Capacity tokens and gains RefillRate tokens every
// RefillInterval. Each request consumes one token; a negative remaining count
// means the request is denied.
//
// Two stores are provided. MemoryStore keeps state per process and cleans up
// idle buckets in the background. RedisStore runs the same arithmetic in a Lua
// script so replicas behind a load balancer share one budget per key.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       30,
//		RefillRate:     1,
//		RefillInterval: 2 * time.Second,
//	})
//	if err != nil {
//		return err
//	}
//
//	r.Use(ratelimiter.Middleware(limiter, func(r *http.Request) string {
//		return clientip.FromContext(r.Context())
//	}))
//
// The middleware sets X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset on every limited route, plus Retry-After on denial.
// WithLimitedHandler customizes the denial body and WithFailOpen keeps the
// route available when the store is unreachable.
package ratelimiter
