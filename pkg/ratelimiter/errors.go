package ratelimiter

import "errors"

var (
	ErrInvalidConfig     = errors.New("ratelimiter: invalid configuration")
	ErrInvalidTokenCount = errors.New("ratelimiter: token count must be positive")
	ErrContextCancelled  = errors.New("ratelimiter: context cancelled")

	// ErrStoreUnavailable wraps backend failures so middleware can decide
	// between failing open and failing closed.
	ErrStoreUnavailable = errors.New("ratelimiter: store unavailable")
)
