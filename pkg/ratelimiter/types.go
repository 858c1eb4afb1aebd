package ratelimiter

import "time"

// Result describes one limiter decision.
type Result struct {
	Limit     int       // bucket capacity
	Remaining int       // tokens left; negative means denied
	ResetAt   time.Time // next refill
}

// Allowed reports whether the request may proceed.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is the wait until the next refill for a denied request, else 0.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(time.Until(r.ResetAt), 0)
}

// Config sizes a token bucket. Defaults allow a burst of 30 verifications
// per client, refilled at one every two seconds.
type Config struct {
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"30"`        // Maximum tokens the bucket can hold (burst limit)
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"1"`      // Number of tokens added per refill interval
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"2s"` // How often tokens are added
}
