package main

import (
	"github.com/dmitrymomot/paytoken/pkg/httpserver"
	"github.com/dmitrymomot/paytoken/pkg/ratelimiter"
	"github.com/dmitrymomot/paytoken/pkg/redis"
)

type appConfig struct {
	AppName  string `env:"APP_NAME" envDefault:"verifyd"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"`

	TokenSecret    string `env:"TOKEN_SECRET,required,notEmpty"`
	TokenMaxLength int    `env:"TOKEN_MAX_LENGTH" envDefault:"8192"`

	// Proxy headers to trust for the client IP, e.g. "X-Forwarded-For".
	// Leave empty when the service is reachable directly.
	TrustedIPHeaders []string `env:"TRUSTED_IP_HEADERS" envSeparator:","`

	RateLimitEnabled  bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitFailOpen bool `env:"RATE_LIMIT_FAIL_OPEN" envDefault:"true"`

	HTTP      httpserver.Config
	RateLimit ratelimiter.Config
	Redis     redis.Config
}
