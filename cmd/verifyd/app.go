package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/paytoken/modules/verification"
	"github.com/dmitrymomot/paytoken/pkg/clientip"
	"github.com/dmitrymomot/paytoken/pkg/httpserver"
	"github.com/dmitrymomot/paytoken/pkg/logger"
	"github.com/dmitrymomot/paytoken/pkg/ratelimiter"
	"github.com/dmitrymomot/paytoken/pkg/redis"
	"github.com/dmitrymomot/paytoken/pkg/requestid"
	"github.com/dmitrymomot/paytoken/pkg/verifier"
)

const readinessTimeout = 2 * time.Second

// unknownClient is the shared bucket for requests without a usable address.
const unknownClient = "unknown"

func clientKey(r *http.Request) string {
	if ip := clientip.FromContext(r.Context()); ip != "" {
		return ip
	}
	return unknownClient
}

// app holds everything main wires together. Close releases what it opened.
type app struct {
	handler http.Handler
	closers []io.Closer
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	return errors.Join(errs...)
}

func newApp(ctx context.Context, cfg appConfig, log *slog.Logger) (*app, error) {
	secret, err := verifier.NewSecretFromString(cfg.TokenSecret)
	if err != nil {
		return nil, err
	}

	v, err := verifier.New(secret,
		verifier.WithMaxTokenLength(cfg.TokenMaxLength),
		verifier.WithLogger(log.With(logger.Component("verifier"))),
	)
	if err != nil {
		return nil, err
	}

	a := &app{}
	var checks []httpserver.Check
	var middlewares []func(http.Handler) http.Handler

	if cfg.RateLimitEnabled {
		store, err := newRateLimitStore(ctx, cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.closer)
		if store.check != nil {
			checks = append(checks, *store.check)
		}

		bucket, err := ratelimiter.NewBucket(store, cfg.RateLimit)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		opts := []ratelimiter.MiddlewareOption{
			ratelimiter.WithLimitedHandler(http.HandlerFunc(verification.RateLimited)),
			ratelimiter.WithErrorFunc(func(r *http.Request, err error) {
				log.ErrorContext(r.Context(), "rate limiter unavailable", logger.Error(err))
			}),
		}
		if cfg.RateLimitFailOpen {
			opts = append(opts, ratelimiter.WithFailOpen())
		}

		middlewares = append(middlewares, ratelimiter.Middleware(bucket, ratelimiter.Prefixed("verify:", clientKey), opts...))
	}

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.New(cfg.TrustedIPHeaders...).Middleware,
		verification.Recoverer(log),
	)
	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(log, readinessTimeout, checks...))
	r.Mount("/", verification.Router(verification.RouterOptions{
		Verify: verification.NewService(v,
			verification.WithLogger(log.With(logger.Component("verification"))),
			verification.WithMaxTokenLength(cfg.TokenMaxLength),
		),
		Middlewares: middlewares,
	}))

	a.handler = r
	return a, nil
}

// rateLimitStore is the chosen backend plus its lifecycle hooks.
type rateLimitStore struct {
	ratelimiter.Store
	closer io.Closer
	check  *httpserver.Check
}

func newRateLimitStore(ctx context.Context, cfg redis.Config, log *slog.Logger) (rateLimitStore, error) {
	if !cfg.Enabled() {
		log.InfoContext(ctx, "rate limiting with in-memory store")
		ms := ratelimiter.NewMemoryStore()
		return rateLimitStore{Store: ms, closer: ms}, nil
	}

	client, err := redis.Connect(ctx, cfg)
	if err != nil {
		return rateLimitStore{}, fmt.Errorf("rate limiter: %w", err)
	}
	rs, err := ratelimiter.NewRedisStore(client)
	if err != nil {
		_ = client.Close()
		return rateLimitStore{}, fmt.Errorf("rate limiter: %w", err)
	}

	log.InfoContext(ctx, "rate limiting with redis store")
	return rateLimitStore{
		Store:  rs,
		closer: client,
		check:  &httpserver.Check{Name: "redis", Func: redis.Healthcheck(client)},
	}, nil
}
