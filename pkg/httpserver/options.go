package httpserver

import (
	"context"
	"log/slog"
	"net"
	"os"
	"time"
)

// Option configures the HTTP server.
type Option func(*config)

// WithAddr sets the address the server listens on.
func WithAddr(addr string) Option {
	if addr == "" {
		panic("WithAddr: addr cannot be empty")
	}
	return func(c *config) { c.addr = addr }
}

// WithReadTimeout sets the maximum duration for reading the entire request.
func WithReadTimeout(d time.Duration) Option {
	return durationOption("WithReadTimeout", d, func(c *config) { c.readTimeout = d })
}

// WithReadHeaderTimeout bounds the time to read request headers.
func WithReadHeaderTimeout(d time.Duration) Option {
	return durationOption("WithReadHeaderTimeout", d, func(c *config) { c.readHeaderTimeout = d })
}

// WithWriteTimeout sets the maximum duration before timing out writes of the response.
func WithWriteTimeout(d time.Duration) Option {
	return durationOption("WithWriteTimeout", d, func(c *config) { c.writeTimeout = d })
}

// WithIdleTimeout sets the keep-alive idle timeout.
func WithIdleTimeout(d time.Duration) Option {
	return durationOption("WithIdleTimeout", d, func(c *config) { c.idleTimeout = d })
}

// WithShutdownTimeout sets the time allowed for graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return durationOption("WithShutdownTimeout", d, func(c *config) { c.shutdownTimeout = d })
}

// WithMaxHeaderBytes caps the size of request headers.
func WithMaxHeaderBytes(n int) Option {
	if n <= 0 {
		panic("WithMaxHeaderBytes: size must be > 0")
	}
	return func(c *config) { c.maxHeaderBytes = n }
}

// WithLogger supplies the logger for lifecycle events and net/http errors.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithSignals replaces the signals that trigger shutdown.
// Passing none disables signal handling.
func WithSignals(sig ...os.Signal) Option {
	return func(c *config) { c.signals = sig }
}

// WithStartHook registers a callback that runs once the listener is bound.
func WithStartHook(h func(ctx context.Context, addr net.Addr)) Option {
	if h == nil {
		panic("WithStartHook: nil hook")
	}
	return func(c *config) { c.startHooks = append(c.startHooks, h) }
}

// WithStopHook registers a callback that runs after the server drains.
func WithStopHook(h func(ctx context.Context)) Option {
	if h == nil {
		panic("WithStopHook: nil hook")
	}
	return func(c *config) { c.stopHooks = append(c.stopHooks, h) }
}

func durationOption(name string, d time.Duration, fn Option) Option {
	if d <= 0 {
		panic(name + ": duration must be > 0")
	}
	return fn
}
