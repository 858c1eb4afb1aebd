package httpserver

import "errors"

var (
	// ErrStart indicates that the server failed to start.
	ErrStart = errors.New("failed to start HTTP server")
	// ErrShutdown indicates that graceful shutdown failed.
	ErrShutdown = errors.New("failed to shutdown HTTP server gracefully")
	// ErrAlreadyRunning is returned by a second Run on the same Server.
	ErrAlreadyRunning = errors.New("http server already running")
	// ErrStopped is returned by Run after Shutdown.
	ErrStopped = errors.New("http server already stopped")
)
