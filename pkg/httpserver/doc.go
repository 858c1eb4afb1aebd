// Package httpserver runs an http.Handler with sane timeouts and graceful
// shutdown.
//
// Run blocks until the context is cancelled or SIGINT/SIGTERM arrives, then
// drains in-flight requests within the shutdown timeout. Settings come from
// functional options or from Config, which is loaded from HTTP_* variables.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// LivenessHandler and ReadinessHandler serve /healthz and /readyz style
// probes with JSON bodies.
package httpserver
