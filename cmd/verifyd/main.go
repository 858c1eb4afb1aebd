// Command verifyd serves payment-session token verification over HTTP.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/paytoken/pkg/config"
	"github.com/dmitrymomot/paytoken/pkg/httpserver"
	"github.com/dmitrymomot/paytoken/pkg/logger"
	"github.com/dmitrymomot/paytoken/pkg/requestid"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("verifyd stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.AppEnv, cfg.AppName),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.ErrorContext(ctx, "release resources", logger.Error(err))
		}
	}()

	return httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, a.handler)
}
