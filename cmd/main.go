package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"price_tracker/internal/application"
	"price_tracker/internal/config"
	"price_tracker/pkg/contextx"
	"price_tracker/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("application failed", logx.Error(err))
		os.Exit(1)
	}

	slog.Info("application stopped")
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	log := logx.NewConsoleLogger(os.Stdout, logx.ParseLevel(cfg.App.LogLevel), cfg.App.LogNoColor).With(
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
	)
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log)

	log.Info("application starting", slog.String("api-url", cfg.API.URL))

	return application.Run(ctx, cfg)
}
