package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"price_tracker/internal/config"
	"price_tracker/internal/server"
	"price_tracker/pkg/application/modules"
	"price_tracker/pkg/contextx"
	"price_tracker/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("stub api failed", logx.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	app, err := config.LoadApp()
	if err != nil {
		return fmt.Errorf("config.LoadApp: %w", err)
	}

	cfg, err := config.LoadStub()
	if err != nil {
		return fmt.Errorf("config.LoadStub: %w", err)
	}

	log := logx.NewConsoleLogger(os.Stdout, logx.ParseLevel(app.LogLevel), app.LogNoColor)
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log)

	market := server.NewFakeMarket()
	catalogServer := server.NewCatalogServer(market, market)

	if err := catalogServer.Seed(ctx, cfg.SeedItems...); err != nil {
		return fmt.Errorf("catalogServer.Seed: %w", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           server.NewServer(catalogServer).Handler(cfg.LogFieldMaxLen),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.ShutdownTimeout}.Run(ctx, g, httpServer)

	return g.Wait()
}
