package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"price_tracker/internal/config"
	"price_tracker/internal/domain/service/catalog"
	"price_tracker/internal/infrastructure/trackerapi"
	"price_tracker/internal/transport/bot"
	"price_tracker/internal/transport/bot/session"
	"price_tracker/pkg/application/modules"
	"price_tracker/pkg/contextx"
	"price_tracker/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Run serves the bot, the probes and the metrics until ctx is done.
func Run(ctx context.Context, cfg config.Config) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	httpClient, err := trackerapi.NewHTTPClient(cfg.API.LogFieldMaxLen, registry)
	if err != nil {
		return fmt.Errorf("trackerapi.NewHTTPClient: %w", err)
	}

	client := trackerapi.NewClient(cfg.API.URL, httpClient)
	syncer := catalog.NewSyncer(client)
	sessions := session.NewStore(cfg.Bot.SessionTTL, client)

	err = registry.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "bot",
		Name:      "sessions",
		Help:      "Chat sessions currently kept in memory.",
	}, func() float64 {
		return float64(sessions.Len())
	}))
	if err != nil {
		return fmt.Errorf("registry.Register: %w", err)
	}

	telegramBot, err := bot.New(cfg.Bot, syncer, sessions)
	if err != nil {
		return fmt.Errorf("bot.New: %w", err)
	}

	// The probe reports not ready until a list has been loaded, so a failure
	// here is not fatal.
	if snap, err := syncer.LoadAll(ctx); err != nil {
		logger(ctx).Warn("initial catalog load failed", logx.Error(err))
	} else {
		logger(ctx).Info("catalog loaded", slog.Int("entities", snap.Len()), slog.Int("skipped", snap.Skipped))
	}

	g, ctx := errgroup.WithContext(ctx)

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Probe.ListenAddress,
		Ready:         syncer.Ready,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.Metrics.ListenAddress,
		Gatherer:      registry,
	}.Run(ctx, g)

	g.Go(func() error {
		if err := telegramBot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("telegramBot.Run: %w", err)
		}

		return nil
	})

	return g.Wait()
}
