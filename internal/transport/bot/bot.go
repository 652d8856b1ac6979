package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"price_tracker/internal/config"
	"price_tracker/internal/infrastructure/notifier"
	"price_tracker/internal/transport/bot/handler"
	"price_tracker/internal/transport/bot/session"
	"price_tracker/pkg/contextx"
	"price_tracker/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Bot is the Telegram front end of the tracker.
type Bot struct {
	bot      *telego.Bot
	notifier *notifier.TelegramBot
	handler  *handler.Handler
	allowed  []int64
}

func New(cfg config.Bot, c handler.Catalog, sessions *session.Store) (*Bot, error) {
	bot, err := telego.NewBot(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	replier := notifier.NewTelegramBot(bot, cfg.NotifyChatID)

	return &Bot{
		bot:      bot,
		notifier: replier,
		handler:  handler.New(c, sessions, replier),
		allowed:  cfg.AllowedChatIDs,
	}, nil
}

// Run polls for updates until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	updates, err := b.bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout: 60,
	})
	if err != nil {
		return fmt.Errorf("failed to get updates: %w", err)
	}

	botHandler, err := th.NewBotHandler(b.bot, updates)
	if err != nil {
		return fmt.Errorf("failed to create bot handler: %w", err)
	}

	b.handler.RegisterRoutes(botHandler, b.allowed)

	go func() {
		if err := botHandler.Start(); err != nil {
			logger(ctx).Error("failed to start bot handler", logx.Error(err))
		}
	}()

	b.notifier.Notify(ctx, "Price tracker is up. Send /list to see the catalog.")

	<-ctx.Done()

	if err := botHandler.Stop(); err != nil {
		logger(ctx).Error("failed to stop bot handler", logx.Error(err))
	}

	return ctx.Err()
}
