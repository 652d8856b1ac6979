package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"price_tracker/internal/transport/bot/view"
	"price_tracker/pkg/contextx"
	"price_tracker/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Telegram answers "Bad Request: message is not modified" to an edit that
// changes nothing.
const notModified = "message is not modified"

// TelegramBot delivers rendered views through the Bot API.
type TelegramBot struct {
	bot          *telego.Bot
	notifyChatID int64
}

// NewTelegramBot wraps bot. Notify is a no-op when notifyChatID is zero.
func NewTelegramBot(bot *telego.Bot, notifyChatID int64) *TelegramBot {
	return &TelegramBot{
		bot:          bot,
		notifyChatID: notifyChatID,
	}
}

func (b *TelegramBot) Send(ctx context.Context, chatID int64, msg view.Message) (int, error) {
	params := &telego.SendMessageParams{
		ChatID:             telego.ChatID{ID: chatID},
		Text:               msg.Text,
		ParseMode:          telego.ModeHTML,
		LinkPreviewOptions: &telego.LinkPreviewOptions{IsDisabled: true},
	}

	// A typed nil would be sent as "reply_markup": null.
	if msg.Keyboard != nil {
		params.ReplyMarkup = msg.Keyboard
	}

	sent, err := b.bot.SendMessage(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("send message: %w", err)
	}

	return sent.MessageID, nil
}

func (b *TelegramBot) Edit(ctx context.Context, chatID int64, messageID int, msg view.Message) error {
	_, err := b.bot.EditMessageText(ctx, &telego.EditMessageTextParams{
		ChatID:             tu.ID(chatID),
		MessageID:          messageID,
		Text:               msg.Text,
		ParseMode:          telego.ModeHTML,
		LinkPreviewOptions: &telego.LinkPreviewOptions{IsDisabled: true},
		ReplyMarkup:        msg.Keyboard,
	})
	if err != nil && !strings.Contains(err.Error(), notModified) {
		return fmt.Errorf("edit message: %w", err)
	}

	return nil
}

func (b *TelegramBot) Answer(ctx context.Context, queryID, text string, alert bool) error {
	params := tu.CallbackQuery(queryID).WithText(text)
	if alert {
		params = params.WithShowAlert()
	}

	if err := b.bot.AnswerCallbackQuery(ctx, params); err != nil {
		return fmt.Errorf("answer callback query: %w", err)
	}

	return nil
}

// Notify sends text to the operator chat.
func (b *TelegramBot) Notify(ctx context.Context, text string) {
	if b.notifyChatID == 0 {
		return
	}

	if _, err := b.Send(ctx, b.notifyChatID, view.Text(text)); err != nil {
		logger(ctx).Error("failed to notify", logx.Error(err))
	}
}
