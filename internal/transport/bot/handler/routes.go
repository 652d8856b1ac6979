package handler

import (
	"context"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"price_tracker/internal/transport/bot/middleware"
	"price_tracker/internal/transport/bot/view"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, allowedChats []int64) {
	messages := bh.Group(th.AnyMessage())
	messages.Use(middleware.AllowedChats(allowedChats))

	messages.HandleMessage(h.onMessage(h.Start), th.CommandEqual("start"))
	messages.HandleMessage(h.onMessage(h.Start), th.CommandEqual("help"))
	messages.HandleMessage(h.onMessage(h.List), th.CommandEqual("list"))
	messages.HandleMessage(h.onMessage(h.Track), th.CommandEqual("track"))
	messages.HandleMessage(h.onMessage(h.Keyword), th.CommandEqual("keyword"))
	messages.HandleMessage(h.onMessage(h.Search), th.CommandEqual("search"))
	messages.HandleMessage(h.onMessage(h.Items), th.CommandEqual("items"))
	messages.HandleMessage(h.onMessage(h.Retry), th.CommandEqual("retry"))

	// Anything else, usually a pasted link.
	messages.HandleMessage(h.onMessage(h.Text))

	callbacks := bh.Group(th.AnyCallbackQuery())
	callbacks.Use(middleware.AllowedChats(allowedChats))

	callbacks.HandleCallbackQuery(h.onPress)
}

func (h *Handler) onMessage(next func(ctx context.Context, in Incoming) error) th.MessageHandler {
	return func(ctx *th.Context, msg telego.Message) error {
		return next(ctx, Incoming{ChatID: msg.Chat.ID, Text: msg.Text})
	}
}

func (h *Handler) onPress(ctx *th.Context, query telego.CallbackQuery) error {
	if query.Message == nil {
		return h.replier.Answer(ctx, query.ID, view.Expired, true)
	}

	return h.Press(ctx, Press{
		QueryID:   query.ID,
		ChatID:    query.Message.GetChat().ID,
		MessageID: query.Message.GetMessageID(),
		Data:      query.Data,
	})
}
