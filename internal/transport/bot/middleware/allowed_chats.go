package middleware

import (
	"slices"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
)

// AllowedChats drops updates from chats outside allowed. An empty list lets
// every chat through.
func AllowedChats(allowed []int64) th.Handler {
	return func(ctx *th.Context, update telego.Update) error {
		if !ChatAllowed(allowed, update) {
			return nil
		}

		return ctx.Next(update)
	}
}

// ChatAllowed reports whether update comes from a chat in allowed. Updates
// carrying no chat pass only when allowed is empty.
func ChatAllowed(allowed []int64, update telego.Update) bool {
	if len(allowed) == 0 {
		return true
	}

	switch {
	case update.Message != nil:
		return slices.Contains(allowed, update.Message.Chat.ID)
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		return slices.Contains(allowed, update.CallbackQuery.Message.GetChat().ID)
	default:
		return false
	}
}
