package middleware_test

import (
	"testing"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/require"

	"price_tracker/internal/transport/bot/middleware"
)

func messageFrom(chatID int64) telego.Update {
	return telego.Update{Message: &telego.Message{Chat: telego.Chat{ID: chatID}}}
}

func pressIn(chatID int64) telego.Update {
	return telego.Update{CallbackQuery: &telego.CallbackQuery{
		ID:      "q",
		Message: &telego.Message{Chat: telego.Chat{ID: chatID}},
	}}
}

func TestChatAllowed(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name    string
		allowed []int64
		update  telego.Update
		want    bool
	}{
		{
			name:   "Empty list serves everyone",
			update: messageFrom(7),
			want:   true,
		},
		{
			name:    "Listed chat message",
			allowed: []int64{5, 7},
			update:  messageFrom(7),
			want:    true,
		},
		{
			name:    "Unlisted chat message",
			allowed: []int64{5},
			update:  messageFrom(7),
		},
		{
			name:    "Listed chat button",
			allowed: []int64{-100},
			update:  pressIn(-100),
			want:    true,
		},
		{
			name:    "Unlisted chat button",
			allowed: []int64{5},
			update:  pressIn(7),
		},
		{
			name:    "Button without message",
			allowed: []int64{5},
			update:  telego.Update{CallbackQuery: &telego.CallbackQuery{ID: "q"}},
		},
		{
			name:    "Update without chat",
			allowed: []int64{5},
			update:  telego.Update{UpdateID: 1},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.want, middleware.ChatAllowed(tc.allowed, tc.update))
		})
	}
}
