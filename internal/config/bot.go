package config

import "time"

type Bot struct {
	Token string `env:"BOT_TOKEN" json:"-" validate:"required"`
	// AllowedChatIDs limits the chats the bot answers. Empty allows all.
	AllowedChatIDs []int64 `env:"BOT_ALLOWED_CHAT_IDS" envSeparator:","`
	// NotifyChatID receives a start-up message when set.
	NotifyChatID int64         `env:"BOT_NOTIFY_CHAT_ID"`
	SessionTTL   time.Duration `env:"BOT_SESSION_TTL" envDefault:"30m" validate:"gt=0"`
}
