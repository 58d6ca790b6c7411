package ports

import "context"

// TelegramNotifier delivers a message to a Telegram chat. Callers treat
// delivery as best-effort and never fail the primary operation on error.
type TelegramNotifier interface {
	SendMessage(ctx context.Context, chatID, html string) error
}

// BotNotifier pings the companion bot's webhook about catalog changes.
type BotNotifier interface {
	NotifyUpdate(ctx context.Context, entityType, action string, data map[string]any) error
}
