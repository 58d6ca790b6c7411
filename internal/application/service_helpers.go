package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/plugscrtf/marketplace-service/internal/adapters/metrics"
)

// notifyBot pushes a change to the bot sync webhook. Notification failures
// never fail the triggering request; they are logged and dropped.
func (s *Service) notifyBot(ctx context.Context, entityType, action string, data map[string]any) {
	if s.bot == nil {
		return
	}
	if err := s.bot.NotifyUpdate(ctx, entityType, action, data); err != nil {
		metrics.NotificationFailed("bot")
		s.logger.WarnContext(ctx, "bot notification failed",
			"entity", entityType, "action", action, "error", err)
	}
}

// publishEvent emits a domain event on the bus, best effort.
func (s *Service) publishEvent(ctx context.Context, eventType, partitionKey string, data map[string]any) {
	if s.events == nil {
		return
	}
	envelope := map[string]any{
		"event_id":       uuid.NewString(),
		"event_type":     eventType,
		"occurred_at":    s.nowFn().Format(time.RFC3339),
		"source_service": s.cfg.ServiceName,
		"data":           data,
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		s.logger.ErrorContext(ctx, "encode event", "type", eventType, "error", err)
		return
	}
	if err := s.events.Publish(ctx, eventType, payload, partitionKey); err != nil {
		s.logger.WarnContext(ctx, "publish event failed", "type", eventType, "error", err)
	}
}

func (s *Service) sendTelegram(ctx context.Context, chatID, html string) {
	if s.telegram == nil || chatID == "" {
		return
	}
	if err := s.telegram.SendMessage(ctx, chatID, html); err != nil {
		metrics.NotificationFailed("telegram")
		s.logger.WarnContext(ctx, "telegram notification failed", "chat_id", chatID, "error", err)
	}
}
