package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/plugscrtf/marketplace-service/internal/domain"
	"github.com/plugscrtf/marketplace-service/internal/ports"
)

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *Service) GetUserByTelegramID(ctx context.Context, telegramID string) (domain.User, error) {
	if err := domain.ValidateTelegramID(telegramID); err != nil {
		return domain.User{}, err
	}
	return s.users.FindByTelegramID(ctx, telegramID)
}

func (s *Service) CountUsers(ctx context.Context) int64 {
	return s.users.Count(ctx)
}

// SyncUser upserts a user pushed by the companion bot.
func (s *Service) SyncUser(ctx context.Context, telegramID string, patch ports.Patch) (domain.User, error) {
	if err := domain.ValidateTelegramID(telegramID); err != nil {
		return domain.User{}, err
	}
	user, err := s.users.Upsert(ctx, telegramID, patch)
	if err != nil {
		return domain.User{}, err
	}
	s.publishEvent(ctx, "marketplace.user_synced", telegramID, map[string]any{
		"telegram_id": telegramID, "user_id": user.ID,
	})
	return user, nil
}

func (s *Service) RemoveSyncedUser(ctx context.Context, telegramID string) error {
	user, err := s.users.FindByTelegramID(ctx, telegramID)
	if err != nil {
		return err
	}
	return s.users.Delete(ctx, user.ID)
}

func (s *Service) GetUserStats(ctx context.Context, telegramID string) (domain.UserStats, error) {
	if err := domain.ValidateTelegramID(telegramID); err != nil {
		return domain.UserStats{}, err
	}
	return s.userStats.Get(ctx, telegramID)
}

// SendPoints credits points to a user and tells them over Telegram.
func (s *Service) SendPoints(ctx context.Context, telegramID string, points int64) (domain.UserStats, error) {
	if points <= 0 {
		return domain.UserStats{}, fmt.Errorf("%w: le nombre de points doit être positif", domain.ErrInvalidInput)
	}
	if _, err := s.users.FindByTelegramID(ctx, telegramID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.UserStats{}, fmt.Errorf("%w: Utilisateur non trouvé", domain.ErrNotFound)
		}
		return domain.UserStats{}, err
	}
	total, err := s.userStats.AddPoints(ctx, telegramID, points)
	if err != nil {
		return domain.UserStats{}, err
	}
	s.sendTelegram(ctx, telegramID, fmt.Sprintf(
		"🎁 <b>Vous avez reçu %d points !</b>\n\nVotre nouveau total : <b>%d points</b> 🏆", points, total))
	return s.userStats.Get(ctx, telegramID)
}
