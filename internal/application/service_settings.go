package application

import (
	"context"

	"github.com/plugscrtf/marketplace-service/internal/domain"
	"github.com/plugscrtf/marketplace-service/internal/ports"
)

func (s *Service) GetSettings(ctx context.Context) (domain.Settings, error) {
	return s.settings.Get(ctx)
}

func (s *Service) UpdateSettings(ctx context.Context, patch ports.Patch, expectedVersion int64) (domain.Settings, error) {
	updated, err := s.settings.Update(ctx, patch, expectedVersion)
	if err != nil {
		return domain.Settings{}, err
	}
	s.notifyBot(ctx, "settings", "updated", map[string]any{"version": updated.Version})
	return updated, nil
}

// Background exposes just the imagery part of the settings document.
type Background struct {
	BackgroundImage string `json:"backgroundImage"`
	LogoImage       string `json:"logoImage"`
}

func (s *Service) GetBackground(ctx context.Context) (Background, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return Background{}, err
	}
	return Background{BackgroundImage: settings.BackgroundImage, LogoImage: settings.LogoImage}, nil
}

func (s *Service) UpdateBackground(ctx context.Context, bg Background) (Background, error) {
	patch := ports.Patch{}
	if bg.BackgroundImage != "" {
		patch["backgroundImage"] = bg.BackgroundImage
	}
	if bg.LogoImage != "" {
		patch["logoImage"] = bg.LogoImage
	}
	settings, err := s.settings.Update(ctx, patch, 0)
	if err != nil {
		return Background{}, err
	}
	return Background{BackgroundImage: settings.BackgroundImage, LogoImage: settings.LogoImage}, nil
}

// SocialSnapshot is the public social-link view served to the mini app.
type SocialSnapshot struct {
	TelegramChannelLink string            `json:"telegramChannelLink"`
	CreatorSocial       map[string]string `json:"creatorSocial"`
}

func (s *Service) GetSocial(ctx context.Context) (SocialSnapshot, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return SocialSnapshot{}, err
	}
	return SocialSnapshot{
		TelegramChannelLink: settings.TelegramChannelLink,
		CreatorSocial:       settings.CreatorSocial,
	}, nil
}
