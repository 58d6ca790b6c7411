package application

import (
	"context"
	"fmt"

	"github.com/plugscrtf/marketplace-service/internal/domain"
	"github.com/plugscrtf/marketplace-service/internal/ports"
)

func (s *Service) ListPlugs(ctx context.Context, includeInactive bool) ([]domain.Plug, error) {
	return s.plugs.List(ctx, includeInactive)
}

func (s *Service) GetPlug(ctx context.Context, id string) (domain.Plug, error) {
	return s.plugs.FindByID(ctx, id)
}

func (s *Service) CreatePlug(ctx context.Context, plug domain.Plug) (domain.Plug, error) {
	if err := domain.ValidatePlug(plug); err != nil {
		return domain.Plug{}, err
	}
	created, err := s.plugs.Create(ctx, plug)
	if err != nil {
		return domain.Plug{}, err
	}
	s.notifyBot(ctx, "plug", "created", map[string]any{"_id": created.ID, "name": created.Name})
	s.publishEvent(ctx, "marketplace.plug_created", created.ID, map[string]any{
		"plug_id": created.ID, "name": created.Name,
	})
	return created, nil
}

func (s *Service) UpdatePlug(ctx context.Context, id string, patch ports.Patch) (domain.Plug, error) {
	updated, err := s.plugs.Update(ctx, id, patch)
	if err != nil {
		return domain.Plug{}, err
	}
	s.notifyBot(ctx, "plug", "updated", map[string]any{"_id": updated.ID, "name": updated.Name})
	return updated, nil
}

func (s *Service) DeletePlug(ctx context.Context, id string) error {
	if err := s.plugs.Delete(ctx, id); err != nil {
		return err
	}
	s.notifyBot(ctx, "plug", "deleted", map[string]any{"_id": id})
	s.publishEvent(ctx, "marketplace.plug_deleted", id, map[string]any{"plug_id": id})
	return nil
}

func (s *Service) LikePlug(ctx context.Context, id string) (domain.Plug, error) {
	if _, err := s.plugs.IncrementLikes(ctx, id, 1); err != nil {
		return domain.Plug{}, err
	}
	return s.plugs.FindByID(ctx, id)
}

// TrackPlugReferral counts a referred visit and credits the referrer.
func (s *Service) TrackPlugReferral(ctx context.Context, id string) (domain.Plug, error) {
	if _, err := s.plugs.IncrementReferrals(ctx, id, 1); err != nil {
		return domain.Plug{}, err
	}
	return s.plugs.FindByID(ctx, id)
}

// Stats summarises catalog volume for the admin dashboard.
type Stats struct {
	Users       int64 `json:"users"`
	Plugs       int64 `json:"plugs"`
	ActivePlugs int64 `json:"activePlugs"`
	Products    int64 `json:"products"`
}

func (s *Service) GetStats(ctx context.Context) (Stats, error) {
	plugs, err := s.plugs.List(ctx, true)
	if err != nil {
		return Stats{}, fmt.Errorf("list plugs: %w", err)
	}
	var active int64
	for _, p := range plugs {
		if p.IsActive {
			active++
		}
	}
	products, err := s.products.List(ctx, ports.ProductFilter{})
	if err != nil {
		return Stats{}, fmt.Errorf("list products: %w", err)
	}
	return Stats{
		Users:       s.users.Count(ctx),
		Plugs:       int64(len(plugs)),
		ActivePlugs: active,
		Products:    int64(len(products)),
	}, nil
}
