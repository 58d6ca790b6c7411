package application

import (
	"context"

	"github.com/plugscrtf/marketplace-service/internal/domain"
	"github.com/plugscrtf/marketplace-service/internal/ports"
)

func (s *Service) ListProducts(ctx context.Context, filter ports.ProductFilter) ([]domain.Product, error) {
	return s.products.List(ctx, filter)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := domain.ValidateProduct(product); err != nil {
		return domain.Product{}, err
	}
	created, err := s.products.Create(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}
	s.notifyBot(ctx, "product", "created", map[string]any{"_id": created.ID, "name": created.Name})
	s.publishEvent(ctx, "marketplace.product_created", created.ID, map[string]any{
		"product_id": created.ID, "name": created.Name, "category": created.Category,
	})
	return created, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, patch ports.Patch) (domain.Product, error) {
	updated, err := s.products.Update(ctx, id, patch)
	if err != nil {
		return domain.Product{}, err
	}
	s.notifyBot(ctx, "product", "updated", map[string]any{"_id": updated.ID, "name": updated.Name})
	return updated, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.notifyBot(ctx, "product", "deleted", map[string]any{"_id": id})
	return nil
}

func (s *Service) LikeProduct(ctx context.Context, id string) (domain.Product, error) {
	if _, err := s.products.IncrementLikes(ctx, id, 1); err != nil {
		return domain.Product{}, err
	}
	return s.products.FindByID(ctx, id)
}

// ViewProduct records one view and returns the fresh counter so the client
// can render it without refetching the whole document.
func (s *Service) ViewProduct(ctx context.Context, id string) (int64, error) {
	return s.products.IncrementViews(ctx, id, 1)
}
