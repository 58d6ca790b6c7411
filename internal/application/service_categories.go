package application

import (
	"context"
	"fmt"

	"github.com/plugscrtf/marketplace-service/internal/domain"
	"github.com/plugscrtf/marketplace-service/internal/ports"
)

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	if err := domain.ValidateCategoryName(category.Name); err != nil {
		return domain.Category{}, err
	}
	created, err := s.categories.Create(ctx, category)
	if err != nil {
		return domain.Category{}, err
	}
	s.notifyBot(ctx, "category", "created", map[string]any{"_id": created.ID, "name": created.Name})
	return created, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, patch ports.Patch) (domain.Category, error) {
	if name, ok := patch["name"].(string); ok {
		if err := domain.ValidateCategoryName(name); err != nil {
			return domain.Category{}, err
		}
	}
	updated, err := s.categories.Update(ctx, id, patch)
	if err != nil {
		return domain.Category{}, err
	}
	s.notifyBot(ctx, "category", "updated", map[string]any{"_id": updated.ID, "name": updated.Name})
	return updated, nil
}

// DeleteCategory refuses to remove a category while products still point at
// it, so the catalog never shows orphaned category names.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if n := s.products.CountByCategory(ctx, category.Name); n > 0 {
		return fmt.Errorf("%w: Impossible de supprimer cette catégorie car %d produit(s) l'utilisent",
			domain.ErrConflict, n)
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.notifyBot(ctx, "category", "deleted", map[string]any{"_id": id, "name": category.Name})
	return nil
}
