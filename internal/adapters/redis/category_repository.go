package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/plugscrtf/marketplace-service/internal/domain"
	"github.com/plugscrtf/marketplace-service/internal/ports"
)

const (
	categoryPrefix     = "category:"
	categoryIndex      = "categories:index"
	categoryNamePrefix = "category:name:"
)

func categoryKey(id string) string { return categoryPrefix + id }

// Name lookup is case-insensitive; the stored name keeps its original casing.
func categoryNameKey(name string) string {
	return categoryNamePrefix + domain.NormalizeCategoryName(name)
}

type CategoryRepository struct {
	kv     ports.KV
	logger *slog.Logger
	nowFn  func() time.Time
}

func NewCategoryRepository(kv ports.KV, logger *slog.Logger) *CategoryRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryRepository{kv: kv, logger: logger, nowFn: func() time.Time { return time.Now().UTC() }}
}

func (r *CategoryRepository) Create(ctx context.Context, category domain.Category) (domain.Category, error) {
	category.Name = strings.TrimSpace(category.Name)
	if _, exists := r.kv.Get(ctx, categoryNameKey(category.Name)); exists {
		return domain.Category{}, fmt.Errorf("%w: cette catégorie existe déjà", domain.ErrConflict)
	}

	category.ID = newID()
	category.CreatedAt = r.nowFn()

	raw, err := json.Marshal(category)
	if err != nil {
		return domain.Category{}, fmt.Errorf("encode category: %w", err)
	}
	if err := r.kv.Set(ctx, categoryKey(category.ID), string(raw), 0); err != nil {
		return domain.Category{}, fmt.Errorf("store category: %w", err)
	}
	if err := r.kv.Set(ctx, categoryNameKey(category.Name), category.ID, 0); err != nil {
		return domain.Category{}, fmt.Errorf("store category name: %w", err)
	}
	if err := r.kv.SAdd(ctx, categoryIndex, category.ID); err != nil {
		return domain.Category{}, fmt.Errorf("index category: %w", err)
	}
	return category, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (domain.Category, error) {
	raw, ok := r.kv.Get(ctx, categoryKey(id))
	if !ok {
		return domain.Category{}, domain.ErrNotFound
	}
	var category domain.Category
	if !decodeDoc(ctx, r.logger, "category", raw, &category) {
		return domain.Category{}, domain.ErrNotFound
	}
	return category, nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (domain.Category, error) {
	id, ok := r.kv.Get(ctx, categoryNameKey(name))
	if !ok {
		return domain.Category{}, domain.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	ids := r.kv.SMembers(ctx, categoryIndex)
	if len(ids) == 0 {
		return []domain.Category{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = categoryKey(id)
	}
	categories := make([]domain.Category, 0, len(ids))
	for _, raw := range r.kv.MGet(ctx, keys) {
		if raw == nil {
			continue
		}
		var category domain.Category
		if decodeDoc(ctx, r.logger, "category", *raw, &category) {
			categories = append(categories, category)
		}
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return strings.ToLower(categories[i].Name) < strings.ToLower(categories[j].Name)
	})
	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id string, patch ports.Patch) (domain.Category, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return domain.Category{}, err
	}

	delete(patch, "_id")
	if newName, ok := patchString(patch, "name"); ok {
		newName = strings.TrimSpace(newName)
		patch["name"] = newName
		if domain.NormalizeCategoryName(newName) != domain.NormalizeCategoryName(existing.Name) {
			if owner, taken := r.kv.Get(ctx, categoryNameKey(newName)); taken && owner != id {
				return domain.Category{}, fmt.Errorf("%w: cette catégorie existe déjà", domain.ErrConflict)
			}
		}
	}

	raw, _ := r.kv.Get(ctx, categoryKey(id))
	var updated domain.Category
	if err := mergePatch(raw, patch, &updated); err != nil {
		return domain.Category{}, fmt.Errorf("merge category: %w", err)
	}
	updated.ID = id

	encoded, err := json.Marshal(updated)
	if err != nil {
		return domain.Category{}, fmt.Errorf("encode category: %w", err)
	}
	if err := r.kv.Set(ctx, categoryKey(id), string(encoded), 0); err != nil {
		return domain.Category{}, fmt.Errorf("store category: %w", err)
	}
	if domain.NormalizeCategoryName(updated.Name) != domain.NormalizeCategoryName(existing.Name) {
		if err := r.kv.Del(ctx, categoryNameKey(existing.Name)); err != nil {
			return domain.Category{}, fmt.Errorf("drop category name: %w", err)
		}
		if err := r.kv.Set(ctx, categoryNameKey(updated.Name), id, 0); err != nil {
			return domain.Category{}, fmt.Errorf("store category name: %w", err)
		}
	}
	return updated, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	category, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.kv.Del(ctx, categoryKey(id), categoryNameKey(category.Name)); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if err := r.kv.SRem(ctx, categoryIndex, id); err != nil {
		return fmt.Errorf("deindex category: %w", err)
	}
	return nil
}
