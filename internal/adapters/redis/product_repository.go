package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/plugscrtf/marketplace-service/internal/domain"
	"github.com/plugscrtf/marketplace-service/internal/ports"
)

const (
	productPrefix         = "product:"
	productIndex          = "products:index"
	productFeaturedIndex  = "products:featured:index"
	productCategoryPrefix = "products:category:"
)

func productKey(id string) string           { return productPrefix + id }
func productLikesKey(id string) string      { return productPrefix + id + ":likes" }
func productViewsKey(id string) string      { return productPrefix + id + ":views" }
func productCategoryKey(name string) string { return productCategoryPrefix + name }

// ProductRepository stores products under product:<id> with three index
// families: the full index, the featured index, and one set per category
// name. Category membership tracks the free-text category field verbatim.
type ProductRepository struct {
	kv     ports.KV
	logger *slog.Logger
	nowFn  func() time.Time
}

func NewProductRepository(kv ports.KV, logger *slog.Logger) *ProductRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductRepository{kv: kv, logger: logger, nowFn: func() time.Time { return time.Now().UTC() }}
}

func (r *ProductRepository) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	now := r.nowFn()
	product.ID = newID()
	product.CreatedAt = now
	product.UpdatedAt = now
	product.Likes = 0
	product.Views = 0
	if product.Images == nil {
		product.Images = []string{}
	}

	raw, err := json.Marshal(product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("encode product: %w", err)
	}
	if err := r.kv.Set(ctx, productKey(product.ID), string(raw), 0); err != nil {
		return domain.Product{}, fmt.Errorf("store product: %w", err)
	}
	if err := r.kv.SAdd(ctx, productIndex, product.ID); err != nil {
		return domain.Product{}, fmt.Errorf("index product: %w", err)
	}
	if product.Category != "" {
		if err := r.kv.SAdd(ctx, productCategoryKey(product.Category), product.ID); err != nil {
			return domain.Product{}, fmt.Errorf("index product category: %w", err)
		}
	}
	if product.Featured {
		if err := r.kv.SAdd(ctx, productFeaturedIndex, product.ID); err != nil {
			return domain.Product{}, fmt.Errorf("index featured product: %w", err)
		}
	}
	return product, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	raw, ok := r.kv.Get(ctx, productKey(id))
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	var product domain.Product
	if !decodeDoc(ctx, r.logger, "product", raw, &product) {
		return domain.Product{}, domain.ErrNotFound
	}
	counters := r.kv.MGet(ctx, []string{productLikesKey(id), productViewsKey(id)})
	product.Likes = counterValue(counters[0])
	product.Views = counterValue(counters[1])
	return product, nil
}

// List resolves the filter to one index set, then re-checks the category
// in memory: the index is maintained on a best-effort basis and the
// double check keeps stale members out of responses.
func (r *ProductRepository) List(ctx context.Context, filter ports.ProductFilter) ([]domain.Product, error) {
	var ids []string
	switch {
	case filter.Featured:
		ids = r.kv.SMembers(ctx, productFeaturedIndex)
	case filter.Category != "":
		ids = r.kv.SMembers(ctx, productCategoryKey(filter.Category))
	default:
		ids = r.kv.SMembers(ctx, productIndex)
	}
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKey(id)
	}
	products := make([]domain.Product, 0, len(ids))
	for _, raw := range r.kv.MGet(ctx, keys) {
		if raw == nil {
			continue
		}
		var product domain.Product
		if !decodeDoc(ctx, r.logger, "product", *raw, &product) {
			continue
		}
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		products = append(products, product)
	}

	counterKeys := make([]string, 0, len(products)*2)
	for _, product := range products {
		counterKeys = append(counterKeys, productLikesKey(product.ID), productViewsKey(product.ID))
	}
	counters := r.kv.MGet(ctx, counterKeys)
	for i := range products {
		products[i].Likes = counterValue(counters[i*2])
		products[i].Views = counterValue(counters[i*2+1])
	}

	sort.SliceStable(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, patch ports.Patch) (domain.Product, error) {
	raw, ok := r.kv.Get(ctx, productKey(id))
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	var existing domain.Product
	if !decodeDoc(ctx, r.logger, "product", raw, &existing) {
		return domain.Product{}, domain.ErrNotFound
	}

	delete(patch, "likes")
	delete(patch, "views")
	delete(patch, "_id")

	var updated domain.Product
	if err := mergePatch(raw, patch, &updated); err != nil {
		return domain.Product{}, fmt.Errorf("merge product: %w", err)
	}
	updated.ID = id
	updated.UpdatedAt = r.nowFn()
	updated.Likes = 0
	updated.Views = 0

	encoded, err := json.Marshal(updated)
	if err != nil {
		return domain.Product{}, fmt.Errorf("encode product: %w", err)
	}
	if err := r.kv.Set(ctx, productKey(id), string(encoded), 0); err != nil {
		return domain.Product{}, fmt.Errorf("store product: %w", err)
	}

	if updated.Category != existing.Category {
		if existing.Category != "" {
			if err := r.kv.SRem(ctx, productCategoryKey(existing.Category), id); err != nil {
				return domain.Product{}, fmt.Errorf("deindex product category: %w", err)
			}
		}
		if updated.Category != "" {
			if err := r.kv.SAdd(ctx, productCategoryKey(updated.Category), id); err != nil {
				return domain.Product{}, fmt.Errorf("index product category: %w", err)
			}
		}
	}
	if updated.Featured != existing.Featured {
		if updated.Featured {
			err = r.kv.SAdd(ctx, productFeaturedIndex, id)
		} else {
			err = r.kv.SRem(ctx, productFeaturedIndex, id)
		}
		if err != nil {
			return domain.Product{}, fmt.Errorf("update featured index: %w", err)
		}
	}

	counters := r.kv.MGet(ctx, []string{productLikesKey(id), productViewsKey(id)})
	updated.Likes = counterValue(counters[0])
	updated.Views = counterValue(counters[1])
	return updated, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	product, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.kv.Del(ctx, productKey(id), productLikesKey(id), productViewsKey(id)); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if err := r.kv.SRem(ctx, productIndex, id); err != nil {
		return fmt.Errorf("deindex product: %w", err)
	}
	if product.Category != "" {
		if err := r.kv.SRem(ctx, productCategoryKey(product.Category), id); err != nil {
			return fmt.Errorf("deindex product category: %w", err)
		}
	}
	if product.Featured {
		if err := r.kv.SRem(ctx, productFeaturedIndex, id); err != nil {
			return fmt.Errorf("deindex featured product: %w", err)
		}
	}
	return nil
}

func (r *ProductRepository) IncrementLikes(ctx context.Context, id string, by int64) (int64, error) {
	if _, ok := r.kv.Get(ctx, productKey(id)); !ok {
		return 0, domain.ErrNotFound
	}
	return r.kv.IncrBy(ctx, productLikesKey(id), by)
}

func (r *ProductRepository) IncrementViews(ctx context.Context, id string, by int64) (int64, error) {
	if _, ok := r.kv.Get(ctx, productKey(id)); !ok {
		return 0, domain.ErrNotFound
	}
	return r.kv.IncrBy(ctx, productViewsKey(id), by)
}

func (r *ProductRepository) CountByCategory(ctx context.Context, name string) int64 {
	return r.kv.SCard(ctx, productCategoryKey(name))
}
