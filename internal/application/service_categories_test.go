package application_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/plugscrtf/marketplace-service/internal/domain"
)

func TestDeleteCategoryInUse(t *testing.T) {
	t.Parallel()
	env := newTestService(t)
	ctx := context.Background()

	category, err := env.service.CreateCategory(ctx, domain.Category{Name: "Fleurs"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	product, err := env.service.CreateProduct(ctx, domain.Product{Name: "OG Kush", Category: "Fleurs"})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	err = env.service.DeleteCategory(ctx, category.ID)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict while products remain, got %v", err)
	}
	if !strings.Contains(err.Error(), "1 produit(s)") {
		t.Fatalf("error must carry the product count: %v", err)
	}

	if err := env.service.DeleteProduct(ctx, product.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	if err := env.service.DeleteCategory(ctx, category.ID); err != nil {
		t.Fatalf("delete category after products removed: %v", err)
	}
}

func TestCreateCategoryValidation(t *testing.T) {
	t.Parallel()
	env := newTestService(t)

	if _, err := env.service.CreateCategory(context.Background(), domain.Category{Name: " "}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank name, got %v", err)
	}
}
