package domain

import (
	"errors"
	"testing"
)

func TestValidatePlug(t *testing.T) {
	t.Parallel()

	if err := ValidatePlug(Plug{Name: "Alpha"}); err != nil {
		t.Fatalf("expected valid plug, got %v", err)
	}
	if err := ValidatePlug(Plug{Name: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank name, got %v", err)
	}
}

func TestValidateProduct(t *testing.T) {
	t.Parallel()

	if err := ValidateProduct(Product{Name: "OG Kush", Price: 12.5}); err != nil {
		t.Fatalf("expected valid product, got %v", err)
	}
	if err := ValidateProduct(Product{Name: ""}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank name, got %v", err)
	}
	if err := ValidateProduct(Product{Name: "Négatif", Price: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for negative price, got %v", err)
	}
}

func TestValidateApplication(t *testing.T) {
	t.Parallel()

	if err := ValidateApplication(VendorApplication{TelegramID: "42"}); err != nil {
		t.Fatalf("expected valid application, got %v", err)
	}
	if err := ValidateApplication(VendorApplication{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input without telegram id, got %v", err)
	}
}

func TestNormalizeCategoryName(t *testing.T) {
	t.Parallel()

	if got := NormalizeCategoryName("  Fleurs CBD "); got != "fleurs cbd" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}
