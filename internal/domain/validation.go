package domain

import (
	"fmt"
	"strings"
)

// Validation messages are user-facing and therefore French, matching the
// storefront's audience.

func ValidatePlug(p Plug) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: le nom du plug est requis", ErrInvalidInput)
	}
	return nil
}

func ValidateProduct(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: le nom du produit est requis", ErrInvalidInput)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: le prix doit être positif", ErrInvalidInput)
	}
	return nil
}

func ValidateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: le nom de la catégorie est requis", ErrInvalidInput)
	}
	return nil
}

func ValidateApplication(a VendorApplication) error {
	if strings.TrimSpace(a.TelegramID) == "" {
		return fmt.Errorf("%w: l'identifiant Telegram est requis", ErrInvalidInput)
	}
	return nil
}

func ValidateTelegramID(telegramID string) error {
	if strings.TrimSpace(telegramID) == "" {
		return fmt.Errorf("%w: l'identifiant Telegram est requis", ErrInvalidInput)
	}
	return nil
}

// NormalizeCategoryName is the canonical form used by the name lookup key.
// Uniqueness is case-insensitive.
func NormalizeCategoryName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
