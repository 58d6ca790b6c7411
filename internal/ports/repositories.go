package ports

import (
	"context"

	"github.com/plugscrtf/marketplace-service/internal/domain"
)

// Patch is a partial entity update decoded straight from a request body.
// Merging happens at the document level, mirroring the read-merge-write
// semantics every repository implements.
type Patch map[string]any

type ProductFilter struct {
	Category string
	Featured bool
}

type PlugRepository interface {
	Create(ctx context.Context, plug domain.Plug) (domain.Plug, error)
	FindByID(ctx context.Context, id string) (domain.Plug, error)
	List(ctx context.Context, all bool) ([]domain.Plug, error)
	Update(ctx context.Context, id string, patch Patch) (domain.Plug, error)
	Delete(ctx context.Context, id string) error
	IncrementLikes(ctx context.Context, id string, by int64) (int64, error)
	IncrementReferrals(ctx context.Context, id string, by int64) (int64, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product domain.Product) (domain.Product, error)
	FindByID(ctx context.Context, id string) (domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, id string, patch Patch) (domain.Product, error)
	Delete(ctx context.Context, id string) error
	IncrementLikes(ctx context.Context, id string, by int64) (int64, error)
	IncrementViews(ctx context.Context, id string, by int64) (int64, error)
	CountByCategory(ctx context.Context, name string) int64
}

type CategoryRepository interface {
	Create(ctx context.Context, category domain.Category) (domain.Category, error)
	FindByID(ctx context.Context, id string) (domain.Category, error)
	FindByName(ctx context.Context, name string) (domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, id string, patch Patch) (domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id string) (domain.User, error)
	FindByTelegramID(ctx context.Context, telegramID string) (domain.User, error)
	Upsert(ctx context.Context, telegramID string, patch Patch) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) int64
	Delete(ctx context.Context, id string) error
}

type UserStatsRepository interface {
	Get(ctx context.Context, telegramID string) (domain.UserStats, error)
	AddPoints(ctx context.Context, telegramID string, by int64) (int64, error)
	AddLevels(ctx context.Context, telegramID string, by int64) (int64, error)
	AddBattleResult(ctx context.Context, telegramID string, won bool) error
}

type ApplicationRepository interface {
	Create(ctx context.Context, app domain.VendorApplication) (domain.VendorApplication, error)
	FindByID(ctx context.Context, id string) (domain.VendorApplication, error)
	List(ctx context.Context, status domain.ApplicationStatus) ([]domain.VendorApplication, error)
	Update(ctx context.Context, id string, patch Patch) (domain.VendorApplication, error)
	Delete(ctx context.Context, id string) error
}

type SettingsRepository interface {
	Get(ctx context.Context) (domain.Settings, error)
	EnsureDefaults(ctx context.Context) error
	// Update merges the patch over the current document. A non-zero
	// expectedVersion makes the write conditional; zero means last writer
	// wins, matching the original behaviour.
	Update(ctx context.Context, patch Patch, expectedVersion int64) (domain.Settings, error)
}
