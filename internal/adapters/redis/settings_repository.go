package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/plugscrtf/marketplace-service/internal/domain"
	"github.com/plugscrtf/marketplace-service/internal/ports"
)

const settingsKey = "settings:global"

// SettingsRepository owns the settings:global singleton. Defaults are merged
// under the stored document on every read; the version field supports an
// optimistic check for callers that care about concurrent edits.
type SettingsRepository struct {
	kv     ports.KV
	logger *slog.Logger
	nowFn  func() time.Time
}

func NewSettingsRepository(kv ports.KV, logger *slog.Logger) *SettingsRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsRepository{kv: kv, logger: logger, nowFn: func() time.Time { return time.Now().UTC() }}
}

func (r *SettingsRepository) Get(ctx context.Context) (domain.Settings, error) {
	raw, ok := r.kv.Get(ctx, settingsKey)
	if !ok {
		return domain.DefaultSettings(), nil
	}
	return r.withDefaults(raw)
}

// EnsureDefaults persists the default document once, at startup, so the
// singleton never materialises lazily inside a request.
func (r *SettingsRepository) EnsureDefaults(ctx context.Context) error {
	if _, ok := r.kv.Get(ctx, settingsKey); ok {
		return nil
	}
	settings := domain.DefaultSettings()
	settings.Version = 1
	settings.UpdatedAt = r.nowFn()
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := r.kv.Set(ctx, settingsKey, string(raw), 0); err != nil {
		return fmt.Errorf("store settings: %w", err)
	}
	return nil
}

func (r *SettingsRepository) Update(ctx context.Context, patch ports.Patch, expectedVersion int64) (domain.Settings, error) {
	current, err := r.Get(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	if expectedVersion > 0 && current.Version != expectedVersion {
		return domain.Settings{}, fmt.Errorf("%w: settings version %d, expected %d",
			domain.ErrVersionMismatch, current.Version, expectedVersion)
	}

	delete(patch, "version")
	delete(patch, "updatedAt")

	base, err := json.Marshal(current)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("encode settings: %w", err)
	}
	var updated domain.Settings
	if err := mergePatch(string(base), patch, &updated); err != nil {
		return domain.Settings{}, fmt.Errorf("merge settings: %w", err)
	}
	updated.Version = current.Version + 1
	updated.UpdatedAt = r.nowFn()

	encoded, err := json.Marshal(updated)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("encode settings: %w", err)
	}
	if err := r.kv.Set(ctx, settingsKey, string(encoded), 0); err != nil {
		return domain.Settings{}, fmt.Errorf("store settings: %w", err)
	}
	return updated, nil
}

// withDefaults overlays the stored fields on the default document, so fields
// introduced after the record was written still come back populated.
func (r *SettingsRepository) withDefaults(raw string) (domain.Settings, error) {
	stored := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		r.logger.Error("corrupt settings record, serving defaults", "error", err)
		return domain.DefaultSettings(), nil
	}
	base, err := json.Marshal(domain.DefaultSettings())
	if err != nil {
		return domain.Settings{}, fmt.Errorf("encode defaults: %w", err)
	}
	var merged domain.Settings
	if err := mergePatch(string(base), stored, &merged); err != nil {
		return domain.Settings{}, fmt.Errorf("merge settings: %w", err)
	}
	return merged, nil
}
