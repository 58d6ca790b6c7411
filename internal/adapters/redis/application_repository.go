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
	vendorAppPrefix       = "vendorapp:"
	vendorAppIndex        = "vendorapps:index"
	vendorAppPendingIndex = "vendorapps:pending:index"
)

func vendorAppKey(id string) string { return vendorAppPrefix + id }

// ApplicationRepository tracks vendor applications; the pending index only
// holds applications still awaiting review.
type ApplicationRepository struct {
	kv     ports.KV
	logger *slog.Logger
	nowFn  func() time.Time
}

func NewApplicationRepository(kv ports.KV, logger *slog.Logger) *ApplicationRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &ApplicationRepository{kv: kv, logger: logger, nowFn: func() time.Time { return time.Now().UTC() }}
}

func (r *ApplicationRepository) Create(ctx context.Context, app domain.VendorApplication) (domain.VendorApplication, error) {
	now := r.nowFn()
	app.ID = newID()
	app.CreatedAt = now
	app.SubmittedAt = now
	if app.Status == "" {
		app.Status = domain.ApplicationStatusPending
	}

	raw, err := json.Marshal(app)
	if err != nil {
		return domain.VendorApplication{}, fmt.Errorf("encode application: %w", err)
	}
	if err := r.kv.Set(ctx, vendorAppKey(app.ID), string(raw), 0); err != nil {
		return domain.VendorApplication{}, fmt.Errorf("store application: %w", err)
	}
	if err := r.kv.SAdd(ctx, vendorAppIndex, app.ID); err != nil {
		return domain.VendorApplication{}, fmt.Errorf("index application: %w", err)
	}
	if app.Status == domain.ApplicationStatusPending {
		if err := r.kv.SAdd(ctx, vendorAppPendingIndex, app.ID); err != nil {
			return domain.VendorApplication{}, fmt.Errorf("index pending application: %w", err)
		}
	}
	return app, nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (domain.VendorApplication, error) {
	raw, ok := r.kv.Get(ctx, vendorAppKey(id))
	if !ok {
		return domain.VendorApplication{}, domain.ErrNotFound
	}
	var app domain.VendorApplication
	if !decodeDoc(ctx, r.logger, "application", raw, &app) {
		return domain.VendorApplication{}, domain.ErrNotFound
	}
	return app, nil
}

func (r *ApplicationRepository) List(ctx context.Context, status domain.ApplicationStatus) ([]domain.VendorApplication, error) {
	index := vendorAppIndex
	if status == domain.ApplicationStatusPending {
		index = vendorAppPendingIndex
	}
	ids := r.kv.SMembers(ctx, index)
	if len(ids) == 0 {
		return []domain.VendorApplication{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = vendorAppKey(id)
	}
	apps := make([]domain.VendorApplication, 0, len(ids))
	for _, raw := range r.kv.MGet(ctx, keys) {
		if raw == nil {
			continue
		}
		var app domain.VendorApplication
		if !decodeDoc(ctx, r.logger, "application", *raw, &app) {
			continue
		}
		if status != "" && status != domain.ApplicationStatusPending && app.Status != status {
			continue
		}
		apps = append(apps, app)
	}
	sort.SliceStable(apps, func(i, j int) bool { return apps[i].CreatedAt.After(apps[j].CreatedAt) })
	return apps, nil
}

func (r *ApplicationRepository) Update(ctx context.Context, id string, patch ports.Patch) (domain.VendorApplication, error) {
	raw, ok := r.kv.Get(ctx, vendorAppKey(id))
	if !ok {
		return domain.VendorApplication{}, domain.ErrNotFound
	}
	var existing domain.VendorApplication
	if !decodeDoc(ctx, r.logger, "application", raw, &existing) {
		return domain.VendorApplication{}, domain.ErrNotFound
	}

	delete(patch, "_id")

	var updated domain.VendorApplication
	if err := mergePatch(raw, patch, &updated); err != nil {
		return domain.VendorApplication{}, fmt.Errorf("merge application: %w", err)
	}
	updated.ID = id
	if updated.Status != domain.ApplicationStatusPending && existing.Status == domain.ApplicationStatusPending {
		now := r.nowFn()
		updated.ReviewedAt = &now
	}

	encoded, err := json.Marshal(updated)
	if err != nil {
		return domain.VendorApplication{}, fmt.Errorf("encode application: %w", err)
	}
	if err := r.kv.Set(ctx, vendorAppKey(id), string(encoded), 0); err != nil {
		return domain.VendorApplication{}, fmt.Errorf("store application: %w", err)
	}

	if updated.Status == domain.ApplicationStatusPending {
		err = r.kv.SAdd(ctx, vendorAppPendingIndex, id)
	} else {
		err = r.kv.SRem(ctx, vendorAppPendingIndex, id)
	}
	if err != nil {
		return domain.VendorApplication{}, fmt.Errorf("update pending index: %w", err)
	}
	return updated, nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	if err := r.kv.Del(ctx, vendorAppKey(id)); err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	if err := r.kv.SRem(ctx, vendorAppIndex, id); err != nil {
		return fmt.Errorf("deindex application: %w", err)
	}
	if err := r.kv.SRem(ctx, vendorAppPendingIndex, id); err != nil {
		return fmt.Errorf("deindex pending application: %w", err)
	}
	return nil
}
