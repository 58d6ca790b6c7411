package redis

import (
	"context"
	"testing"
	"time"

	"github.com/plugscrtf/marketplace-service/internal/domain"
	"github.com/plugscrtf/marketplace-service/internal/ports"
)

func TestApplicationCreateDefaultsToPending(t *testing.T) {
	t.Parallel()
	repo := NewApplicationRepository(newTestKV(t), nil)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.VendorApplication{TelegramID: "55"})
	if err != nil {
		t.Fatalf("create application: %v", err)
	}
	if created.Status != domain.ApplicationStatusPending {
		t.Fatalf("expected pending status, got %q", created.Status)
	}

	pending, err := repo.List(ctx, domain.ApplicationStatusPending)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != created.ID {
		t.Fatalf("unexpected pending listing: %+v", pending)
	}
}

func TestApplicationStatusChangeLeavesPendingIndex(t *testing.T) {
	t.Parallel()
	repo := NewApplicationRepository(newTestKV(t), nil)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.VendorApplication{TelegramID: "56"})
	if err != nil {
		t.Fatalf("create application: %v", err)
	}

	updated, err := repo.Update(ctx, created.ID, ports.Patch{"status": "approved", "reviewedBy": "admin"})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if updated.Status != domain.ApplicationStatusApproved {
		t.Fatalf("expected approved, got %q", updated.Status)
	}
	if updated.ReviewedAt == nil || time.Since(*updated.ReviewedAt) > time.Minute {
		t.Fatalf("reviewedAt not stamped: %+v", updated.ReviewedAt)
	}

	pending, err := repo.List(ctx, domain.ApplicationStatusPending)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("approved application still listed as pending")
	}
	all, err := repo.List(ctx, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("application missing from full listing")
	}
}

func TestApplicationListFiltersByStatus(t *testing.T) {
	t.Parallel()
	repo := NewApplicationRepository(newTestKV(t), nil)
	ctx := context.Background()

	first, err := repo.Create(ctx, domain.VendorApplication{TelegramID: "60"})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := repo.Create(ctx, domain.VendorApplication{TelegramID: "61"}); err != nil {
		t.Fatalf("create second: %v", err)
	}
	if _, err := repo.Update(ctx, first.ID, ports.Patch{"status": "rejected"}); err != nil {
		t.Fatalf("reject first: %v", err)
	}

	rejected, err := repo.List(ctx, domain.ApplicationStatusRejected)
	if err != nil {
		t.Fatalf("list rejected: %v", err)
	}
	if len(rejected) != 1 || rejected[0].ID != first.ID {
		t.Fatalf("unexpected rejected listing: %+v", rejected)
	}
}
