package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/plugscrtf/marketplace-service/internal/domain"
	"github.com/plugscrtf/marketplace-service/internal/ports"
)

func TestUserUpsertCreatesThenUpdates(t *testing.T) {
	t.Parallel()
	repo := NewUserRepository(newTestKV(t), nil)
	ctx := context.Background()

	created, err := repo.Upsert(ctx, "42", ports.Patch{"telegramId": "42", "username": "jean"})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if created.ID == "" || created.TelegramID != "42" || created.Username != "jean" {
		t.Fatalf("unexpected created user: %+v", created)
	}

	updated, err := repo.Upsert(ctx, "42", ports.Patch{"username": "jeanne", "isPremium": true})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("upsert must not mint a second user: %s vs %s", updated.ID, created.ID)
	}
	if updated.Username != "jeanne" || !updated.IsPremium {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if n := repo.Count(ctx); n != 1 {
		t.Fatalf("expected 1 user, got %d", n)
	}
}

func TestUserFindByTelegramID(t *testing.T) {
	t.Parallel()
	repo := NewUserRepository(newTestKV(t), nil)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.User{TelegramID: "777", Username: "sam"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	found, err := repo.FindByTelegramID(ctx, "777")
	if err != nil {
		t.Fatalf("find by telegram id: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("lookup returned wrong user: %+v", found)
	}
}

func TestUserDeleteRemovesLookupAndStats(t *testing.T) {
	t.Parallel()
	kv := newTestKV(t)
	repo := NewUserRepository(kv, nil)
	stats := NewUserStatsRepository(kv)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.User{TelegramID: "99"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := stats.AddPoints(ctx, "99", 10); err != nil {
		t.Fatalf("add points: %v", err)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := repo.FindByTelegramID(ctx, "99"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("telegram lookup must be gone, got %v", err)
	}
	if fields := kv.HGetAll(ctx, userStatsKey("99")); len(fields) != 0 {
		t.Fatalf("stats hash survived delete: %v", fields)
	}
}
