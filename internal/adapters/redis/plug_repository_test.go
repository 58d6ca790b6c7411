package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/plugscrtf/marketplace-service/internal/domain"
	"github.com/plugscrtf/marketplace-service/internal/ports"
)

func TestPlugCreateAndFind(t *testing.T) {
	t.Parallel()
	kv := newTestKV(t)
	repo := NewPlugRepository(kv, nil)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.Plug{Name: "Alpha", IsActive: true, Likes: 5})
	if err != nil {
		t.Fatalf("create plug: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if created.Likes != 5 {
		t.Fatalf("expected seeded likes 5, got %d", created.Likes)
	}

	found, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find plug: %v", err)
	}
	if found.Name != "Alpha" || found.Likes != 5 || !found.IsActive {
		t.Fatalf("unexpected plug after roundtrip: %+v", found)
	}
}

func TestPlugListOrderedByLikes(t *testing.T) {
	t.Parallel()
	kv := newTestKV(t)
	repo := NewPlugRepository(kv, nil)
	ctx := context.Background()

	if _, err := repo.Create(ctx, domain.Plug{Name: "Alpha", IsActive: true}); err != nil {
		t.Fatalf("create alpha: %v", err)
	}
	if _, err := repo.Create(ctx, domain.Plug{Name: "Beta", IsActive: true, Likes: 5}); err != nil {
		t.Fatalf("create beta: %v", err)
	}

	plugs, err := repo.List(ctx, true)
	if err != nil {
		t.Fatalf("list plugs: %v", err)
	}
	if len(plugs) != 2 {
		t.Fatalf("expected 2 plugs, got %d", len(plugs))
	}
	if plugs[0].Name != "Beta" || plugs[1].Name != "Alpha" {
		t.Fatalf("expected likes-descending order, got [%s, %s]", plugs[0].Name, plugs[1].Name)
	}
}

func TestPlugActiveIndexFollowsIsActive(t *testing.T) {
	t.Parallel()
	kv := newTestKV(t)
	repo := NewPlugRepository(kv, nil)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.Plug{Name: "Gamma", IsActive: true})
	if err != nil {
		t.Fatalf("create plug: %v", err)
	}

	active, err := repo.List(ctx, false)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active plug, got %d", len(active))
	}

	if _, err := repo.Update(ctx, created.ID, ports.Patch{"isActive": false}); err != nil {
		t.Fatalf("deactivate plug: %v", err)
	}
	active, err = repo.List(ctx, false)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active plugs after deactivation, got %d", len(active))
	}
	all, err := repo.List(ctx, true)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("deactivated plug must stay in the full listing, got %d", len(all))
	}
}

func TestPlugUpdateIgnoresCounterFields(t *testing.T) {
	t.Parallel()
	kv := newTestKV(t)
	repo := NewPlugRepository(kv, nil)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.Plug{Name: "Delta", IsActive: true})
	if err != nil {
		t.Fatalf("create plug: %v", err)
	}
	if _, err := repo.IncrementLikes(ctx, created.ID, 3); err != nil {
		t.Fatalf("increment likes: %v", err)
	}

	updated, err := repo.Update(ctx, created.ID, ports.Patch{"likes": float64(100), "description": "maj"})
	if err != nil {
		t.Fatalf("update plug: %v", err)
	}
	if updated.Likes != 3 {
		t.Fatalf("likes must only move through increments, got %d", updated.Likes)
	}
	if updated.Description != "maj" {
		t.Fatalf("patch field lost: %+v", updated)
	}
}

func TestPlugDeleteRemovesEverything(t *testing.T) {
	t.Parallel()
	kv := newTestKV(t)
	repo := NewPlugRepository(kv, nil)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.Plug{Name: "Epsilon", IsActive: true, Likes: 2})
	if err != nil {
		t.Fatalf("create plug: %v", err)
	}
	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete plug: %v", err)
	}

	if _, err := repo.FindByID(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	for _, index := range []string{plugIndex, plugActiveIndex} {
		for _, id := range kv.SMembers(ctx, index) {
			if id == created.ID {
				t.Fatalf("id still present in %s after delete", index)
			}
		}
	}
	if _, ok := kv.Get(ctx, plugLikesKey(created.ID)); ok {
		t.Fatalf("likes counter survived delete")
	}
	if err := repo.Delete(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete must be not found, got %v", err)
	}
}

func TestPlugIncrementMissing(t *testing.T) {
	t.Parallel()
	repo := NewPlugRepository(newTestKV(t), nil)

	if _, err := repo.IncrementLikes(context.Background(), "absent", 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for missing plug, got %v", err)
	}
}
