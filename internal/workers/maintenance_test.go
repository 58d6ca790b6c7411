package workers

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	redisadapter "github.com/plugscrtf/marketplace-service/internal/adapters/redis"
	"github.com/plugscrtf/marketplace-service/internal/ports"
)

func newSettingsRepo(t *testing.T) *redisadapter.SettingsRepository {
	t.Helper()
	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisadapter.NewSettingsRepository(redisadapter.NewKV(client, slog.Default()), nil)
}

func TestSweepClearsExpiredMaintenance(t *testing.T) {
	t.Parallel()
	repo := newSettingsRepo(t)
	ctx := context.Background()

	if err := repo.EnsureDefaults(ctx); err != nil {
		t.Fatalf("ensure defaults: %v", err)
	}
	past := time.Now().UTC().Add(-time.Minute).Format(time.RFC3339)
	if _, err := repo.Update(ctx, ports.Patch{"maintenanceMode": true, "maintenanceEndTime": past}, 0); err != nil {
		t.Fatalf("enter maintenance: %v", err)
	}

	sweeper := NewMaintenanceSweeper(repo, nil, time.Hour)
	if err := sweeper.sweepOnce(ctx); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	settings, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if settings.MaintenanceMode {
		t.Fatalf("maintenance mode still set after end time")
	}
	if settings.MaintenanceEndTime != nil {
		t.Fatalf("end time not cleared: %v", settings.MaintenanceEndTime)
	}
}

func TestSweepLeavesActiveMaintenance(t *testing.T) {
	t.Parallel()
	repo := newSettingsRepo(t)
	ctx := context.Background()

	if err := repo.EnsureDefaults(ctx); err != nil {
		t.Fatalf("ensure defaults: %v", err)
	}
	future := time.Now().UTC().Add(time.Hour).Format(time.RFC3339)
	if _, err := repo.Update(ctx, ports.Patch{"maintenanceMode": true, "maintenanceEndTime": future}, 0); err != nil {
		t.Fatalf("enter maintenance: %v", err)
	}

	sweeper := NewMaintenanceSweeper(repo, nil, time.Hour)
	if err := sweeper.sweepOnce(ctx); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	settings, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if !settings.MaintenanceMode {
		t.Fatalf("maintenance mode cleared before its end time")
	}
}
