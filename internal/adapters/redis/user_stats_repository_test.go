package redis

import (
	"context"
	"testing"
)

func TestUserStatsDefaults(t *testing.T) {
	t.Parallel()
	repo := NewUserStatsRepository(newTestKV(t))

	stats, err := repo.Get(context.Background(), "1000")
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if stats.Points != 0 || stats.Level != 1 {
		t.Fatalf("expected fresh stats with level 1, got %+v", stats)
	}
}

func TestUserStatsAccumulate(t *testing.T) {
	t.Parallel()
	repo := NewUserStatsRepository(newTestKV(t))
	ctx := context.Background()

	if _, err := repo.AddPoints(ctx, "1001", 50); err != nil {
		t.Fatalf("add points: %v", err)
	}
	total, err := repo.AddPoints(ctx, "1001", 25)
	if err != nil {
		t.Fatalf("add points: %v", err)
	}
	if total != 75 {
		t.Fatalf("expected running total 75, got %d", total)
	}

	level, err := repo.AddLevels(ctx, "1001", 1)
	if err != nil {
		t.Fatalf("add level: %v", err)
	}
	if level != 2 {
		t.Fatalf("level must start from 1, got %d", level)
	}

	if err := repo.AddBattleResult(ctx, "1001", true); err != nil {
		t.Fatalf("record win: %v", err)
	}
	if err := repo.AddBattleResult(ctx, "1001", false); err != nil {
		t.Fatalf("record loss: %v", err)
	}

	stats, err := repo.Get(ctx, "1001")
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if stats.Points != 75 || stats.Level != 2 || stats.BattlesWon != 1 || stats.BattlesLost != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
