package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/plugscrtf/marketplace-service/internal/domain"
	"github.com/plugscrtf/marketplace-service/internal/ports"
)

const userStatsPrefix = "userstats:"

func userStatsKey(telegramID string) string { return userStatsPrefix + telegramID }

// UserStatsRepository stores per-user counters as a hash keyed by
// telegramId, so every mutation is a native HINCRBY rather than a
// read-modify-write on a document.
type UserStatsRepository struct {
	kv    ports.KV
	nowFn func() time.Time
}

func NewUserStatsRepository(kv ports.KV) *UserStatsRepository {
	return &UserStatsRepository{kv: kv, nowFn: func() time.Time { return time.Now().UTC() }}
}

func (r *UserStatsRepository) Get(ctx context.Context, telegramID string) (domain.UserStats, error) {
	stats := domain.UserStats{TelegramID: telegramID, Level: 1}
	fields := r.kv.HGetAll(ctx, userStatsKey(telegramID))
	if len(fields) == 0 {
		return stats, nil
	}
	stats.Points = hashInt(fields, "points", 0)
	stats.Level = hashInt(fields, "level", 1)
	stats.BattlesWon = hashInt(fields, "battlesWon", 0)
	stats.BattlesLost = hashInt(fields, "battlesLost", 0)
	if unix := hashInt(fields, "updatedAt", 0); unix > 0 {
		stats.UpdatedAt = time.Unix(unix, 0).UTC()
	}
	return stats, nil
}

func (r *UserStatsRepository) AddPoints(ctx context.Context, telegramID string, by int64) (int64, error) {
	if err := r.ensure(ctx, telegramID); err != nil {
		return 0, err
	}
	total, err := r.kv.HIncrBy(ctx, userStatsKey(telegramID), "points", by)
	if err != nil {
		return 0, fmt.Errorf("add points: %w", err)
	}
	return total, r.touch(ctx, telegramID)
}

func (r *UserStatsRepository) AddLevels(ctx context.Context, telegramID string, by int64) (int64, error) {
	if err := r.ensure(ctx, telegramID); err != nil {
		return 0, err
	}
	level, err := r.kv.HIncrBy(ctx, userStatsKey(telegramID), "level", by)
	if err != nil {
		return 0, fmt.Errorf("add levels: %w", err)
	}
	return level, r.touch(ctx, telegramID)
}

func (r *UserStatsRepository) AddBattleResult(ctx context.Context, telegramID string, won bool) error {
	if err := r.ensure(ctx, telegramID); err != nil {
		return err
	}
	field := "battlesLost"
	if won {
		field = "battlesWon"
	}
	if _, err := r.kv.HIncrBy(ctx, userStatsKey(telegramID), field, 1); err != nil {
		return fmt.Errorf("record battle: %w", err)
	}
	return r.touch(ctx, telegramID)
}

// ensure seeds the base level the first time a telegramId is seen, so level
// increments start from 1 and not 0.
func (r *UserStatsRepository) ensure(ctx context.Context, telegramID string) error {
	if len(r.kv.HGetAll(ctx, userStatsKey(telegramID))) > 0 {
		return nil
	}
	return r.kv.HSet(ctx, userStatsKey(telegramID), map[string]string{"level": "1"})
}

func (r *UserStatsRepository) touch(ctx context.Context, telegramID string) error {
	return r.kv.HSet(ctx, userStatsKey(telegramID), map[string]string{
		"updatedAt": strconv.FormatInt(r.nowFn().Unix(), 10),
	})
}

func hashInt(fields map[string]string, name string, fallback int64) int64 {
	raw, ok := fields[name]
	if !ok {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
