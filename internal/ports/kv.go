package ports

import (
	"context"
	"time"
)

// KV is the thin client over the remote key-value store. Every method is an
// independent network call; no multi-key atomicity is provided and callers
// must not assume any. Reads swallow transport errors and degrade to zero
// values, writes surface them.
type KV interface {
	Get(ctx context.Context, key string) (string, bool)
	MGet(ctx context.Context, keys []string) []*string
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	MSet(ctx context.Context, pairs map[string]string) error
	Del(ctx context.Context, keys ...string) error
	LPush(ctx context.Context, key string, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) []string
	IncrBy(ctx context.Context, key string, by int64) (int64, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) []string
	SCard(ctx context.Context, key string) int64
	HGetAll(ctx context.Context, key string) map[string]string
	HSet(ctx context.Context, key string, fields map[string]string) error
	HIncrBy(ctx context.Context, key, field string, by int64) (int64, error)
	Ping(ctx context.Context) error
}
