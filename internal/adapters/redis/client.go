package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	var client *redis.Client
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, parseErr := redis.ParseURL(redisURL)
		if parseErr != nil {
			return nil, fmt.Errorf("parse redis url: %w", parseErr)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: redisURL})
	}
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// KV adapts go-redis to the store contract: reads log and degrade to zero
// values so a flaky store empties listings instead of failing them, writes
// return the error to the caller.
type KV struct {
	client *redis.Client
	logger *slog.Logger
}

func NewKV(client *redis.Client, logger *slog.Logger) *KV {
	if logger == nil {
		logger = slog.Default()
	}
	return &KV{client: client, logger: logger}
}

func (k *KV) Get(ctx context.Context, key string) (string, bool) {
	val, err := k.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			k.logger.ErrorContext(ctx, "redis get failed", "key", key, "error", err)
		}
		return "", false
	}
	return val, true
}

func (k *KV) MGet(ctx context.Context, keys []string) []*string {
	if len(keys) == 0 {
		return nil
	}
	vals, err := k.client.MGet(ctx, keys...).Result()
	if err != nil {
		k.logger.ErrorContext(ctx, "redis mget failed", "keys", len(keys), "error", err)
		return make([]*string, len(keys))
	}
	out := make([]*string, len(keys))
	for i, v := range vals {
		if s, ok := v.(string); ok {
			out[i] = &s
		}
	}
	return out
}

func (k *KV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return k.client.Set(ctx, key, value, ttl).Err()
}

func (k *KV) MSet(ctx context.Context, pairs map[string]string) error {
	if len(pairs) == 0 {
		return nil
	}
	args := make([]any, 0, len(pairs)*2)
	for key, v := range pairs {
		args = append(args, key, v)
	}
	return k.client.MSet(ctx, args...).Err()
}

func (k *KV) LPush(ctx context.Context, key string, values ...string) error {
	if len(values) == 0 {
		return nil
	}
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return k.client.LPush(ctx, key, args...).Err()
}

func (k *KV) LRange(ctx context.Context, key string, start, stop int64) []string {
	vals, err := k.client.LRange(ctx, key, start, stop).Result()
	if err != nil {
		k.logger.ErrorContext(ctx, "redis lrange failed", "key", key, "error", err)
		return nil
	}
	return vals
}

func (k *KV) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return k.client.Del(ctx, keys...).Err()
}

func (k *KV) IncrBy(ctx context.Context, key string, by int64) (int64, error) {
	return k.client.IncrBy(ctx, key, by).Result()
}

func (k *KV) SAdd(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	args := make([]any, len(members))
	for i, m := range members {
		args[i] = m
	}
	return k.client.SAdd(ctx, key, args...).Err()
}

func (k *KV) SRem(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	args := make([]any, len(members))
	for i, m := range members {
		args[i] = m
	}
	return k.client.SRem(ctx, key, args...).Err()
}

func (k *KV) SMembers(ctx context.Context, key string) []string {
	members, err := k.client.SMembers(ctx, key).Result()
	if err != nil {
		k.logger.ErrorContext(ctx, "redis smembers failed", "key", key, "error", err)
		return nil
	}
	return members
}

func (k *KV) SCard(ctx context.Context, key string) int64 {
	n, err := k.client.SCard(ctx, key).Result()
	if err != nil {
		k.logger.ErrorContext(ctx, "redis scard failed", "key", key, "error", err)
		return 0
	}
	return n
}

func (k *KV) HGetAll(ctx context.Context, key string) map[string]string {
	fields, err := k.client.HGetAll(ctx, key).Result()
	if err != nil {
		k.logger.ErrorContext(ctx, "redis hgetall failed", "key", key, "error", err)
		return nil
	}
	return fields
}

func (k *KV) HSet(ctx context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	args := make([]any, 0, len(fields)*2)
	for f, v := range fields {
		args = append(args, f, v)
	}
	return k.client.HSet(ctx, key, args...).Err()
}

func (k *KV) HIncrBy(ctx context.Context, key, field string, by int64) (int64, error) {
	return k.client.HIncrBy(ctx, key, field, by).Result()
}

func (k *KV) Ping(ctx context.Context) error {
	return k.client.Ping(ctx).Err()
}
