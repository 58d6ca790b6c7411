package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/plugscrtf/marketplace-service/internal/domain"
	"github.com/plugscrtf/marketplace-service/internal/ports"
)

const (
	userPrefix         = "user:"
	userIndex          = "users:index"
	userTelegramPrefix = "user:telegram:"
)

func userKey(id string) string                 { return userPrefix + id }
func userTelegramKey(telegramID string) string { return userTelegramPrefix + telegramID }

// UserRepository keeps the generated _id as primary key and maintains a
// user:telegram:<tid> lookup, since the bot only ever knows the Telegram
// identity.
type UserRepository struct {
	kv     ports.KV
	logger *slog.Logger
	nowFn  func() time.Time
}

func NewUserRepository(kv ports.KV, logger *slog.Logger) *UserRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserRepository{kv: kv, logger: logger, nowFn: func() time.Time { return time.Now().UTC() }}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	now := r.nowFn()
	user.ID = newID()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.JoinedAt.IsZero() {
		user.JoinedAt = now
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return domain.User{}, fmt.Errorf("encode user: %w", err)
	}
	if err := r.kv.Set(ctx, userKey(user.ID), string(raw), 0); err != nil {
		return domain.User{}, fmt.Errorf("store user: %w", err)
	}
	if err := r.kv.Set(ctx, userTelegramKey(user.TelegramID), user.ID, 0); err != nil {
		return domain.User{}, fmt.Errorf("store telegram lookup: %w", err)
	}
	if err := r.kv.SAdd(ctx, userIndex, user.ID); err != nil {
		return domain.User{}, fmt.Errorf("index user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	raw, ok := r.kv.Get(ctx, userKey(id))
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	var user domain.User
	if !decodeDoc(ctx, r.logger, "user", raw, &user) {
		return domain.User{}, domain.ErrNotFound
	}
	return user, nil
}

func (r *UserRepository) FindByTelegramID(ctx context.Context, telegramID string) (domain.User, error) {
	id, ok := r.kv.Get(ctx, userTelegramKey(telegramID))
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// Upsert is the sync path: create on first sight of a telegramId, merge the
// patch otherwise.
func (r *UserRepository) Upsert(ctx context.Context, telegramID string, patch ports.Patch) (domain.User, error) {
	existing, err := r.FindByTelegramID(ctx, telegramID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, err
		}
		encoded, marshalErr := json.Marshal(patch)
		if marshalErr != nil {
			return domain.User{}, fmt.Errorf("encode user patch: %w", marshalErr)
		}
		var user domain.User
		if unmarshalErr := json.Unmarshal(encoded, &user); unmarshalErr != nil {
			return domain.User{}, fmt.Errorf("decode user patch: %w", unmarshalErr)
		}
		user.TelegramID = telegramID
		return r.Create(ctx, user)
	}
	return r.update(ctx, existing.ID, patch)
}

func (r *UserRepository) update(ctx context.Context, id string, patch ports.Patch) (domain.User, error) {
	raw, ok := r.kv.Get(ctx, userKey(id))
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	delete(patch, "_id")
	delete(patch, "telegramId")

	var updated domain.User
	if err := mergePatch(raw, patch, &updated); err != nil {
		return domain.User{}, fmt.Errorf("merge user: %w", err)
	}
	updated.ID = id
	updated.UpdatedAt = r.nowFn()

	encoded, err := json.Marshal(updated)
	if err != nil {
		return domain.User{}, fmt.Errorf("encode user: %w", err)
	}
	if err := r.kv.Set(ctx, userKey(id), string(encoded), 0); err != nil {
		return domain.User{}, fmt.Errorf("store user: %w", err)
	}
	return updated, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	ids := r.kv.SMembers(ctx, userIndex)
	if len(ids) == 0 {
		return []domain.User{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = userKey(id)
	}
	users := make([]domain.User, 0, len(ids))
	for _, raw := range r.kv.MGet(ctx, keys) {
		if raw == nil {
			continue
		}
		var user domain.User
		if decodeDoc(ctx, r.logger, "user", *raw, &user) {
			users = append(users, user)
		}
	}
	sort.SliceStable(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) int64 {
	return r.kv.SCard(ctx, userIndex)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.kv.Del(ctx, userKey(id), userTelegramKey(user.TelegramID), userStatsKey(user.TelegramID)); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if err := r.kv.SRem(ctx, userIndex, id); err != nil {
		return fmt.Errorf("deindex user: %w", err)
	}
	return nil
}
