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
	plugPrefix      = "plug:"
	plugIndex       = "plugs:index"
	plugActiveIndex = "plugs:active:index"
)

func plugKey(id string) string          { return plugPrefix + id }
func plugLikesKey(id string) string     { return plugPrefix + id + ":likes" }
func plugReferralsKey(id string) string { return plugPrefix + id + ":referrals" }

// PlugRepository stores plugs as JSON documents under plug:<id>. Membership
// of plugs:index and plugs:active:index follows the document's isActive
// state on every mutation; likes and referral counts live in native
// counters next to the document so increments never read-modify-write.
type PlugRepository struct {
	kv     ports.KV
	logger *slog.Logger
	nowFn  func() time.Time
}

func NewPlugRepository(kv ports.KV, logger *slog.Logger) *PlugRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlugRepository{kv: kv, logger: logger, nowFn: func() time.Time { return time.Now().UTC() }}
}

func (r *PlugRepository) Create(ctx context.Context, plug domain.Plug) (domain.Plug, error) {
	now := r.nowFn()
	plug.ID = newID()
	plug.CreatedAt = now
	plug.UpdatedAt = now

	initialLikes := plug.Likes
	initialReferrals := plug.ReferralCount
	plug.Likes = 0
	plug.ReferralCount = 0

	raw, err := json.Marshal(plug)
	if err != nil {
		return domain.Plug{}, fmt.Errorf("encode plug: %w", err)
	}
	if err := r.kv.Set(ctx, plugKey(plug.ID), string(raw), 0); err != nil {
		return domain.Plug{}, fmt.Errorf("store plug: %w", err)
	}
	if err := r.kv.SAdd(ctx, plugIndex, plug.ID); err != nil {
		return domain.Plug{}, fmt.Errorf("index plug: %w", err)
	}
	if plug.IsActive {
		if err := r.kv.SAdd(ctx, plugActiveIndex, plug.ID); err != nil {
			return domain.Plug{}, fmt.Errorf("index active plug: %w", err)
		}
	}
	if initialLikes > 0 {
		if plug.Likes, err = r.kv.IncrBy(ctx, plugLikesKey(plug.ID), initialLikes); err != nil {
			return domain.Plug{}, fmt.Errorf("seed likes: %w", err)
		}
	}
	if initialReferrals > 0 {
		if plug.ReferralCount, err = r.kv.IncrBy(ctx, plugReferralsKey(plug.ID), initialReferrals); err != nil {
			return domain.Plug{}, fmt.Errorf("seed referrals: %w", err)
		}
	}
	return plug, nil
}

func (r *PlugRepository) FindByID(ctx context.Context, id string) (domain.Plug, error) {
	raw, ok := r.kv.Get(ctx, plugKey(id))
	if !ok {
		return domain.Plug{}, domain.ErrNotFound
	}
	var plug domain.Plug
	if !decodeDoc(ctx, r.logger, "plug", raw, &plug) {
		return domain.Plug{}, domain.ErrNotFound
	}
	counters := r.kv.MGet(ctx, []string{plugLikesKey(id), plugReferralsKey(id)})
	plug.Likes = counterValue(counters[0])
	plug.ReferralCount = counterValue(counters[1])
	return plug, nil
}

// List returns active plugs by default, every plug when all is true, sorted
// by likes descending with arbitrary tie order.
func (r *PlugRepository) List(ctx context.Context, all bool) ([]domain.Plug, error) {
	index := plugActiveIndex
	if all {
		index = plugIndex
	}
	ids := r.kv.SMembers(ctx, index)
	if len(ids) == 0 {
		return []domain.Plug{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = plugKey(id)
	}
	plugs := make([]domain.Plug, 0, len(ids))
	for _, raw := range r.kv.MGet(ctx, keys) {
		if raw == nil {
			continue
		}
		var plug domain.Plug
		if decodeDoc(ctx, r.logger, "plug", *raw, &plug) {
			plugs = append(plugs, plug)
		}
	}

	counterKeys := make([]string, 0, len(plugs)*2)
	for _, plug := range plugs {
		counterKeys = append(counterKeys, plugLikesKey(plug.ID), plugReferralsKey(plug.ID))
	}
	counters := r.kv.MGet(ctx, counterKeys)
	for i := range plugs {
		plugs[i].Likes = counterValue(counters[i*2])
		plugs[i].ReferralCount = counterValue(counters[i*2+1])
	}

	sort.SliceStable(plugs, func(i, j int) bool { return plugs[i].Likes > plugs[j].Likes })
	return plugs, nil
}

func (r *PlugRepository) Update(ctx context.Context, id string, patch ports.Patch) (domain.Plug, error) {
	raw, ok := r.kv.Get(ctx, plugKey(id))
	if !ok {
		return domain.Plug{}, domain.ErrNotFound
	}
	var existing domain.Plug
	if !decodeDoc(ctx, r.logger, "plug", raw, &existing) {
		return domain.Plug{}, domain.ErrNotFound
	}

	// Counter fields only move through the increment operations.
	delete(patch, "likes")
	delete(patch, "referralCount")
	delete(patch, "_id")

	var updated domain.Plug
	if err := mergePatch(raw, patch, &updated); err != nil {
		return domain.Plug{}, fmt.Errorf("merge plug: %w", err)
	}
	updated.ID = id
	updated.UpdatedAt = r.nowFn()
	updated.Likes = 0
	updated.ReferralCount = 0

	encoded, err := json.Marshal(updated)
	if err != nil {
		return domain.Plug{}, fmt.Errorf("encode plug: %w", err)
	}
	if err := r.kv.Set(ctx, plugKey(id), string(encoded), 0); err != nil {
		return domain.Plug{}, fmt.Errorf("store plug: %w", err)
	}

	if updated.IsActive != existing.IsActive {
		if updated.IsActive {
			err = r.kv.SAdd(ctx, plugActiveIndex, id)
		} else {
			err = r.kv.SRem(ctx, plugActiveIndex, id)
		}
		if err != nil {
			return domain.Plug{}, fmt.Errorf("update active index: %w", err)
		}
	}

	counters := r.kv.MGet(ctx, []string{plugLikesKey(id), plugReferralsKey(id)})
	updated.Likes = counterValue(counters[0])
	updated.ReferralCount = counterValue(counters[1])
	return updated, nil
}

func (r *PlugRepository) Delete(ctx context.Context, id string) error {
	if _, ok := r.kv.Get(ctx, plugKey(id)); !ok {
		return domain.ErrNotFound
	}
	if err := r.kv.Del(ctx, plugKey(id), plugLikesKey(id), plugReferralsKey(id)); err != nil {
		return fmt.Errorf("delete plug: %w", err)
	}
	if err := r.kv.SRem(ctx, plugIndex, id); err != nil {
		return fmt.Errorf("deindex plug: %w", err)
	}
	if err := r.kv.SRem(ctx, plugActiveIndex, id); err != nil {
		return fmt.Errorf("deindex active plug: %w", err)
	}
	return nil
}

func (r *PlugRepository) IncrementLikes(ctx context.Context, id string, by int64) (int64, error) {
	if _, ok := r.kv.Get(ctx, plugKey(id)); !ok {
		return 0, domain.ErrNotFound
	}
	return r.kv.IncrBy(ctx, plugLikesKey(id), by)
}

func (r *PlugRepository) IncrementReferrals(ctx context.Context, id string, by int64) (int64, error) {
	if _, ok := r.kv.Get(ctx, plugKey(id)); !ok {
		return 0, domain.ErrNotFound
	}
	return r.kv.IncrBy(ctx, plugReferralsKey(id), by)
}
