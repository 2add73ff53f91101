package cache

import (
	"context"

	"github.com/riskibarqy/gotlocks/internal/domain/group"
	"github.com/riskibarqy/gotlocks/internal/domain/slip"
	basecache "github.com/riskibarqy/gotlocks/internal/platform/cache"
)

// SlipRepository caches slip reads. Slips change rarely and are read on every
// summary and leaderboard request.
type SlipRepository struct {
	next  slip.Repository
	cache *basecache.Store
}

func NewSlipRepository(next slip.Repository, cache *basecache.Store) *SlipRepository {
	return &SlipRepository{next: next, cache: cache}
}

func (r *SlipRepository) GetByID(ctx context.Context, slipID string) (slip.Slip, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "slip:id:"+slipID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, slipID)
		if err != nil {
			return nil, err
		}
		return cachedSlipByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return slip.Slip{}, false, err
	}

	cached, _ := v.(cachedSlipByID)
	return cached.value, cached.exists, nil
}

func (r *SlipRepository) ListByGroup(ctx context.Context, groupID string) ([]slip.Slip, error) {
	return r.list(ctx, "slip:group:"+groupID, func(ctx context.Context) ([]slip.Slip, error) {
		return r.next.ListByGroup(ctx, groupID)
	})
}

func (r *SlipRepository) ListAll(ctx context.Context) ([]slip.Slip, error) {
	return r.list(ctx, "slip:all", r.next.ListAll)
}

func (r *SlipRepository) list(ctx context.Context, key string, load func(context.Context) ([]slip.Slip, error)) ([]slip.Slip, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return append([]slip.Slip(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]slip.Slip)
	return append([]slip.Slip(nil), items...), nil
}

type cachedSlipByID struct {
	value  slip.Slip
	exists bool
}

// GroupRepository caches group lookups. Memberships are not cached so joins and
// role changes apply immediately.
type GroupRepository struct {
	group.Repository
	cache *basecache.Store
}

func NewGroupRepository(next group.Repository, cache *basecache.Store) *GroupRepository {
	return &GroupRepository{Repository: next, cache: cache}
}

func (r *GroupRepository) GetByID(ctx context.Context, groupID string) (group.Group, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "group:id:"+groupID, func(ctx context.Context) (any, error) {
		item, exists, err := r.Repository.GetByID(ctx, groupID)
		if err != nil {
			return nil, err
		}
		return cachedGroupByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return group.Group{}, false, err
	}

	cached, _ := v.(cachedGroupByID)
	return cached.value, cached.exists, nil
}

type cachedGroupByID struct {
	value  group.Group
	exists bool
}
