package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/gotlocks/internal/domain/group"
)

type GroupRepository struct {
	mu          sync.RWMutex
	groups      map[string]group.Group
	memberships map[string]map[string]group.Membership
}

func NewGroupRepository(groups []group.Group, memberships []group.Membership) *GroupRepository {
	r := &GroupRepository{
		groups:      make(map[string]group.Group, len(groups)),
		memberships: make(map[string]map[string]group.Membership),
	}
	for _, g := range groups {
		r.groups[g.ID] = g
	}
	for _, m := range memberships {
		byUser, ok := r.memberships[m.GroupID]
		if !ok {
			byUser = make(map[string]group.Membership)
			r.memberships[m.GroupID] = byUser
		}
		byUser[m.UserID] = m
	}
	return r
}

func (r *GroupRepository) GetByID(_ context.Context, groupID string) (group.Group, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.groups[groupID]
	if !ok {
		return group.Group{}, false, nil
	}
	return g, true, nil
}

func (r *GroupRepository) GetMembership(_ context.Context, groupID, userID string) (group.Membership, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.memberships[groupID][userID]
	if !ok {
		return group.Membership{}, false, nil
	}
	return m, true, nil
}

func (r *GroupRepository) ListMembers(_ context.Context, groupID string) ([]group.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]group.Membership, 0, len(r.memberships[groupID]))
	for _, m := range r.memberships[groupID] {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}
