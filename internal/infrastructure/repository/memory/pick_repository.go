package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/gotlocks/internal/domain/pick"
)

type PickRepository struct {
	mu     sync.RWMutex
	items  map[string]pick.Pick
	orders []string
	now    func() time.Time
}

func NewPickRepository(picks []pick.Pick) *PickRepository {
	r := &PickRepository{
		items: make(map[string]pick.Pick, len(picks)),
		now:   time.Now,
	}
	for _, p := range picks {
		r.items[p.ID] = clonePick(p)
		r.orders = append(r.orders, p.ID)
	}
	return r
}

func (r *PickRepository) Create(_ context.Context, item pick.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("pick %s already exists", item.ID)
	}
	r.items[item.ID] = clonePick(item)
	r.orders = append(r.orders, item.ID)
	return nil
}

func (r *PickRepository) CreateWithinLimit(_ context.Context, item pick.Pick, limit int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return false, fmt.Errorf("pick %s already exists", item.ID)
	}
	held := 0
	for _, id := range r.orders {
		if p := r.items[id]; p.SlipID == item.SlipID && p.UserID == item.UserID {
			held++
		}
	}
	if held >= limit {
		return false, nil
	}
	r.items[item.ID] = clonePick(item)
	r.orders = append(r.orders, item.ID)
	return true, nil
}

func (r *PickRepository) GetByID(_ context.Context, pickID string) (pick.Pick, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[pickID]
	if !ok {
		return pick.Pick{}, false, nil
	}
	return clonePick(p), true, nil
}

func (r *PickRepository) ListBySlip(_ context.Context, slipID string) ([]pick.Pick, error) {
	return r.filter(func(p pick.Pick) bool { return p.SlipID == slipID }), nil
}

func (r *PickRepository) ListBySlipAndUser(_ context.Context, slipID, userID string) ([]pick.Pick, error) {
	return r.filter(func(p pick.Pick) bool { return p.SlipID == slipID && p.UserID == userID }), nil
}

func (r *PickRepository) UpdateGrade(_ context.Context, pickID string, result pick.Result, bonusPoints int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[pickID]
	if !ok {
		return fmt.Errorf("update pick grade: pick %s not found", pickID)
	}

	now := r.now().UTC()
	p.Result = result
	p.BonusPoints = bonusPoints
	p.UpdatedAt = now
	p.GradedAt = nil
	if result.IsGraded() {
		p.GradedAt = &now
	}
	r.items[pickID] = p
	return nil
}

func (r *PickRepository) filter(keep func(pick.Pick) bool) []pick.Pick {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0)
	for _, id := range r.orders {
		if p := r.items[id]; keep(p) {
			out = append(out, clonePick(p))
		}
	}
	return out
}

func clonePick(p pick.Pick) pick.Pick {
	p.Legs = append([]pick.Leg(nil), p.Legs...)
	if p.Points != nil {
		points := *p.Points
		p.Points = &points
	}
	if p.GradedAt != nil {
		gradedAt := *p.GradedAt
		p.GradedAt = &gradedAt
	}
	return p
}
