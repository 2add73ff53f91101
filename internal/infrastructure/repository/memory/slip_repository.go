package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/gotlocks/internal/domain/slip"
)

type SlipRepository struct {
	mu     sync.RWMutex
	items  map[string]slip.Slip
	orders []string
}

func NewSlipRepository(slips []slip.Slip) *SlipRepository {
	items := make(map[string]slip.Slip, len(slips))
	orders := make([]string, 0, len(slips))

	for _, s := range slips {
		items[s.ID] = s
		orders = append(orders, s.ID)
	}

	return &SlipRepository{
		items:  items,
		orders: orders,
	}
}

func (r *SlipRepository) GetByID(_ context.Context, slipID string) (slip.Slip, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[slipID]
	if !ok {
		return slip.Slip{}, false, nil
	}
	return s, true, nil
}

func (r *SlipRepository) ListByGroup(_ context.Context, groupID string) ([]slip.Slip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]slip.Slip, 0)
	for _, id := range r.orders {
		if s := r.items[id]; s.GroupID == groupID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *SlipRepository) ListAll(_ context.Context) ([]slip.Slip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]slip.Slip, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}
	return out, nil
}
