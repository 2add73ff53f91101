package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/gotlocks/internal/domain/grading"
)

const defaultGradingRunCapacity = 500

// GradingRunRepository keeps the most recent relay runs in a bounded ring.
type GradingRunRepository struct {
	mu       sync.RWMutex
	runs     []grading.Run
	capacity int
}

func NewGradingRunRepository(capacity int) *GradingRunRepository {
	if capacity <= 0 {
		capacity = defaultGradingRunCapacity
	}
	return &GradingRunRepository{capacity: capacity}
}

func (r *GradingRunRepository) RecordRun(_ context.Context, run grading.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.runs = append(r.runs, run)
	if overflow := len(r.runs) - r.capacity; overflow > 0 {
		r.runs = append([]grading.Run(nil), r.runs[overflow:]...)
	}
	return nil
}

func (r *GradingRunRepository) ListRecentRuns(_ context.Context, limit int) ([]grading.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.runs) {
		limit = len(r.runs)
	}
	out := make([]grading.Run, 0, limit)
	for i := len(r.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.runs[i])
	}
	return out, nil
}
