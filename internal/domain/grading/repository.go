package grading

import "context"

type Repository interface {
	RecordRun(ctx context.Context, run Run) error
	ListRecentRuns(ctx context.Context, limit int) ([]Run, error)
}
