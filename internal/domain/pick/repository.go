package pick

import "context"

type Repository interface {
	Create(ctx context.Context, item Pick) error
	// CreateWithinLimit stores item only while its user holds fewer than limit
	// picks on the slip, and reports false when the limit is already reached.
	CreateWithinLimit(ctx context.Context, item Pick, limit int) (bool, error)
	GetByID(ctx context.Context, pickID string) (Pick, bool, error)
	ListBySlip(ctx context.Context, slipID string) ([]Pick, error)
	ListBySlipAndUser(ctx context.Context, slipID, userID string) ([]Pick, error)
	UpdateGrade(ctx context.Context, pickID string, result Result, bonusPoints int) error
}
