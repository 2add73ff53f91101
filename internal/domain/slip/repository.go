package slip

import "context"

type Repository interface {
	GetByID(ctx context.Context, slipID string) (Slip, bool, error)
	ListByGroup(ctx context.Context, groupID string) ([]Slip, error)
	ListAll(ctx context.Context) ([]Slip, error)
}
