package group

import "context"

type Repository interface {
	GetByID(ctx context.Context, groupID string) (Group, bool, error)
	GetMembership(ctx context.Context, groupID, userID string) (Membership, bool, error)
	ListMembers(ctx context.Context, groupID string) ([]Membership, error)
}
