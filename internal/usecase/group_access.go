package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/gotlocks/internal/domain/group"
	"github.com/riskibarqy/gotlocks/internal/domain/slip"
)

func loadGroupMembership(ctx context.Context, groupRepo group.Repository, groupID, userID string) (group.Group, group.Membership, error) {
	groupID = strings.TrimSpace(groupID)
	userID = strings.TrimSpace(userID)
	if groupID == "" {
		return group.Group{}, group.Membership{}, fmt.Errorf("%w: group id is required", ErrInvalidInput)
	}
	if userID == "" {
		return group.Group{}, group.Membership{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	g, exists, err := groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return group.Group{}, group.Membership{}, fmt.Errorf("get group: %w", err)
	}
	if !exists {
		return group.Group{}, group.Membership{}, fmt.Errorf("%w: group=%s", ErrNotFound, groupID)
	}

	membership, isMember, err := groupRepo.GetMembership(ctx, groupID, userID)
	if err != nil {
		return group.Group{}, group.Membership{}, fmt.Errorf("get group membership: %w", err)
	}
	if !isMember {
		return group.Group{}, group.Membership{}, fmt.Errorf("%w: user is not a member of group=%s", ErrForbidden, groupID)
	}

	return g, membership, nil
}

func loadSlipInGroup(ctx context.Context, slipRepo slip.Repository, groupID, slipID string) (slip.Slip, error) {
	slipID = strings.TrimSpace(slipID)
	if slipID == "" {
		return slip.Slip{}, fmt.Errorf("%w: slip id is required", ErrInvalidInput)
	}

	item, exists, err := slipRepo.GetByID(ctx, slipID)
	if err != nil {
		return slip.Slip{}, fmt.Errorf("get slip: %w", err)
	}
	if !exists || item.GroupID != strings.TrimSpace(groupID) {
		return slip.Slip{}, fmt.Errorf("%w: slip=%s", ErrNotFound, slipID)
	}

	return item, nil
}
