package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/gotlocks/internal/domain/pick"
	"github.com/riskibarqy/gotlocks/internal/domain/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoringService_Tiers(t *testing.T) {
	t.Parallel()

	service := NewScoringService(nil)

	got, err := service.Tiers(context.Background(), "global")
	require.NoError(t, err)
	assert.Equal(t, scoring.ModeGlobal, got.Mode)
	assert.Equal(t, scoring.DefaultPotentialCap, got.PotentialCap)
	require.Len(t, got.Tiers, 5)
	assert.Equal(t, 100, got.Tiers[4].Points)

	got, err = service.Tiers(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, scoring.ModeGroupLeaderboard, got.Mode)

	_, err = service.Tiers(context.Background(), "weekly")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestScoringService_Preview(t *testing.T) {
	t.Parallel()

	service := NewScoringService(scoring.DefaultEngine())

	got, err := service.Preview(context.Background(), PreviewInput{
		Mode: "groupLeaderboard",
		Picks: []PreviewPickInput{
			{Description: "lock", Odds: "-250", Result: "win"},
			{Description: "dog", Odds: "+300", Result: "won", BonusPoints: 5},
			{Description: "moon", Odds: "+600"},
			{Description: "miss", Odds: "+120", Result: "lost"},
			{Description: "parlay", Legs: []pick.Leg{{Odds: "+100"}, {Odds: "+100"}}},
		},
	})
	require.NoError(t, err)

	require.Len(t, got.Rows, 5)
	assert.Equal(t, "lock", got.Rows[0].Pick.Description)
	assert.Equal(t, 10, got.Rows[0].Points)
	assert.Equal(t, 45, got.Rows[1].Points)
	assert.Equal(t, 0, got.Rows[2].Points)
	require.NotNil(t, got.Rows[2].PotentialPoints)
	assert.Equal(t, 60, *got.Rows[2].PotentialPoints)
	require.NotNil(t, got.Rows[4].Tier)
	assert.Equal(t, 4, got.Rows[4].Tier.Tier)

	assert.Equal(t, 55, got.TotalPoints)
	assert.Equal(t, 100, got.TotalPotential)
	assert.Equal(t, PickRecord{Wins: 2, Losses: 1, Pending: 2}, got.Record)
}

func TestScoringService_Preview_Validation(t *testing.T) {
	t.Parallel()

	service := NewScoringService(nil)

	_, err := service.Preview(context.Background(), PreviewInput{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty batch, got %v", err)
	}

	_, err = service.Preview(context.Background(), PreviewInput{Picks: make([]PreviewPickInput, maxPreviewPicks+1)})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for oversized batch, got %v", err)
	}
}
