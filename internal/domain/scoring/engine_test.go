package scoring

import (
	"sync"
	"testing"

	"github.com/riskibarqy/gotlocks/internal/domain/pick"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestGetTierMetaForPick_OddsBrackets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		odds     string
		wantTier int
	}{
		{odds: "-1000", wantTier: 1},
		{odds: "-250", wantTier: 1},
		{odds: "-249", wantTier: 2},
		{odds: "-110", wantTier: 2},
		{odds: "-100", wantTier: 2},
		{odds: "+100", wantTier: 2},
		{odds: "EVEN", wantTier: 2},
		{odds: "+101", wantTier: 3},
		{odds: "+250", wantTier: 3},
		{odds: "+251", wantTier: 4},
		{odds: "+500", wantTier: 4},
		{odds: "+501", wantTier: 5},
		{odds: "+2500", wantTier: 5},
	}

	for _, tt := range tests {
		t.Run(tt.odds, func(t *testing.T) {
			meta, ok := GetTierMetaForPick(TierInput{Odds: tt.odds, Mode: ModeGroupLeaderboard})
			require.True(t, ok)
			assert.Equal(t, tt.wantTier, meta.Tier)
			assert.Equal(t, SourceOdds, meta.Source)
		})
	}
}

func TestGetTierMetaForPick_LabelWinsOverOdds(t *testing.T) {
	t.Parallel()

	meta, ok := GetTierMetaForPick(TierInput{Odds: "-300", Label: "Moonshot", Mode: ModeGlobal})
	require.True(t, ok)
	assert.Equal(t, 5, meta.Tier)
	assert.Equal(t, SourceLabel, meta.Source)
	assert.Equal(t, 100, meta.Points)

	meta, ok = GetTierMetaForPick(TierInput{Label: "t2", Mode: ModeGroupLeaderboard})
	require.True(t, ok)
	assert.Equal(t, 2, meta.Tier)

	meta, ok = GetTierMetaForPick(TierInput{Odds: "+251 to +500", Mode: ModeGroupLeaderboard})
	require.True(t, ok)
	assert.Equal(t, 4, meta.Tier)
	assert.Equal(t, SourceLabel, meta.Source)
}

func TestGetTierMetaForPick_PointsFallback(t *testing.T) {
	t.Parallel()

	meta, ok := GetTierMetaForPick(TierInput{Points: intPtr(25), Mode: ModeGroupLeaderboard})
	require.True(t, ok)
	assert.Equal(t, 3, meta.Tier)
	assert.Equal(t, SourcePoints, meta.Source)

	meta, ok = GetTierMetaForPick(TierInput{Odds: "pick'em", Points: intPtr(45), Mode: ModeGroupLeaderboard})
	require.True(t, ok)
	assert.Equal(t, 4, meta.Tier)

	_, ok = GetTierMetaForPick(TierInput{Points: intPtr(3), Mode: ModeGroupLeaderboard})
	assert.False(t, ok)
}

func TestGetTierMetaForPick_Unresolved(t *testing.T) {
	t.Parallel()

	_, ok := GetTierMetaForPick(TierInput{Mode: ModeGroupLeaderboard})
	assert.False(t, ok)

	_, ok = GetTierMetaForPick(TierInput{Odds: "pick'em", Label: "unknown", Mode: ModeGlobal})
	assert.False(t, ok)
}

func TestGetTierMetaForPick_StableAcrossCalls(t *testing.T) {
	t.Parallel()

	first, ok := GetTierMetaForPick(TierInput{Odds: "+300", Mode: ModeGlobal})
	require.True(t, ok)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, ok := GetTierMetaForPick(TierInput{Odds: "+300", Mode: ModeGlobal})
			assert.True(t, ok)
			assert.Equal(t, first, got)
		}()
	}
	wg.Wait()
}

func TestGetPickPoints(t *testing.T) {
	t.Parallel()

	nonScoring := []pick.Result{pick.ResultPending, "", pick.ResultLoss, pick.ResultVoid, pick.ResultNotFound}
	for _, result := range nonScoring {
		p := pick.Pick{Odds: "+300", Result: result, BonusPoints: 5}
		assert.Equal(t, 0, GetPickPoints(p, ModeGroupLeaderboard), "result=%q", result)
		assert.Equal(t, 0, GetPickPoints(p, ModeGroupLeaderboard), "repeat result=%q", result)
	}

	win := pick.Pick{Odds: "+300", Result: pick.ResultWin, BonusPoints: 5}
	tierPoints, ok := DefaultEngine().TierPoints(4, ModeGroupLeaderboard)
	require.True(t, ok)
	assert.Equal(t, tierPoints+5, GetPickPoints(win, ModeGroupLeaderboard))
	assert.Equal(t, 5, win.BonusPoints)

	unresolved := pick.Pick{Odds: "pick'em", Result: pick.ResultWin, BonusPoints: 3}
	assert.Equal(t, 3, GetPickPoints(unresolved, ModeGroupLeaderboard))

	penalty := pick.Pick{Odds: "-300", Result: pick.ResultWin, BonusPoints: -50}
	assert.Equal(t, 0, GetPickPoints(penalty, ModeGroupLeaderboard))
}

func TestGetBasePointsForPick_NeverExceedsCap(t *testing.T) {
	t.Parallel()

	for _, mode := range AllModes {
		for _, odds := range []string{"-400", "-110", "+200", "+450", "+900"} {
			got, ok := GetBasePointsForPick(pick.Pick{Odds: odds}, mode)
			require.True(t, ok)
			assert.LessOrEqual(t, got, DefaultPotentialCap, "mode=%s odds=%s", mode, odds)
		}
	}

	_, ok := GetBasePointsForPick(pick.Pick{}, ModeGlobal)
	assert.False(t, ok)
}

func TestScenario_LockWinInGroupLeaderboard(t *testing.T) {
	t.Parallel()

	p := pick.Pick{Odds: "-250", Result: pick.ResultWin}
	meta, ok := DefaultEngine().TierMetaForPick(p, ModeGroupLeaderboard)
	require.True(t, ok)
	assert.Equal(t, "-250 or shorter", meta.Bracket)
	assert.Equal(t, meta.Points, GetPickPoints(p, ModeGroupLeaderboard))
}

func TestScenario_PendingMoonshot(t *testing.T) {
	t.Parallel()

	p := pick.Pick{Odds: "+600", Result: pick.ResultPending}
	assert.Equal(t, 0, GetPickPoints(p, ModeGlobal))

	meta, ok := DefaultEngine().TierMetaForPick(p, ModeGlobal)
	require.True(t, ok)
	assert.Equal(t, "+501 and up", meta.Bracket)

	base, ok := GetBasePointsForPick(p, ModeGlobal)
	require.True(t, ok)
	assert.Equal(t, min(meta.Points, DefaultPotentialCap), base)
	assert.Equal(t, 60, base)

	potential, ok := DefaultEngine().PotentialPoints(p, ModeGlobal)
	require.True(t, ok)
	assert.Equal(t, base, potential)

	p.Result = pick.ResultLoss
	_, ok = DefaultEngine().PotentialPoints(p, ModeGlobal)
	assert.False(t, ok)
}

func TestTierMetaForPick_ComboUsesLegs(t *testing.T) {
	t.Parallel()

	p := pick.Pick{
		IsCombo: true,
		Legs: []pick.Leg{
			{Description: "Chiefs ML", Odds: "-110"},
			{Description: "Bills ML", Odds: "-110"},
		},
		Result: pick.ResultWin,
	}
	meta, ok := DefaultEngine().TierMetaForPick(p, ModeGroupLeaderboard)
	require.True(t, ok)
	assert.Equal(t, 4, meta.Tier)
}

func TestTierMetaForPick_ManyLegLongShotComboIsMoonshot(t *testing.T) {
	t.Parallel()

	legs := make([]pick.Leg, 12)
	for i := range legs {
		legs[i] = pick.Leg{Odds: "+99900"}
	}
	meta, ok := DefaultEngine().TierMetaForPick(pick.Pick{IsCombo: true, Legs: legs}, ModeGroupLeaderboard)
	require.True(t, ok)
	assert.Equal(t, 5, meta.Tier)
	assert.Equal(t, "Moonshot", meta.Name)

	huge := []pick.Leg{{Odds: "+9000000000000000000"}, {Odds: "+9000000000000000000"}}
	meta, ok = DefaultEngine().TierMetaForPick(pick.Pick{IsCombo: true, Legs: huge}, ModeGroupLeaderboard)
	require.True(t, ok)
	assert.Equal(t, 5, meta.Tier)
}

func TestFormatTierPrimary(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "T3", FormatTierPrimary(3))
	assert.Equal(t, "T1", FormatTierPrimary(1))
	assert.Equal(t, Placeholder, FormatTierPrimary(0))
}

func TestUnknownModeFallsBackToGroupLeaderboard(t *testing.T) {
	t.Parallel()

	meta, ok := GetTierMetaForPick(TierInput{Odds: "+100", Mode: Mode("weekly")})
	require.True(t, ok)
	assert.Equal(t, ModeGroupLeaderboard, meta.Mode)
}
