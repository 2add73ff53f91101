package memory

import (
	"time"

	"github.com/riskibarqy/gotlocks/internal/domain/group"
	"github.com/riskibarqy/gotlocks/internal/domain/pick"
	"github.com/riskibarqy/gotlocks/internal/domain/slip"
)

const (
	GroupIDSundaySharps = "grp-sunday-sharps"
	GroupIDOfficePool   = "grp-office-pool"

	SlipIDWeekOne    = "slip-week-1"
	SlipIDWeekTwo    = "slip-week-2"
	SlipIDVibeNight  = "slip-vibe-mnf"
	SlipIDOfficeWeek = "slip-office-week-2"
)

// Seed is the demo data set served by the memory storage driver.
type Seed struct {
	Groups      []group.Group
	Memberships []group.Membership
	Slips       []slip.Slip
	Picks       []pick.Pick
}

// SeedData builds demo groups around now: one finished slip, one open slip and
// a vibe slip that never counts toward leaderboards.
func SeedData(now time.Time) Seed {
	now = now.UTC().Truncate(time.Hour)
	lastWeek := now.Add(-7 * 24 * time.Hour)
	graded := lastWeek.Add(30 * time.Hour)

	return Seed{
		Groups: []group.Group{
			{ID: GroupIDSundaySharps, Name: "Sunday Sharps", OwnerUserID: "user-commish", InviteCode: "SHARPS", CreatedAt: lastWeek, UpdatedAt: lastWeek},
			{ID: GroupIDOfficePool, Name: "Office Pool", OwnerUserID: "user-dana", InviteCode: "OFFICE", CreatedAt: lastWeek, UpdatedAt: lastWeek},
		},
		Memberships: []group.Membership{
			{GroupID: GroupIDSundaySharps, UserID: "user-commish", Role: group.RoleCommissioner, JoinedAt: lastWeek},
			{GroupID: GroupIDSundaySharps, UserID: "user-alex", Role: group.RoleMember, JoinedAt: lastWeek},
			{GroupID: GroupIDSundaySharps, UserID: "user-sam", Role: group.RoleMember, JoinedAt: lastWeek},
			{GroupID: GroupIDOfficePool, UserID: "user-dana", Role: group.RoleCommissioner, JoinedAt: lastWeek},
			{GroupID: GroupIDOfficePool, UserID: "user-alex", Role: group.RoleMember, JoinedAt: lastWeek},
		},
		Slips: []slip.Slip{
			{
				ID: SlipIDWeekOne, GroupID: GroupIDSundaySharps, Name: "Week 1",
				PickDeadline: lastWeek, ResultsDeadline: lastWeek.Add(36 * time.Hour),
				MaxPicksPerUser: 5,
			},
			{
				ID: SlipIDWeekTwo, GroupID: GroupIDSundaySharps, Name: "Week 2",
				PickDeadline: now.Add(48 * time.Hour), ResultsDeadline: now.Add(84 * time.Hour),
				MaxPicksPerUser: 5,
			},
			{
				ID: SlipIDVibeNight, GroupID: GroupIDSundaySharps, Name: "Monday Night Vibes",
				PickDeadline: now.Add(72 * time.Hour), ResultsDeadline: now.Add(78 * time.Hour),
				IsVibe: true,
			},
			{
				ID: SlipIDOfficeWeek, GroupID: GroupIDOfficePool, Name: "Office Week 2",
				PickDeadline: now.Add(48 * time.Hour), ResultsDeadline: now.Add(84 * time.Hour),
				MaxPicksPerUser: 3,
			},
		},
		Picks: []pick.Pick{
			seedPick("pick-001", SlipIDWeekOne, GroupIDSundaySharps, "user-commish", "Chiefs ML", "-300", pick.ResultWin, 0, &graded),
			seedPick("pick-002", SlipIDWeekOne, GroupIDSundaySharps, "user-commish", "Lions +3.5", "-110", pick.ResultLoss, 0, &graded),
			seedPick("pick-003", SlipIDWeekOne, GroupIDSundaySharps, "user-alex", "Jets ML", "+320", pick.ResultWin, 5, &graded),
			seedPick("pick-004", SlipIDWeekOne, GroupIDSundaySharps, "user-sam", "Bears ML", "+180", pick.ResultVoid, 0, &graded),
			{
				ID: "pick-005", SlipID: SlipIDWeekOne, GroupID: GroupIDSundaySharps, UserID: "user-sam",
				Description: "Sunday double", Result: pick.ResultWin, IsCombo: true,
				Legs: []pick.Leg{
					{Description: "Bills ML", Odds: "-150"},
					{Description: "Eagles ML", Odds: "+130"},
				},
				GradedAt: &graded, CreatedAt: lastWeek.Add(-time.Hour), UpdatedAt: graded,
			},
			seedPick("pick-006", SlipIDWeekTwo, GroupIDSundaySharps, "user-alex", "Dolphins ML", "+650", pick.ResultPending, 0, nil),
			seedPick("pick-007", SlipIDWeekTwo, GroupIDSundaySharps, "user-sam", "Ravens -6.5", "-110", pick.ResultPending, 0, nil),
			seedPick("pick-008", SlipIDVibeNight, GroupIDSundaySharps, "user-alex", "Anytime TD longshot", "+900", pick.ResultPending, 0, nil),
			seedPick("pick-009", SlipIDOfficeWeek, GroupIDOfficePool, "user-dana", "49ers ML", "-250", pick.ResultPending, 0, nil),
		},
	}
}

func seedPick(id, slipID, groupID, userID, description, odds string, result pick.Result, bonus int, gradedAt *time.Time) pick.Pick {
	createdAt := time.Time{}
	if gradedAt != nil {
		createdAt = gradedAt.Add(-48 * time.Hour)
	}
	return pick.Pick{
		ID:          id,
		SlipID:      slipID,
		GroupID:     groupID,
		UserID:      userID,
		Description: description,
		Odds:        odds,
		Result:      result,
		BonusPoints: bonus,
		GradedAt:    gradedAt,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}
