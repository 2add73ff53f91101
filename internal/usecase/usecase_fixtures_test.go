package usecase

import (
	"time"

	"github.com/riskibarqy/gotlocks/internal/domain/group"
	"github.com/riskibarqy/gotlocks/internal/domain/pick"
	"github.com/riskibarqy/gotlocks/internal/domain/slip"
)

var fixedNow = time.Date(2026, 9, 6, 12, 0, 0, 0, time.UTC)

type sequenceIDGenerator struct {
	prefix string
	next   int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.next++
	return g.prefix + "-" + string(rune('0'+g.next)), nil
}

func testGroup() group.Group {
	return group.Group{ID: "grp-1", Name: "Sunday Sharps", OwnerUserID: "u1"}
}

func testMembers() []group.Membership {
	return []group.Membership{
		{GroupID: "grp-1", UserID: "u1", Role: group.RoleCommissioner},
		{GroupID: "grp-1", UserID: "u2", Role: group.RoleMember},
		{GroupID: "grp-1", UserID: "u3", Role: group.RoleMember},
		{GroupID: "grp-1", UserID: "u4", Role: group.RoleMember},
	}
}

func openSlip(id string) slip.Slip {
	return slip.Slip{
		ID:              id,
		GroupID:         "grp-1",
		Name:            "Week " + id,
		PickDeadline:    fixedNow.Add(24 * time.Hour),
		ResultsDeadline: fixedNow.Add(72 * time.Hour),
	}
}

func gradedPick(id, slipID, userID, odds string, result pick.Result, bonus int) pick.Pick {
	return pick.Pick{
		ID:          id,
		SlipID:      slipID,
		GroupID:     "grp-1",
		UserID:      userID,
		Description: "pick " + id,
		Odds:        odds,
		Result:      result,
		BonusPoints: bonus,
	}
}
