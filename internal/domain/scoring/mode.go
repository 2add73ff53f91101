package scoring

import "strings"

// Mode selects which tier-to-points table applies.
type Mode string

const (
	ModeGroupLeaderboard Mode = "groupLeaderboard"
	ModeGlobal           Mode = "global"
)

var AllModes = []Mode{ModeGroupLeaderboard, ModeGlobal}

// ParseMode accepts the canonical names plus a few spellings used by clients.
func ParseMode(raw string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "groupleaderboard", "group_leaderboard", "group-leaderboard", "group":
		return ModeGroupLeaderboard, true
	case "global":
		return ModeGlobal, true
	default:
		return "", false
	}
}

func (m Mode) Valid() bool {
	return m == ModeGroupLeaderboard || m == ModeGlobal
}

func normalizeMode(m Mode) Mode {
	if m.Valid() {
		return m
	}
	return ModeGroupLeaderboard
}
