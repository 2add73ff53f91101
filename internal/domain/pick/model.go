package pick

import (
	"strings"
	"time"
)

// Result is the grading outcome of a pick.
type Result string

const (
	ResultPending  Result = "pending"
	ResultWin      Result = "win"
	ResultLoss     Result = "loss"
	ResultVoid     Result = "void"
	ResultNotFound Result = "not_found"
)

// ParseResult normalizes stored or user supplied result values.
// Empty, null and unknown values are treated as ungraded.
func ParseResult(raw string) Result {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "win", "won":
		return ResultWin
	case "loss", "lost", "lose":
		return ResultLoss
	case "void", "push":
		return ResultVoid
	case "not_found", "notfound", "not-found":
		return ResultNotFound
	default:
		return ResultPending
	}
}

// LookupResult is the strict form of ParseResult used for commissioner input.
func LookupResult(raw string) (Result, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == string(ResultPending) {
		return ResultPending, true
	}
	out := ParseResult(value)
	return out, out != ResultPending
}

func (r Result) IsGraded() bool {
	return r != ResultPending && r != ""
}

func (r Result) String() string {
	if r == "" {
		return string(ResultPending)
	}
	return string(r)
}

type Leg struct {
	Description string
	Odds        string
}

type Pick struct {
	ID              string
	SlipID          string
	GroupID         string
	UserID          string
	Description     string
	Odds            string
	Result          Result
	IsCombo         bool
	Legs            []Leg
	BonusPoints     int
	Points          *int
	DifficultyLabel string
	GradedAt        *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LegOdds returns the raw odds of every leg in order.
func (p Pick) LegOdds() []string {
	out := make([]string, 0, len(p.Legs))
	for _, leg := range p.Legs {
		out = append(out, leg.Odds)
	}
	return out
}
