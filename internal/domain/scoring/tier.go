package scoring

import (
	"math"
	"strconv"
)

// Placeholder is rendered wherever a tier cannot be resolved.
const Placeholder = "—"

// Tier is a difficulty bucket derived from odds magnitude.
type Tier struct {
	Tier    int
	Name    string
	Bracket string
	MinOdds int
	MaxOdds int
	Color   string
}

func (t Tier) Contains(odds int) bool {
	return odds >= t.MinOdds && odds <= t.MaxOdds
}

// Source records which input resolved a tier.
type Source string

const (
	SourceLabel  Source = "label"
	SourceOdds   Source = "odds"
	SourcePoints Source = "points"
)

// TierMeta is a resolved tier together with its points for one mode.
type TierMeta struct {
	Tier    int
	Name    string
	Short   string
	Bracket string
	Color   string
	Points  int
	Mode    Mode
	Source  Source
}

// The bracket table mirrors the one shown when a pick is submitted.
var defaultTiers = []Tier{
	{Tier: 1, Name: "Lock", Bracket: "-250 or shorter", MinOdds: math.MinInt, MaxOdds: -250, Color: "#22c55e"},
	{Tier: 2, Name: "Favorite", Bracket: "-249 to even", MinOdds: -249, MaxOdds: 100, Color: "#3b82f6"},
	{Tier: 3, Name: "Underdog", Bracket: "+101 to +250", MinOdds: 101, MaxOdds: 250, Color: "#a855f7"},
	{Tier: 4, Name: "Long Shot", Bracket: "+251 to +500", MinOdds: 251, MaxOdds: 500, Color: "#f97316"},
	{Tier: 5, Name: "Moonshot", Bracket: "+501 and up", MinOdds: 501, MaxOdds: math.MaxInt, Color: "#ef4444"},
}

// DefaultTiers returns a copy of the bracket table.
func DefaultTiers() []Tier {
	return append([]Tier(nil), defaultTiers...)
}

// FormatTierPrimary renders the short label of an ordinal tier, e.g. "T3".
func FormatTierPrimary(tier int) string {
	if tier <= 0 {
		return Placeholder
	}
	return "T" + strconv.Itoa(tier)
}
