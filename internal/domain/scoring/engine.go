package scoring

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/riskibarqy/gotlocks/internal/domain/pick"
)

// TierInput carries everything a tier can be derived from.
type TierInput struct {
	Odds   any
	Label  string
	Points *int
	Mode   Mode
}

// Engine maps picks to tiers and points. It is immutable once built and safe
// for concurrent use.
type Engine struct {
	tiers        []Tier
	tables       Tables
	labelToIndex map[string]int
}

var defaultEngine = mustNewEngine(DefaultTables())

func NewEngine(tables Tables) (*Engine, error) {
	if err := tables.validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		tiers:        DefaultTiers(),
		tables:       tables.clone(),
		labelToIndex: make(map[string]int),
	}
	for idx, tier := range e.tiers {
		for _, label := range []string{
			tier.Name,
			tier.Bracket,
			FormatTierPrimary(tier.Tier),
			"tier " + strconv.Itoa(tier.Tier),
		} {
			e.labelToIndex[normalizeLabel(label)] = idx
		}
	}

	return e, nil
}

func mustNewEngine(tables Tables) *Engine {
	e, err := NewEngine(tables)
	if err != nil {
		panic(err)
	}
	return e
}

// DefaultEngine returns the engine built from the default tables.
func DefaultEngine() *Engine {
	return defaultEngine
}

func (e *Engine) PotentialCap() int {
	return e.tables.PotentialCap
}

// Tiers lists the bracket table with points for the mode.
func (e *Engine) Tiers(mode Mode) []TierMeta {
	mode = normalizeMode(mode)
	out := make([]TierMeta, 0, len(e.tiers))
	for _, tier := range e.tiers {
		out = append(out, e.meta(tier, mode, ""))
	}
	return out
}

// TierPoints returns the canonical points of an ordinal tier.
func (e *Engine) TierPoints(tier int, mode Mode) (int, bool) {
	points, ok := e.tables.Modes[normalizeMode(mode)][tier]
	return points, ok
}

// GetTierMetaForPick resolves a tier from an explicit label, then from the
// odds, then from a legacy points value.
func (e *Engine) GetTierMetaForPick(in TierInput) (TierMeta, bool) {
	mode := normalizeMode(in.Mode)

	if tier, ok := e.tierFromLabel(in.Label); ok {
		return e.meta(tier, mode, SourceLabel), true
	}

	if odds, ok := ParseAmericanOdds(in.Odds); ok {
		if tier, ok := e.tierFromOdds(odds); ok {
			return e.meta(tier, mode, SourceOdds), true
		}
	} else if raw, isString := in.Odds.(string); isString {
		if tier, ok := e.tierFromLabel(raw); ok {
			return e.meta(tier, mode, SourceLabel), true
		}
	}

	if in.Points != nil {
		if tier, ok := e.tierFromPoints(*in.Points, mode); ok {
			return e.meta(tier, mode, SourcePoints), true
		}
	}

	return TierMeta{}, false
}

// TierMetaForPick builds the tier input from a stored pick. Combo picks without
// their own odds are classified by the combined odds of their legs.
func (e *Engine) TierMetaForPick(p pick.Pick, mode Mode) (TierMeta, bool) {
	in := TierInput{
		Odds:   p.Odds,
		Label:  p.DifficultyLabel,
		Points: p.Points,
		Mode:   mode,
	}
	if strings.TrimSpace(p.Odds) == "" && p.IsCombo {
		if odds, ok := ParlayOdds(p.LegOdds()); ok {
			in.Odds = odds
		}
	}

	return e.GetTierMetaForPick(in)
}

// GetBasePointsForPick is the potential value of a pick from its tier alone,
// bounded by the potential display cap.
func (e *Engine) GetBasePointsForPick(p pick.Pick, mode Mode) (int, bool) {
	meta, ok := e.TierMetaForPick(p, mode)
	if !ok {
		return 0, false
	}
	return min(meta.Points, e.tables.PotentialCap), true
}

// PotentialPoints is only defined for picks that are still ungraded.
func (e *Engine) PotentialPoints(p pick.Pick, mode Mode) (int, bool) {
	if p.Result.IsGraded() {
		return 0, false
	}
	return e.GetBasePointsForPick(p, mode)
}

// GetPickPoints is the awarded value of a pick. Only wins score.
func (e *Engine) GetPickPoints(p pick.Pick, mode Mode) int {
	switch p.Result {
	case pick.ResultWin:
		total := p.BonusPoints
		if meta, ok := e.TierMetaForPick(p, mode); ok {
			total += meta.Points
		}
		return max(total, 0)
	case pick.ResultLoss:
		return 0
	case pick.ResultVoid, pick.ResultNotFound:
		return 0
	case pick.ResultPending, "":
		return 0
	default:
		return 0
	}
}

func (e *Engine) meta(tier Tier, mode Mode, source Source) TierMeta {
	return TierMeta{
		Tier:    tier.Tier,
		Name:    tier.Name,
		Short:   FormatTierPrimary(tier.Tier),
		Bracket: tier.Bracket,
		Color:   tier.Color,
		Points:  e.tables.Modes[mode][tier.Tier],
		Mode:    mode,
		Source:  source,
	}
}

func (e *Engine) tierFromLabel(label string) (Tier, bool) {
	key := normalizeLabel(label)
	if key == "" {
		return Tier{}, false
	}
	idx, ok := e.labelToIndex[key]
	if !ok {
		return Tier{}, false
	}
	return e.tiers[idx], true
}

func (e *Engine) tierFromOdds(odds int) (Tier, bool) {
	for _, tier := range e.tiers {
		if tier.Contains(odds) {
			return tier, true
		}
	}
	return Tier{}, false
}

func (e *Engine) tierFromPoints(points int, mode Mode) (Tier, bool) {
	if points <= 0 {
		return Tier{}, false
	}

	table := e.tables.Modes[mode]
	best := -1
	for idx, tier := range e.tiers {
		value := table[tier.Tier]
		if value == points {
			return tier, true
		}
		if value < points && (best < 0 || value > table[e.tiers[best].Tier]) {
			best = idx
		}
	}
	if best < 0 {
		return Tier{}, false
	}
	return e.tiers[best], true
}

func normalizeLabel(label string) string {
	label = strings.ReplaceAll(label, "−", "-")
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range strings.ToLower(label) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Package level helpers evaluate against the default tables.

func GetTierMetaForPick(in TierInput) (TierMeta, bool) {
	return defaultEngine.GetTierMetaForPick(in)
}

func GetBasePointsForPick(p pick.Pick, mode Mode) (int, bool) {
	return defaultEngine.GetBasePointsForPick(p, mode)
}

func GetPickPoints(p pick.Pick, mode Mode) int {
	return defaultEngine.GetPickPoints(p, mode)
}
