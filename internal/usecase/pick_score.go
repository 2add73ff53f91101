package usecase

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/gotlocks/internal/domain/pick"
	"github.com/riskibarqy/gotlocks/internal/domain/scoring"
)

// PickScore is a pick together with everything the engine derives from it.
type PickScore struct {
	Pick            pick.Pick
	Tier            *scoring.TierMeta
	TierLabel       string
	Points          int
	PotentialPoints *int
}

// PickRecord counts picks by grading outcome.
type PickRecord struct {
	Wins    int
	Losses  int
	Voids   int
	Pending int
}

func (r *PickRecord) add(result pick.Result) {
	switch result {
	case pick.ResultWin:
		r.Wins++
	case pick.ResultLoss:
		r.Losses++
	case pick.ResultVoid, pick.ResultNotFound:
		r.Voids++
	default:
		r.Pending++
	}
}

func scorePick(engine *scoring.Engine, p pick.Pick, mode scoring.Mode) PickScore {
	out := PickScore{
		Pick:      p,
		TierLabel: scoring.Placeholder,
		Points:    engine.GetPickPoints(p, mode),
	}
	if meta, ok := engine.TierMetaForPick(p, mode); ok {
		out.Tier = &meta
		out.TierLabel = meta.Short
	}
	if potential, ok := engine.PotentialPoints(p, mode); ok {
		out.PotentialPoints = &potential
	}
	return out
}

// resolveMode parses a caller supplied mode, falling back when it is empty.
func resolveMode(raw string, fallback scoring.Mode) (scoring.Mode, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	mode, ok := scoring.ParseMode(raw)
	if !ok {
		return "", fmt.Errorf("%w: unknown scoring mode %q", ErrInvalidInput, raw)
	}
	return mode, nil
}
