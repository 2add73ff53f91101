package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/gotlocks/internal/domain/pick"
	"github.com/riskibarqy/gotlocks/internal/domain/scoring"
	"github.com/sourcegraph/conc/iter"
)

const maxPreviewPicks = 200

type ScoringService struct {
	engine *scoring.Engine
}

func NewScoringService(engine *scoring.Engine) *ScoringService {
	if engine == nil {
		engine = scoring.DefaultEngine()
	}
	return &ScoringService{engine: engine}
}

type TierTable struct {
	Mode         scoring.Mode
	PotentialCap int
	Tiers        []scoring.TierMeta
}

func (s *ScoringService) Tiers(ctx context.Context, rawMode string) (TierTable, error) {
	_, span := startUsecaseSpan(ctx, "usecase.ScoringService.Tiers")
	defer span.End()

	mode, err := resolveMode(rawMode, scoring.ModeGroupLeaderboard)
	if err != nil {
		return TierTable{}, err
	}

	return TierTable{
		Mode:         mode,
		PotentialCap: s.engine.PotentialCap(),
		Tiers:        s.engine.Tiers(mode),
	}, nil
}

type PreviewPickInput struct {
	Description     string
	Odds            string
	Result          string
	DifficultyLabel string
	BonusPoints     int
	Points          *int
	Legs            []pick.Leg
}

type PreviewInput struct {
	Mode  string
	Picks []PreviewPickInput
}

type PreviewResult struct {
	Mode           scoring.Mode
	Rows           []PickScore
	TotalPoints    int
	TotalPotential int
	Record         PickRecord
}

// Preview scores ad hoc picks without persisting anything.
func (s *ScoringService) Preview(ctx context.Context, input PreviewInput) (PreviewResult, error) {
	_, span := startUsecaseSpan(ctx, "usecase.ScoringService.Preview")
	defer span.End()

	mode, err := resolveMode(input.Mode, scoring.ModeGroupLeaderboard)
	if err != nil {
		return PreviewResult{}, err
	}
	if len(input.Picks) == 0 {
		return PreviewResult{}, fmt.Errorf("%w: at least one pick is required", ErrInvalidInput)
	}
	if len(input.Picks) > maxPreviewPicks {
		return PreviewResult{}, fmt.Errorf("%w: at most %d picks can be previewed", ErrInvalidInput, maxPreviewPicks)
	}

	rows := iter.Map(input.Picks, func(item *PreviewPickInput) PickScore {
		p := pick.Pick{
			Description:     strings.TrimSpace(item.Description),
			Odds:            strings.TrimSpace(item.Odds),
			Result:          pick.ParseResult(item.Result),
			DifficultyLabel: strings.TrimSpace(item.DifficultyLabel),
			BonusPoints:     item.BonusPoints,
			Points:          item.Points,
			IsCombo:         len(item.Legs) > 0,
			Legs:            item.Legs,
		}
		return scorePick(s.engine, p, mode)
	})

	out := PreviewResult{Mode: mode, Rows: rows}
	for _, row := range rows {
		out.TotalPoints += row.Points
		if row.PotentialPoints != nil {
			out.TotalPotential += *row.PotentialPoints
		}
		out.Record.add(row.Pick.Result)
	}
	return out, nil
}
