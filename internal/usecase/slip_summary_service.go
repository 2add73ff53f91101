package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/gotlocks/internal/domain/group"
	"github.com/riskibarqy/gotlocks/internal/domain/pick"
	"github.com/riskibarqy/gotlocks/internal/domain/scoring"
	"github.com/riskibarqy/gotlocks/internal/domain/slip"
)

type SlipSummaryService struct {
	groupRepo group.Repository
	slipRepo  slip.Repository
	pickRepo  pick.Repository
	engine    *scoring.Engine
	now       func() time.Time
}

func NewSlipSummaryService(
	groupRepo group.Repository,
	slipRepo slip.Repository,
	pickRepo pick.Repository,
	engine *scoring.Engine,
) *SlipSummaryService {
	if engine == nil {
		engine = scoring.DefaultEngine()
	}
	return &SlipSummaryService{
		groupRepo: groupRepo,
		slipRepo:  slipRepo,
		pickRepo:  pickRepo,
		engine:    engine,
		now:       time.Now,
	}
}

type SlipSummary struct {
	Slip            slip.Slip
	Status          slip.Status
	Mode            scoring.Mode
	Picks           []PickScore
	EarnedPoints    int
	PotentialPoints int
	Record          PickRecord
}

// GetMySummary scores the caller's own picks in one slip.
func (s *SlipSummaryService) GetMySummary(ctx context.Context, groupID, slipID, userID, rawMode string) (SlipSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SlipSummaryService.GetMySummary", groupAttr(groupID), slipAttr(slipID), modeAttr(rawMode))
	defer span.End()

	mode, err := resolveMode(rawMode, scoring.ModeGroupLeaderboard)
	if err != nil {
		return SlipSummary{}, err
	}
	if _, _, err := loadGroupMembership(ctx, s.groupRepo, groupID, userID); err != nil {
		return SlipSummary{}, err
	}
	item, err := loadSlipInGroup(ctx, s.slipRepo, groupID, slipID)
	if err != nil {
		return SlipSummary{}, err
	}

	picks, err := s.pickRepo.ListBySlipAndUser(ctx, item.ID, userID)
	if err != nil {
		return SlipSummary{}, fmt.Errorf("list picks by slip and user: %w", err)
	}

	out := SlipSummary{
		Slip:   item,
		Status: item.Status(s.now()),
		Mode:   mode,
		Picks:  make([]PickScore, 0, len(picks)),
	}
	for _, p := range picks {
		row := scorePick(s.engine, p, mode)
		out.Picks = append(out.Picks, row)
		out.EarnedPoints += row.Points
		if row.PotentialPoints != nil {
			out.PotentialPoints += *row.PotentialPoints
		}
		out.Record.add(p.Result)
	}

	return out, nil
}
