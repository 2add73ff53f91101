package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/gotlocks/internal/domain/group"
	"github.com/riskibarqy/gotlocks/internal/domain/pick"
	"github.com/riskibarqy/gotlocks/internal/domain/scoring"
	"github.com/riskibarqy/gotlocks/internal/domain/slip"
	"github.com/riskibarqy/gotlocks/internal/platform/id"
	"github.com/riskibarqy/gotlocks/internal/platform/logging"
)

const minComboLegs = 2

type PickService struct {
	groupRepo group.Repository
	slipRepo  slip.Repository
	pickRepo  pick.Repository
	engine    *scoring.Engine
	idGen     id.Generator
	logger    *logging.Logger
	now       func() time.Time
}

func NewPickService(
	groupRepo group.Repository,
	slipRepo slip.Repository,
	pickRepo pick.Repository,
	engine *scoring.Engine,
	idGen id.Generator,
	logger *logging.Logger,
) *PickService {
	if engine == nil {
		engine = scoring.DefaultEngine()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PickService{
		groupRepo: groupRepo,
		slipRepo:  slipRepo,
		pickRepo:  pickRepo,
		engine:    engine,
		idGen:     idGen,
		logger:    logger,
		now:       time.Now,
	}
}

type SubmitPickInput struct {
	GroupID         string
	SlipID          string
	UserID          string
	Description     string
	Odds            string
	DifficultyLabel string
	Legs            []pick.Leg
}

// Submit stores a new pending pick while the slip is still open.
func (s *PickService) Submit(ctx context.Context, input SubmitPickInput) (PickScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.Submit", groupAttr(input.GroupID), slipAttr(input.SlipID))
	defer span.End()

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return PickScore{}, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}

	if _, _, err := loadGroupMembership(ctx, s.groupRepo, input.GroupID, input.UserID); err != nil {
		return PickScore{}, err
	}
	item, err := loadSlipInGroup(ctx, s.slipRepo, input.GroupID, input.SlipID)
	if err != nil {
		return PickScore{}, err
	}

	now := s.now().UTC()
	if !item.AcceptsPicks(now) {
		return PickScore{}, fmt.Errorf("%w: slip=%s is %s and no longer accepts picks", ErrConflict, item.ID, item.Status(now))
	}

	legs, err := normalizeLegs(input.Legs)
	if err != nil {
		return PickScore{}, err
	}
	if odds, ok := scoring.ParseAmericanOdds(input.Odds); ok && !scoring.WithinOddsLimit(odds) {
		return PickScore{}, fmt.Errorf("%w: odds %q exceed ±%d", ErrInvalidInput, input.Odds, scoring.MaxAmericanOdds)
	}

	candidate := pick.Pick{
		SlipID:          item.ID,
		GroupID:         item.GroupID,
		UserID:          strings.TrimSpace(input.UserID),
		Description:     description,
		Odds:            strings.TrimSpace(input.Odds),
		Result:          pick.ResultPending,
		IsCombo:         len(legs) > 0,
		Legs:            legs,
		DifficultyLabel: strings.TrimSpace(input.DifficultyLabel),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, ok := s.engine.TierMetaForPick(candidate, scoring.ModeGroupLeaderboard); !ok {
		return PickScore{}, fmt.Errorf("%w: odds %q do not map to a tier", ErrInvalidInput, candidate.Odds)
	}

	pickID, err := s.idGen.NewID()
	if err != nil {
		return PickScore{}, fmt.Errorf("generate pick id: %w", err)
	}
	candidate.ID = pickID

	if item.MaxPicksPerUser > 0 {
		created, err := s.pickRepo.CreateWithinLimit(ctx, candidate, item.MaxPicksPerUser)
		if err != nil {
			return PickScore{}, fmt.Errorf("create pick: %w", err)
		}
		if !created {
			return PickScore{}, fmt.Errorf("%w: slip=%s allows %d picks per user", ErrConflict, item.ID, item.MaxPicksPerUser)
		}
	} else if err := s.pickRepo.Create(ctx, candidate); err != nil {
		return PickScore{}, fmt.Errorf("create pick: %w", err)
	}

	s.logger.InfoContext(ctx, "pick submitted",
		"pick_id", candidate.ID,
		"slip_id", candidate.SlipID,
		"user_id", candidate.UserID,
		"combo", candidate.IsCombo,
	)
	return scorePick(s.engine, candidate, scoring.ModeGroupLeaderboard), nil
}

type GradePickInput struct {
	GroupID     string
	PickID      string
	ActorUserID string
	Result      string
	BonusPoints *int
}

// Grade lets a commissioner set the result and bonus of a pick by hand.
func (s *PickService) Grade(ctx context.Context, input GradePickInput) (PickScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.Grade", groupAttr(input.GroupID))
	defer span.End()

	result, ok := pick.LookupResult(input.Result)
	if !ok {
		return PickScore{}, fmt.Errorf("%w: unknown result %q", ErrInvalidInput, input.Result)
	}
	pickID := strings.TrimSpace(input.PickID)
	if pickID == "" {
		return PickScore{}, fmt.Errorf("%w: pick id is required", ErrInvalidInput)
	}

	g, membership, err := loadGroupMembership(ctx, s.groupRepo, input.GroupID, input.ActorUserID)
	if err != nil {
		return PickScore{}, err
	}
	if !group.IsCommissioner(g, &membership, strings.TrimSpace(input.ActorUserID)) {
		return PickScore{}, fmt.Errorf("%w: only the commissioner can grade picks", ErrForbidden)
	}

	item, exists, err := s.pickRepo.GetByID(ctx, pickID)
	if err != nil {
		return PickScore{}, fmt.Errorf("get pick: %w", err)
	}
	if !exists || item.GroupID != g.ID {
		return PickScore{}, fmt.Errorf("%w: pick=%s", ErrNotFound, pickID)
	}

	bonus := item.BonusPoints
	if input.BonusPoints != nil {
		bonus = *input.BonusPoints
	}

	if err := s.pickRepo.UpdateGrade(ctx, item.ID, result, bonus); err != nil {
		return PickScore{}, fmt.Errorf("update pick grade: %w", err)
	}

	now := s.now().UTC()
	item.Result = result
	item.BonusPoints = bonus
	item.UpdatedAt = now
	item.GradedAt = nil
	if result.IsGraded() {
		item.GradedAt = &now
	}

	s.logger.InfoContext(ctx, "pick graded by commissioner",
		"pick_id", item.ID,
		"group_id", g.ID,
		"result", result.String(),
		"bonus_points", bonus,
		"actor_user_id", input.ActorUserID,
	)
	return scorePick(s.engine, item, scoring.ModeGroupLeaderboard), nil
}

func normalizeLegs(legs []pick.Leg) ([]pick.Leg, error) {
	if len(legs) == 0 {
		return nil, nil
	}
	if len(legs) < minComboLegs {
		return nil, fmt.Errorf("%w: a combo needs at least %d legs", ErrInvalidInput, minComboLegs)
	}

	out := make([]pick.Leg, 0, len(legs))
	for idx, leg := range legs {
		odds := strings.TrimSpace(leg.Odds)
		value, ok := scoring.ParseAmericanOdds(odds)
		if !ok {
			return nil, fmt.Errorf("%w: leg %d has invalid odds %q", ErrInvalidInput, idx+1, leg.Odds)
		}
		if !scoring.WithinOddsLimit(value) {
			return nil, fmt.Errorf("%w: leg %d odds %q exceed ±%d", ErrInvalidInput, idx+1, leg.Odds, scoring.MaxAmericanOdds)
		}
		out = append(out, pick.Leg{
			Description: strings.TrimSpace(leg.Description),
			Odds:        odds,
		})
	}
	return out, nil
}
