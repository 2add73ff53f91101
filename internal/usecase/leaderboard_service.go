package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/gotlocks/internal/domain/group"
	"github.com/riskibarqy/gotlocks/internal/domain/pick"
	"github.com/riskibarqy/gotlocks/internal/domain/scoring"
	"github.com/riskibarqy/gotlocks/internal/domain/slip"
	"github.com/riskibarqy/gotlocks/internal/platform/logging"
)

const defaultLeaderboardWorkers = 8

type LeaderboardScope string

const (
	LeaderboardScopeSlip   LeaderboardScope = "slip"
	LeaderboardScopeGroup  LeaderboardScope = "group"
	LeaderboardScopeGlobal LeaderboardScope = "global"
)

type LeaderboardEntry struct {
	Rank       int
	UserID     string
	Points     int
	PicksCount int
	Record     PickRecord
}

type Leaderboard struct {
	Scope     LeaderboardScope
	ScopeID   string
	Mode      scoring.Mode
	SlipCount int
	Entries   []LeaderboardEntry
}

type LeaderboardService struct {
	groupRepo group.Repository
	slipRepo  slip.Repository
	pickRepo  pick.Repository
	engine    *scoring.Engine
	workers   int
	logger    *logging.Logger
}

func NewLeaderboardService(
	groupRepo group.Repository,
	slipRepo slip.Repository,
	pickRepo pick.Repository,
	engine *scoring.Engine,
	workers int,
	logger *logging.Logger,
) *LeaderboardService {
	if engine == nil {
		engine = scoring.DefaultEngine()
	}
	if workers <= 0 {
		workers = defaultLeaderboardWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeaderboardService{
		groupRepo: groupRepo,
		slipRepo:  slipRepo,
		pickRepo:  pickRepo,
		engine:    engine,
		workers:   workers,
		logger:    logger,
	}
}

// SlipLeaderboard ranks the members of a group by their points in one slip.
func (s *LeaderboardService) SlipLeaderboard(ctx context.Context, groupID, slipID, userID, rawMode string) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.SlipLeaderboard", groupAttr(groupID), slipAttr(slipID), modeAttr(rawMode))
	defer span.End()

	mode, err := resolveMode(rawMode, scoring.ModeGroupLeaderboard)
	if err != nil {
		return Leaderboard{}, err
	}
	if _, _, err := loadGroupMembership(ctx, s.groupRepo, groupID, userID); err != nil {
		return Leaderboard{}, err
	}
	item, err := loadSlipInGroup(ctx, s.slipRepo, groupID, slipID)
	if err != nil {
		return Leaderboard{}, err
	}

	members, err := s.groupRepo.ListMembers(ctx, item.GroupID)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("list group members: %w", err)
	}
	picks, err := s.pickRepo.ListBySlip(ctx, item.ID)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("list picks by slip: %w", err)
	}

	totals := newLeaderboardTotals(members)
	totals.addPicks(s.engine, picks, mode)

	return Leaderboard{
		Scope:     LeaderboardScopeSlip,
		ScopeID:   item.ID,
		Mode:      mode,
		SlipCount: 1,
		Entries:   totals.ranked(),
	}, nil
}

// GroupLeaderboard ranks members across every leaderboard slip of the group.
func (s *LeaderboardService) GroupLeaderboard(ctx context.Context, groupID, userID, rawMode string) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.GroupLeaderboard", groupAttr(groupID), modeAttr(rawMode))
	defer span.End()

	mode, err := resolveMode(rawMode, scoring.ModeGroupLeaderboard)
	if err != nil {
		return Leaderboard{}, err
	}
	g, _, err := loadGroupMembership(ctx, s.groupRepo, groupID, userID)
	if err != nil {
		return Leaderboard{}, err
	}

	members, err := s.groupRepo.ListMembers(ctx, g.ID)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("list group members: %w", err)
	}
	slips, err := s.slipRepo.ListByGroup(ctx, g.ID)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("list slips by group: %w", err)
	}
	slips = leaderboardSlips(slips)

	picks, err := s.loadPicks(ctx, slips)
	if err != nil {
		return Leaderboard{}, err
	}

	totals := newLeaderboardTotals(members)
	totals.addPicks(s.engine, picks, mode)

	return Leaderboard{
		Scope:     LeaderboardScopeGroup,
		ScopeID:   g.ID,
		Mode:      mode,
		SlipCount: len(slips),
		Entries:   totals.ranked(),
	}, nil
}

// GlobalLeaderboard ranks every user with picks across all groups.
func (s *LeaderboardService) GlobalLeaderboard(ctx context.Context, rawMode string) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.GlobalLeaderboard", modeAttr(rawMode))
	defer span.End()

	mode, err := resolveMode(rawMode, scoring.ModeGlobal)
	if err != nil {
		return Leaderboard{}, err
	}

	slips, err := s.slipRepo.ListAll(ctx)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("list slips: %w", err)
	}
	slips = leaderboardSlips(slips)

	picks, err := s.loadPicks(ctx, slips)
	if err != nil {
		return Leaderboard{}, err
	}

	totals := newLeaderboardTotals(nil)
	totals.addPicks(s.engine, picks, mode)

	return Leaderboard{
		Scope:     LeaderboardScopeGlobal,
		Mode:      mode,
		SlipCount: len(slips),
		Entries:   totals.ranked(),
	}, nil
}

func (s *LeaderboardService) loadPicks(ctx context.Context, slips []slip.Slip) ([]pick.Pick, error) {
	if len(slips) == 0 {
		return nil, nil
	}

	pool, err := ants.NewPool(min(s.workers, len(slips)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		out      []pick.Pick
		firstErr error
		workers  sync.WaitGroup
	)
	for _, item := range slips {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			rows, err := s.pickRepo.ListBySlip(ctx, item.ID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("list picks by slip=%s: %w", item.ID, err)
				}
				return
			}
			out = append(out, rows...)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	if firstErr != nil {
		s.logger.WarnContext(ctx, "load leaderboard picks failed",
			"slips", len(slips),
			"error", firstErr,
		)
		return nil, firstErr
	}
	return out, nil
}

func leaderboardSlips(slips []slip.Slip) []slip.Slip {
	out := make([]slip.Slip, 0, len(slips))
	for _, item := range slips {
		if item.CountsTowardLeaderboard() {
			out = append(out, item)
		}
	}
	return out
}

type leaderboardTotals struct {
	byUser map[string]*LeaderboardEntry
}

func newLeaderboardTotals(members []group.Membership) *leaderboardTotals {
	t := &leaderboardTotals{byUser: make(map[string]*LeaderboardEntry, len(members))}
	for _, m := range members {
		t.entry(m.UserID)
	}
	return t
}

func (t *leaderboardTotals) entry(userID string) *LeaderboardEntry {
	userID = strings.TrimSpace(userID)
	row, ok := t.byUser[userID]
	if !ok {
		row = &LeaderboardEntry{UserID: userID}
		t.byUser[userID] = row
	}
	return row
}

func (t *leaderboardTotals) addPicks(engine *scoring.Engine, picks []pick.Pick, mode scoring.Mode) {
	for _, p := range picks {
		if strings.TrimSpace(p.UserID) == "" {
			continue
		}
		row := t.entry(p.UserID)
		row.Points += engine.GetPickPoints(p, mode)
		row.PicksCount++
		row.Record.add(p.Result)
	}
}

// ranked orders by points, then wins, then user id. Equal points share a rank
// and the following rank skips ahead.
func (t *leaderboardTotals) ranked() []LeaderboardEntry {
	out := make([]LeaderboardEntry, 0, len(t.byUser))
	for _, row := range t.byUser {
		out = append(out, *row)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].Record.Wins != out[j].Record.Wins {
			return out[i].Record.Wins > out[j].Record.Wins
		}
		return out[i].UserID < out[j].UserID
	})

	for i := range out {
		if i > 0 && out[i].Points == out[i-1].Points {
			out[i].Rank = out[i-1].Rank
			continue
		}
		out[i].Rank = i + 1
	}
	return out
}
