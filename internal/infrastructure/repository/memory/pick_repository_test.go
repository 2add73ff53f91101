package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/gotlocks/internal/domain/grading"
	"github.com/riskibarqy/gotlocks/internal/domain/pick"
)

func TestPickRepository_CreateListAndGrade(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPickRepository(nil)
	gradedAt := time.Date(2026, 9, 8, 4, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return gradedAt }

	legs := []pick.Leg{{Odds: "-110"}, {Odds: "+120"}}
	if err := repo.Create(ctx, pick.Pick{ID: "p1", SlipID: "s1", UserID: "u1", Odds: "+200", Result: pick.ResultPending}); err != nil {
		t.Fatalf("create p1: %v", err)
	}
	if err := repo.Create(ctx, pick.Pick{ID: "p2", SlipID: "s1", UserID: "u2", IsCombo: true, Legs: legs}); err != nil {
		t.Fatalf("create p2: %v", err)
	}
	if err := repo.Create(ctx, pick.Pick{ID: "p1"}); err == nil {
		t.Fatalf("expected duplicate create to fail")
	}

	legs[0].Odds = "+999"
	stored, ok, err := repo.GetByID(ctx, "p2")
	if err != nil || !ok {
		t.Fatalf("get p2: ok=%v err=%v", ok, err)
	}
	if stored.Legs[0].Odds != "-110" {
		t.Fatalf("expected stored legs to be isolated from caller, got %s", stored.Legs[0].Odds)
	}

	bySlip, _ := repo.ListBySlip(ctx, "s1")
	if len(bySlip) != 2 || bySlip[0].ID != "p1" {
		t.Fatalf("unexpected picks by slip: %+v", bySlip)
	}
	byUser, _ := repo.ListBySlipAndUser(ctx, "s1", "u2")
	if len(byUser) != 1 || byUser[0].ID != "p2" {
		t.Fatalf("unexpected picks by user: %+v", byUser)
	}

	if err := repo.UpdateGrade(ctx, "p1", pick.ResultWin, 3); err != nil {
		t.Fatalf("update grade: %v", err)
	}
	graded, _, _ := repo.GetByID(ctx, "p1")
	if graded.Result != pick.ResultWin || graded.BonusPoints != 3 {
		t.Fatalf("unexpected graded pick: %+v", graded)
	}
	if graded.GradedAt == nil || !graded.GradedAt.Equal(gradedAt) {
		t.Fatalf("expected graded_at to be stamped, got %v", graded.GradedAt)
	}

	if err := repo.UpdateGrade(ctx, "missing", pick.ResultLoss, 0); err == nil {
		t.Fatalf("expected error for unknown pick")
	}
}

func TestPickRepository_CreateWithinLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPickRepository([]pick.Pick{{ID: "p0", SlipID: "s1", UserID: "u1"}})

	created, err := repo.CreateWithinLimit(ctx, pick.Pick{ID: "p1", SlipID: "s1", UserID: "u1"}, 2)
	if err != nil || !created {
		t.Fatalf("expected p1 to fit under the limit: created=%v err=%v", created, err)
	}
	created, err = repo.CreateWithinLimit(ctx, pick.Pick{ID: "p2", SlipID: "s1", UserID: "u1"}, 2)
	if err != nil || created {
		t.Fatalf("expected p2 to be refused at the limit: created=%v err=%v", created, err)
	}
	created, err = repo.CreateWithinLimit(ctx, pick.Pick{ID: "p3", SlipID: "s1", UserID: "u2"}, 2)
	if err != nil || !created {
		t.Fatalf("expected other user to be unaffected: created=%v err=%v", created, err)
	}

	byUser, _ := repo.ListBySlipAndUser(ctx, "s1", "u1")
	if len(byUser) != 2 {
		t.Fatalf("expected 2 picks for u1, got %d", len(byUser))
	}
}

func TestPickRepository_CreateWithinLimit_Concurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPickRepository(nil)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.CreateWithinLimit(ctx, pick.Pick{ID: fmt.Sprintf("p%d", i), SlipID: "s1", UserID: "u1"}, 3)
			if err != nil {
				t.Errorf("create within limit: %v", err)
				return
			}
			if ok {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if created != 3 {
		t.Fatalf("expected exactly 3 creates, got %d", created)
	}
	stored, _ := repo.ListBySlip(ctx, "s1")
	if len(stored) != 3 {
		t.Fatalf("expected 3 stored picks, got %d", len(stored))
	}
}

func TestGradingRunRepository_NewestFirstAndBounded(t *testing.T) {
	t.Parallel()

	repo := NewGradingRunRepository(2)
	for _, id := range []string{"r1", "r2", "r3"} {
		if err := repo.RecordRun(context.Background(), gradingRun(id)); err != nil {
			t.Fatalf("record run: %v", err)
		}
	}

	runs, err := repo.ListRecentRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "r3" || runs[1].ID != "r2" {
		t.Fatalf("unexpected runs: %+v", runs)
	}
}

func TestSeedData_IsConsistent(t *testing.T) {
	t.Parallel()

	seed := SeedData(time.Date(2026, 9, 6, 12, 0, 0, 0, time.UTC))
	slips := make(map[string]string, len(seed.Slips))
	for _, s := range seed.Slips {
		slips[s.ID] = s.GroupID
	}
	for _, p := range seed.Picks {
		groupID, ok := slips[p.SlipID]
		if !ok {
			t.Fatalf("pick %s references unknown slip %s", p.ID, p.SlipID)
		}
		if groupID != p.GroupID {
			t.Fatalf("pick %s group mismatch: slip group=%s pick group=%s", p.ID, groupID, p.GroupID)
		}
	}
}

func gradingRun(id string) grading.Run {
	return grading.Run{ID: id, Success: true, Outcome: grading.OutcomeSuccess}
}
