package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/gotlocks/internal/domain/grading"
	"github.com/riskibarqy/gotlocks/internal/domain/pick"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	assert.True(t, isNotFound(sql.ErrNoRows))
	assert.True(t, isNotFound(fmt.Errorf("get slip: %w", sql.ErrNoRows)))
	assert.False(t, isNotFound(fakeErr("pq: relation slips does not exist")))
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("create pick: %w", &pq.Error{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(fakeErr("duplicate key")))
}

func TestCountPicksBySlipAndUserQuery(t *testing.T) {
	t.Parallel()

	query, args, err := countPicksBySlipAndUserQuery("slip-1", "user-alex")
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(1) FROM picks WHERE slip_public_id = $1 AND user_id = $2 AND deleted_at IS NULL", query)
	assert.Equal(t, []any{"slip-1", "user-alex"}, args)

	assert.Equal(t, "picks:slip-1:user-alex", pickLimitLockKey("slip-1", "user-alex"))
	assert.NotEqual(t, pickLimitLockKey("slip-1", "user-alex"), pickLimitLockKey("slip-1", "user-sam"))
}

func TestPickRowRoundTrip(t *testing.T) {
	t.Parallel()

	points := 25
	insert := pickInsertModelFromDomain(pick.Pick{
		ID:          "pick-1",
		SlipID:      "slip-1",
		GroupID:     "grp-1",
		UserID:      "u1",
		Description: "  ",
		Odds:        " ",
		Result:      pick.ResultWin,
		IsCombo:     true,
		Legs: []pick.Leg{
			{Description: "Chiefs ML", Odds: "-110"},
			{Description: "Bills ML", Odds: "+120"},
		},
		Points: &points,
	})
	assert.Nil(t, insert.Odds)
	assert.Nil(t, insert.DifficultyLabel)
	assert.Equal(t, "win", insert.Result)
	require.NotNil(t, insert.Points)
	assert.Equal(t, int64(25), *insert.Points)

	got := pickFromRow(pickTableModel{
		PublicID:        "pick-1",
		Result:          sql.NullString{String: "win", Valid: true},
		IsCombo:         true,
		LegDescriptions: pq.StringArray{"Chiefs ML"},
		LegOdds:         pq.StringArray{"-110", "+120"},
		Points:          sql.NullInt64{Int64: 25, Valid: true},
	})
	assert.Equal(t, pick.ResultWin, got.Result)
	require.Len(t, got.Legs, 2)
	assert.Equal(t, pick.Leg{Description: "Chiefs ML", Odds: "-110"}, got.Legs[0])
	assert.Equal(t, pick.Leg{Odds: "+120"}, got.Legs[1])
	require.NotNil(t, got.Points)
	assert.Equal(t, 25, *got.Points)
}

func TestPickFromRowTreatsNullResultAsPending(t *testing.T) {
	t.Parallel()

	got := pickFromRow(pickTableModel{PublicID: "pick-2"})
	assert.Equal(t, pick.ResultPending, got.Result)
	assert.Nil(t, got.Points)
	assert.Empty(t, got.Legs)
}

func TestGradingRunBodyEncoding(t *testing.T) {
	t.Parallel()

	started := time.Date(2026, 9, 6, 12, 0, 0, 0, time.UTC)
	model, err := gradingRunInsertModelFromDomain(grading.Run{
		ID:           "run-1",
		Trigger:      "http",
		Success:      true,
		Outcome:      grading.OutcomeSuccess,
		StatusCode:   200,
		UpstreamBody: map[string]any{"graded": 3},
		Duration:     1500 * time.Millisecond,
		StartedAt:    started,
	})
	require.NoError(t, err)
	require.NotNil(t, model.UpstreamBody)
	assert.JSONEq(t, `{"graded":3}`, *model.UpstreamBody)
	assert.Equal(t, int64(1500), model.DurationMs)
	assert.Nil(t, model.TraceID)

	run := gradingRunFromRow(gradingRunTableModel{
		PublicID:     "run-1",
		Outcome:      "upstream_error",
		UpstreamBody: sql.NullString{String: "not json", Valid: true},
		DurationMs:   250,
		StartedAt:    started,
	})
	assert.Equal(t, grading.OutcomeUpstreamError, run.Outcome)
	assert.Equal(t, "not json", run.UpstreamBody)
	assert.Equal(t, 250*time.Millisecond, run.Duration)
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
