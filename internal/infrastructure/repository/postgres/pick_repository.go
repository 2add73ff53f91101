package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/gotlocks/internal/domain/pick"
	qb "github.com/riskibarqy/gotlocks/internal/platform/querybuilder"
	"github.com/riskibarqy/gotlocks/internal/usecase"
)

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) Create(ctx context.Context, item pick.Pick) error {
	query, args, err := qb.InsertModel("picks", pickInsertModelFromDomain(item)).ToSQL()
	if err != nil {
		return fmt.Errorf("build create pick query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: pick %s already exists", usecase.ErrConflict, item.ID)
		}
		return fmt.Errorf("create pick: %w", err)
	}
	return nil
}

// CreateWithinLimit serializes writers per slip and user with a transaction
// scoped advisory lock, so the count and the insert see the same picks.
func (r *PickRepository) CreateWithinLimit(ctx context.Context, item pick.Pick, limit int) (bool, error) {
	countQuery, countArgs, err := countPicksBySlipAndUserQuery(item.SlipID, item.UserID)
	if err != nil {
		return false, fmt.Errorf("build count picks query: %w", err)
	}
	insertQuery, insertArgs, err := qb.InsertModel("picks", pickInsertModelFromDomain(item)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build create pick query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin create pick tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, pickLimitLockKey(item.SlipID, item.UserID)); err != nil {
		return false, fmt.Errorf("lock picks by slip and user: %w", err)
	}

	var held int
	if err := tx.GetContext(ctx, &held, countQuery, countArgs...); err != nil {
		return false, fmt.Errorf("count picks by slip and user: %w", err)
	}
	if held >= limit {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		if isUniqueViolation(err) {
			return false, fmt.Errorf("%w: pick %s already exists", usecase.ErrConflict, item.ID)
		}
		return false, fmt.Errorf("create pick: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit create pick tx: %w", err)
	}
	return true, nil
}

func (r *PickRepository) GetByID(ctx context.Context, pickID string) (pick.Pick, bool, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(
			qb.Eq("public_id", pickID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return pick.Pick{}, false, fmt.Errorf("build get pick by id query: %w", err)
	}

	var row pickTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pick.Pick{}, false, nil
		}
		return pick.Pick{}, false, fmt.Errorf("get pick by id: %w", err)
	}

	return pickFromRow(row), true, nil
}

func (r *PickRepository) ListBySlip(ctx context.Context, slipID string) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(
			qb.Eq("slip_public_id", slipID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list picks by slip query: %w", err)
	}

	return r.list(ctx, query, args)
}

func (r *PickRepository) ListBySlipAndUser(ctx context.Context, slipID, userID string) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(
			qb.Eq("slip_public_id", slipID),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list picks by slip and user query: %w", err)
	}

	return r.list(ctx, query, args)
}

func (r *PickRepository) UpdateGrade(ctx context.Context, pickID string, result pick.Result, bonusPoints int) error {
	builder := qb.Update("picks").
		Set("result", result.String()).
		Set("bonus_points", bonusPoints).
		SetExpr("updated_at", "NOW()")
	if result.IsGraded() {
		builder = builder.SetExpr("graded_at", "NOW()")
	} else {
		builder = builder.SetExpr("graded_at", "NULL")
	}

	query, args, err := builder.
		Where(
			qb.Eq("public_id", pickID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update pick grade query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update pick grade: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update pick grade: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: pick=%s", usecase.ErrNotFound, pickID)
	}
	return nil
}

func (r *PickRepository) list(ctx context.Context, query string, args []any) ([]pick.Pick, error) {
	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pickFromRow(row))
	}
	return out, nil
}

func countPicksBySlipAndUserQuery(slipID, userID string) (string, []any, error) {
	return qb.Select("COUNT(1)").From("picks").
		Where(
			qb.Eq("slip_public_id", slipID),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
}

func pickLimitLockKey(slipID, userID string) string {
	return "picks:" + slipID + ":" + userID
}

func pickInsertModelFromDomain(item pick.Pick) pickInsertModel {
	descriptions := make([]string, 0, len(item.Legs))
	odds := make([]string, 0, len(item.Legs))
	for _, leg := range item.Legs {
		descriptions = append(descriptions, leg.Description)
		odds = append(odds, leg.Odds)
	}

	var points *int64
	if item.Points != nil {
		v := int64(*item.Points)
		points = &v
	}

	return pickInsertModel{
		PublicID:        item.ID,
		SlipID:          item.SlipID,
		GroupID:         item.GroupID,
		UserID:          item.UserID,
		Description:     item.Description,
		Odds:            optionalString(item.Odds),
		Result:          item.Result.String(),
		IsCombo:         item.IsCombo,
		LegDescriptions: pq.Array(descriptions),
		LegOdds:         pq.Array(odds),
		BonusPoints:     item.BonusPoints,
		Points:          points,
		DifficultyLabel: optionalString(item.DifficultyLabel),
		GradedAt:        item.GradedAt,
	}
}

func pickFromRow(row pickTableModel) pick.Pick {
	out := pick.Pick{
		ID:              row.PublicID,
		SlipID:          row.SlipID,
		GroupID:         row.GroupID,
		UserID:          row.UserID,
		Description:     row.Description,
		Odds:            row.Odds.String,
		Result:          pick.ParseResult(row.Result.String),
		IsCombo:         row.IsCombo,
		BonusPoints:     row.BonusPoints,
		DifficultyLabel: row.DifficultyLabel.String,
		GradedAt:        row.GradedAt,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
	if row.Points.Valid {
		v := int(row.Points.Int64)
		out.Points = &v
	}

	for idx, odds := range row.LegOdds {
		leg := pick.Leg{Odds: odds}
		if idx < len(row.LegDescriptions) {
			leg.Description = row.LegDescriptions[idx]
		}
		out.Legs = append(out.Legs, leg)
	}
	return out
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
