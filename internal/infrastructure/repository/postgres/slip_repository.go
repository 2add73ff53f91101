package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/gotlocks/internal/domain/slip"
	qb "github.com/riskibarqy/gotlocks/internal/platform/querybuilder"
)

type SlipRepository struct {
	db *sqlx.DB
}

func NewSlipRepository(db *sqlx.DB) *SlipRepository {
	return &SlipRepository{db: db}
}

func (r *SlipRepository) GetByID(ctx context.Context, slipID string) (slip.Slip, bool, error) {
	query, args, err := qb.Select("*").From("slips").
		Where(
			qb.Eq("public_id", slipID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return slip.Slip{}, false, fmt.Errorf("build get slip by id query: %w", err)
	}

	var row slipTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return slip.Slip{}, false, nil
		}
		return slip.Slip{}, false, fmt.Errorf("get slip by id: %w", err)
	}

	return slipFromRow(row), true, nil
}

func (r *SlipRepository) ListByGroup(ctx context.Context, groupID string) ([]slip.Slip, error) {
	query, args, err := qb.Select("*").From("slips").
		Where(
			qb.Eq("group_public_id", groupID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("pick_deadline", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list slips by group query: %w", err)
	}

	return r.list(ctx, query, args)
}

func (r *SlipRepository) ListAll(ctx context.Context) ([]slip.Slip, error) {
	query, args, err := qb.Select("*").From("slips").
		Where(qb.IsNull("deleted_at")).
		OrderBy("pick_deadline", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list slips query: %w", err)
	}

	return r.list(ctx, query, args)
}

func (r *SlipRepository) list(ctx context.Context, query string, args []any) ([]slip.Slip, error) {
	var rows []slipTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list slips: %w", err)
	}

	out := make([]slip.Slip, 0, len(rows))
	for _, row := range rows {
		out = append(out, slipFromRow(row))
	}
	return out, nil
}

func slipFromRow(row slipTableModel) slip.Slip {
	return slip.Slip{
		ID:              row.PublicID,
		GroupID:         row.GroupID,
		Name:            row.Name,
		PickDeadline:    timeOrZero(row.PickDeadline),
		ResultsDeadline: timeOrZero(row.ResultsDeadline),
		IsVibe:          row.IsVibe,
		MaxPicksPerUser: row.MaxPicksPerUser,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func timeOrZero(value *time.Time) time.Time {
	if value == nil {
		return time.Time{}
	}
	return value.UTC()
}

func optionalTime(value time.Time) *time.Time {
	if value.IsZero() {
		return nil
	}
	v := value.UTC()
	return &v
}
