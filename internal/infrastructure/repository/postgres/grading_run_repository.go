package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/gotlocks/internal/domain/grading"
	qb "github.com/riskibarqy/gotlocks/internal/platform/querybuilder"
)

const maxGradingRunListLimit = 200

type GradingRunRepository struct {
	db *sqlx.DB
}

func NewGradingRunRepository(db *sqlx.DB) *GradingRunRepository {
	return &GradingRunRepository{db: db}
}

func (r *GradingRunRepository) RecordRun(ctx context.Context, run grading.Run) error {
	model, err := gradingRunInsertModelFromDomain(run)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("grading_runs", model).OnConflictDoNothing("public_id").ToSQL()
	if err != nil {
		return fmt.Errorf("build record grading run query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record grading run: %w", err)
	}
	return nil
}

func (r *GradingRunRepository) ListRecentRuns(ctx context.Context, limit int) ([]grading.Run, error) {
	if limit <= 0 || limit > maxGradingRunListLimit {
		limit = maxGradingRunListLimit
	}

	query, args, err := qb.Select("*").From("grading_runs").
		OrderBy("started_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list grading runs query: %w", err)
	}

	var rows []gradingRunTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list grading runs: %w", err)
	}

	out := make([]grading.Run, 0, len(rows))
	for _, row := range rows {
		out = append(out, gradingRunFromRow(row))
	}
	return out, nil
}

func gradingRunInsertModelFromDomain(run grading.Run) (gradingRunInsertModel, error) {
	var body *string
	if run.UpstreamBody != nil {
		raw, err := sonic.MarshalString(run.UpstreamBody)
		if err != nil {
			return gradingRunInsertModel{}, fmt.Errorf("encode grading run upstream body: %w", err)
		}
		body = &raw
	}

	return gradingRunInsertModel{
		PublicID:     run.ID,
		Trigger:      run.Trigger,
		Success:      run.Success,
		Outcome:      string(run.Outcome),
		Message:      run.Message,
		StatusCode:   run.StatusCode,
		UpstreamBody: body,
		DurationMs:   run.Duration.Milliseconds(),
		StartedAt:    run.StartedAt.UTC(),
		TraceID:      optionalString(run.TraceID),
	}, nil
}

func gradingRunFromRow(row gradingRunTableModel) grading.Run {
	out := grading.Run{
		ID:         row.PublicID,
		Trigger:    row.Trigger,
		Success:    row.Success,
		Outcome:    grading.Outcome(row.Outcome),
		Message:    row.Message,
		StatusCode: row.StatusCode,
		Duration:   time.Duration(row.DurationMs) * time.Millisecond,
		StartedAt:  row.StartedAt.UTC(),
		TraceID:    row.TraceID.String,
	}
	if row.UpstreamBody.Valid && row.UpstreamBody.String != "" {
		var body any
		if err := sonic.UnmarshalString(row.UpstreamBody.String, &body); err == nil {
			out.UpstreamBody = body
		} else {
			out.UpstreamBody = row.UpstreamBody.String
		}
	}
	return out
}
