package postgres

import (
	"database/sql"
	"time"
)

type gradingRunTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	Trigger      string         `db:"trigger"`
	Success      bool           `db:"success"`
	Outcome      string         `db:"outcome"`
	Message      string         `db:"message"`
	StatusCode   int            `db:"status_code"`
	UpstreamBody sql.NullString `db:"upstream_body"`
	DurationMs   int64          `db:"duration_ms"`
	StartedAt    time.Time      `db:"started_at"`
	TraceID      sql.NullString `db:"trace_id"`
	CreatedAt    time.Time      `db:"created_at"`
}

type gradingRunInsertModel struct {
	PublicID     string    `db:"public_id"`
	Trigger      string    `db:"trigger"`
	Success      bool      `db:"success"`
	Outcome      string    `db:"outcome"`
	Message      string    `db:"message"`
	StatusCode   int       `db:"status_code"`
	UpstreamBody *string   `db:"upstream_body"`
	DurationMs   int64     `db:"duration_ms"`
	StartedAt    time.Time `db:"started_at"`
	TraceID      *string   `db:"trace_id"`
}
