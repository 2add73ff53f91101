package postgres

import "time"

type slipTableModel struct {
	ID              int64      `db:"id"`
	PublicID        string     `db:"public_id"`
	GroupID         string     `db:"group_public_id"`
	Name            string     `db:"name"`
	PickDeadline    *time.Time `db:"pick_deadline"`
	ResultsDeadline *time.Time `db:"results_deadline"`
	IsVibe          bool       `db:"is_vibe"`
	MaxPicksPerUser int        `db:"max_picks_per_user"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
	DeletedAt       *time.Time `db:"deleted_at"`
}

type slipInsertModel struct {
	PublicID        string     `db:"public_id"`
	GroupID         string     `db:"group_public_id"`
	Name            string     `db:"name"`
	PickDeadline    *time.Time `db:"pick_deadline"`
	ResultsDeadline *time.Time `db:"results_deadline"`
	IsVibe          bool       `db:"is_vibe"`
	MaxPicksPerUser int        `db:"max_picks_per_user"`
}
