package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type pickTableModel struct {
	ID              int64          `db:"id"`
	PublicID        string         `db:"public_id"`
	SlipID          string         `db:"slip_public_id"`
	GroupID         string         `db:"group_public_id"`
	UserID          string         `db:"user_id"`
	Description     string         `db:"description"`
	Odds            sql.NullString `db:"odds"`
	Result          sql.NullString `db:"result"`
	IsCombo         bool           `db:"is_combo"`
	LegDescriptions pq.StringArray `db:"leg_descriptions"`
	LegOdds         pq.StringArray `db:"leg_odds"`
	BonusPoints     int            `db:"bonus_points"`
	Points          sql.NullInt64  `db:"points"`
	DifficultyLabel sql.NullString `db:"difficulty_label"`
	GradedAt        *time.Time     `db:"graded_at"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	DeletedAt       *time.Time     `db:"deleted_at"`
}

type pickInsertModel struct {
	PublicID        string     `db:"public_id"`
	SlipID          string     `db:"slip_public_id"`
	GroupID         string     `db:"group_public_id"`
	UserID          string     `db:"user_id"`
	Description     string     `db:"description"`
	Odds            *string    `db:"odds"`
	Result          string     `db:"result"`
	IsCombo         bool       `db:"is_combo"`
	LegDescriptions any        `db:"leg_descriptions"`
	LegOdds         any        `db:"leg_odds"`
	BonusPoints     int        `db:"bonus_points"`
	Points          *int64     `db:"points"`
	DifficultyLabel *string    `db:"difficulty_label"`
	GradedAt        *time.Time `db:"graded_at"`
}
