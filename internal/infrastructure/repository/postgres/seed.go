package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/gotlocks/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/gotlocks/internal/platform/querybuilder"
)

// BootstrapSeed loads the demo groups into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, now time.Time) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM groups WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count groups for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	seed := memory.SeedData(now)

	for _, g := range seed.Groups {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO groups (public_id, name, owner_user_id, invite_code)
VALUES (:public_id, :name, :owner_user_id, :invite_code)
ON CONFLICT (public_id) DO NOTHING`, groupInsertModel{
			PublicID:    g.ID,
			Name:        g.Name,
			OwnerUserID: g.OwnerUserID,
			InviteCode:  g.InviteCode,
		})
		if err != nil {
			return fmt.Errorf("bind seed group %s query: %w", g.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed group %s: %w", g.ID, err)
		}
	}

	for _, m := range seed.Memberships {
		sqlQuery, args, err := qb.InsertModel("group_members", groupMemberInsertModel{
			GroupID:  m.GroupID,
			UserID:   m.UserID,
			Role:     string(m.Role),
			JoinedAt: m.JoinedAt.UTC(),
		}).OnConflictDoNothing("group_public_id", "user_id").ToSQL()
		if err != nil {
			return fmt.Errorf("build seed membership %s/%s query: %w", m.GroupID, m.UserID, err)
		}
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed membership %s/%s: %w", m.GroupID, m.UserID, err)
		}
	}

	for _, s := range seed.Slips {
		sqlQuery, args, err := qb.InsertModel("slips", slipInsertModel{
			PublicID:        s.ID,
			GroupID:         s.GroupID,
			Name:            s.Name,
			PickDeadline:    optionalTime(s.PickDeadline),
			ResultsDeadline: optionalTime(s.ResultsDeadline),
			IsVibe:          s.IsVibe,
			MaxPicksPerUser: s.MaxPicksPerUser,
		}).OnConflictDoNothing("public_id").ToSQL()
		if err != nil {
			return fmt.Errorf("build seed slip %s query: %w", s.ID, err)
		}
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed slip %s: %w", s.ID, err)
		}
	}

	for _, p := range seed.Picks {
		sqlQuery, args, err := qb.InsertModel("picks", pickInsertModelFromDomain(p)).OnConflictDoNothing("public_id").ToSQL()
		if err != nil {
			return fmt.Errorf("build seed pick %s query: %w", p.ID, err)
		}
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed pick %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
