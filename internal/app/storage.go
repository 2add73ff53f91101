package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/gotlocks/internal/config"
	"github.com/riskibarqy/gotlocks/internal/domain/grading"
	"github.com/riskibarqy/gotlocks/internal/domain/group"
	"github.com/riskibarqy/gotlocks/internal/domain/pick"
	"github.com/riskibarqy/gotlocks/internal/domain/slip"
	cacherepo "github.com/riskibarqy/gotlocks/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/gotlocks/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/gotlocks/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/gotlocks/internal/platform/cache"
	"github.com/riskibarqy/gotlocks/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

type repositories struct {
	db          *sqlx.DB
	groups      group.Repository
	slips       slip.Repository
	picks       pick.Repository
	gradingRuns grading.Repository
}

func openStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var out repositories

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		if cfg.SeedEnabled {
			if err := postgres.BootstrapSeed(ctx, db, time.Now()); err != nil {
				_ = db.Close()
				return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
			}
		}
		out = repositories{
			db:          db,
			groups:      postgres.NewGroupRepository(db),
			slips:       postgres.NewSlipRepository(db),
			picks:       postgres.NewPickRepository(db),
			gradingRuns: postgres.NewGradingRunRepository(db),
		}
	default:
		seed := memory.Seed{}
		if cfg.SeedEnabled {
			seed = memory.SeedData(time.Now())
		}
		out = repositories{
			groups:      memory.NewGroupRepository(seed.Groups, seed.Memberships),
			slips:       memory.NewSlipRepository(seed.Slips),
			picks:       memory.NewPickRepository(seed.Picks),
			gradingRuns: memory.NewGradingRunRepository(cfg.GradingRunHistory),
		}
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		out.slips = cacherepo.NewSlipRepository(out.slips, store)
		out.groups = cacherepo.NewGroupRepository(out.groups, store)
	}

	logger.Info("storage ready",
		"driver", cfg.StorageDriver,
		"seeded", cfg.SeedEnabled,
		"cache_enabled", cfg.CacheEnabled,
	)
	return out, nil
}

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

const maxTracedQueryLength = 512

// normalizeDBURL asks pgbouncer-fronted databases for text results unless the
// caller already chose a mode.
func normalizeDBURL(raw string, disablePreparedBinary bool) string {
	if !disablePreparedBinary {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}
	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") != "" {
		return raw
	}
	query.Set("disable_prepared_binary_result", "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// dbNameFromURL handles both URL and key=value DSNs.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		if name := strings.Trim(parsed.Path, "/ "); name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if name, ok := strings.CutPrefix(token, "dbname="); ok {
			if name = strings.Trim(name, `"'`); name != "" {
				return name
			}
		}
	}
	return ""
}

func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
