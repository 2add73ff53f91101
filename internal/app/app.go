package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/gotlocks/internal/config"
	"github.com/riskibarqy/gotlocks/internal/domain/scoring"
	"github.com/riskibarqy/gotlocks/internal/infrastructure/account/identity"
	gradingclient "github.com/riskibarqy/gotlocks/internal/infrastructure/grading"
	"github.com/riskibarqy/gotlocks/internal/infrastructure/scheduler"
	"github.com/riskibarqy/gotlocks/internal/interfaces/httpapi"
	"github.com/riskibarqy/gotlocks/internal/observability"
	idgen "github.com/riskibarqy/gotlocks/internal/platform/id"
	"github.com/riskibarqy/gotlocks/internal/platform/logging"
	"github.com/riskibarqy/gotlocks/internal/platform/resilience"
	"github.com/riskibarqy/gotlocks/internal/usecase"
)

// App owns the HTTP server and everything that must be shut down with it.
type App struct {
	Server    *http.Server
	scheduler *scheduler.Scheduler
	db        *sqlx.DB
	logger    *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	tables, err := scoring.LoadTables(cfg.ScoringTablePath)
	if err != nil {
		return nil, fmt.Errorf("load scoring tables: %w", err)
	}
	engine, err := scoring.NewEngine(tables)
	if err != nil {
		return nil, fmt.Errorf("build scoring engine: %w", err)
	}

	repos, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	ids := idgen.NewUUIDGenerator()
	gradingSvc := usecase.NewGradingService(
		gradingclient.NewClient(gradingclient.ClientConfig{
			BaseURL: cfg.GradingBackendURL,
			Timeout: cfg.GradingTimeout,
		}, logger),
		repos.gradingRuns,
		ids,
		gradingMetrics(metrics),
		logger,
	)

	handler := httpapi.NewHandler(
		usecase.NewScoringService(engine),
		usecase.NewSlipSummaryService(repos.groups, repos.slips, repos.picks, engine),
		usecase.NewLeaderboardService(repos.groups, repos.slips, repos.picks, engine, cfg.LeaderboardWorkers, logger),
		usecase.NewPickService(repos.groups, repos.slips, repos.picks, engine, ids, logger),
		gradingSvc,
		httpapi.CronAuth{Enabled: cfg.GradingCronAuthEnabled, Secret: cfg.GradingCronSecret},
		logger,
	)

	verifier := identity.NewClient(nil, identity.Config{
		BaseURL:        cfg.IdentityBaseURL,
		IntrospectPath: cfg.IdentityIntrospectPath,
		AdminKey:       cfg.IdentityAdminKey,
		Timeout:        cfg.IdentityTimeout,
		CacheTTL:       cfg.IdentityCacheTTL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.IdentityCircuitEnabled,
			FailureThreshold: cfg.IdentityCircuitFailureCount,
			OpenTimeout:      cfg.IdentityCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.IdentityCircuitHalfOpenMaxReq,
		},
	}, logger)

	routerCfg := httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
		TrustProxyHeaders:  cfg.TrustProxyHeaders,
	}
	if metrics != nil {
		routerCfg.Metrics = metrics
		routerCfg.MetricsHandler = metrics.Handler()
	}
	if cfg.RateLimitPerSecond > 0 {
		routerCfg.RateLimiter = resilience.NewKeyedLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	}

	out := &App{
		Server: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           httpapi.NewRouter(handler, verifier, logger, routerCfg),
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
		db:     repos.db,
		logger: logger,
	}

	if cfg.GradingScheduleEnabled {
		out.scheduler, err = scheduler.NewScheduler(gradingSvc, scheduler.Config{
			Interval:   cfg.GradingScheduleInterval,
			RunTimeout: cfg.GradingTimeout + 5*time.Second,
		}, logger)
		if err != nil {
			_ = out.closeDB()
			return nil, fmt.Errorf("build grading scheduler: %w", err)
		}
	}

	return out, nil
}

// gradingMetrics keeps a nil *Metrics from turning into a non-nil interface.
func gradingMetrics(m *observability.Metrics) usecase.GradingMetrics {
	if m == nil {
		return nil
	}
	return m
}

// StartBackground starts jobs that run alongside the HTTP server.
func (a *App) StartBackground() error {
	if a.scheduler == nil {
		return nil
	}
	return a.scheduler.Start()
}

// Shutdown drains the HTTP server, then stops the scheduler and closes storage.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.Server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if a.scheduler != nil {
		if err := a.scheduler.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop grading scheduler: %w", err))
		}
	}
	if err := a.closeDB(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) closeDB() error {
	if a.db == nil {
		return nil
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
