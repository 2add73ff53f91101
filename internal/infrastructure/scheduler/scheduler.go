package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/riskibarqy/gotlocks/internal/domain/grading"
	"github.com/riskibarqy/gotlocks/internal/platform/logging"
	"github.com/riskibarqy/gotlocks/internal/usecase"
)

const minGradingInterval = time.Minute

type GradingRunner interface {
	TriggerGrading(ctx context.Context, trigger string) grading.Run
}

type Config struct {
	Interval   time.Duration
	RunTimeout time.Duration
	Location   *time.Location
}

// Scheduler runs the grading relay in-process on a fixed interval, as an
// alternative to an external cron hitting the HTTP trigger.
type Scheduler struct {
	s       gocron.Scheduler
	runner  GradingRunner
	cfg     Config
	logger  *logging.Logger
	baseCtx context.Context
	cancel  context.CancelFunc
}

func NewScheduler(runner GradingRunner, cfg Config, logger *logging.Logger) (*Scheduler, error) {
	if runner == nil {
		return nil, fmt.Errorf("grading runner is required")
	}
	if cfg.Interval < minGradingInterval {
		return nil, fmt.Errorf("grading interval must be at least %s, got %s", minGradingInterval, cfg.Interval)
	}
	if cfg.RunTimeout <= 0 || cfg.RunTimeout > cfg.Interval {
		cfg.RunTimeout = cfg.Interval
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if logger == nil {
		logger = logging.Default()
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(cfg.Location))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		s:       s,
		runner:  runner,
		cfg:     cfg,
		logger:  logger,
		baseCtx: ctx,
		cancel:  cancel,
	}, nil
}

func (s *Scheduler) Start() error {
	_, err := s.s.NewJob(
		gocron.DurationJob(s.cfg.Interval),
		gocron.NewTask(s.runGrading),
		gocron.WithName("grade-picks"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("create grading job: %w", err)
	}

	s.s.Start()
	s.logger.Info("grading scheduler started", "interval", s.cfg.Interval.String())
	return nil
}

func (s *Scheduler) Stop() error {
	s.cancel()
	return s.s.Shutdown()
}

func (s *Scheduler) runGrading() {
	ctx, cancel := context.WithTimeout(s.baseCtx, s.cfg.RunTimeout)
	defer cancel()

	run := s.runner.TriggerGrading(ctx, usecase.GradingTriggerSchedule)
	if !run.Success {
		s.logger.WarnContext(ctx, "scheduled grading run failed",
			"run_id", run.ID,
			"status_code", run.StatusCode,
			"message", run.Message,
		)
	}
}
