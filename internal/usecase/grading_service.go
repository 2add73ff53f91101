package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/gotlocks/internal/domain/grading"
	"github.com/riskibarqy/gotlocks/internal/platform/id"
	"github.com/riskibarqy/gotlocks/internal/platform/logging"
	"go.opentelemetry.io/otel/trace"
)

const (
	GradingTriggerHTTP     = "http"
	GradingTriggerSchedule = "schedule"

	defaultRecentRunsLimit = 20
	maxRecentRunsLimit     = 200
)

type GradingUpstreamResponse struct {
	StatusCode int
	Body       any
}

// GradingTrigger calls the backend grading endpoint exactly once.
type GradingTrigger interface {
	ApplyGrading(ctx context.Context) (GradingUpstreamResponse, error)
}

type GradingMetrics interface {
	ObserveGradingRun(outcome grading.Outcome, duration time.Duration)
}

type nopGradingMetrics struct{}

func (nopGradingMetrics) ObserveGradingRun(grading.Outcome, time.Duration) {}

type GradingService struct {
	trigger GradingTrigger
	runRepo grading.Repository
	idGen   id.Generator
	metrics GradingMetrics
	logger  *logging.Logger
	now     func() time.Time
}

func NewGradingService(
	trigger GradingTrigger,
	runRepo grading.Repository,
	idGen id.Generator,
	metrics GradingMetrics,
	logger *logging.Logger,
) *GradingService {
	if metrics == nil {
		metrics = nopGradingMetrics{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &GradingService{
		trigger: trigger,
		runRepo: runRepo,
		idGen:   idGen,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// TriggerGrading relays one grading request upstream. Failures are reported in
// the returned run instead of as an error.
func (s *GradingService) TriggerGrading(ctx context.Context, trigger string) grading.Run {
	ctx, span := startUsecaseSpan(ctx, "usecase.GradingService.TriggerGrading")
	defer span.End()

	started := s.now()
	run := grading.Run{
		Trigger:   trigger,
		StartedAt: started.UTC(),
	}
	if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
		run.TraceID = spanCtx.TraceID().String()
	}

	resp, err := s.trigger.ApplyGrading(ctx)
	run.Duration = s.now().Sub(started)

	switch {
	case err != nil:
		run.Outcome = grading.OutcomeTransportError
		run.Message = err.Error()
		run.StatusCode = http.StatusInternalServerError
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		run.Outcome = grading.OutcomeUpstreamError
		run.Message = fmt.Sprintf("grading backend responded with status %d", resp.StatusCode)
		run.StatusCode = resp.StatusCode
		run.UpstreamBody = resp.Body
	default:
		run.Success = true
		run.Outcome = grading.OutcomeSuccess
		run.Message = "grading applied"
		run.StatusCode = resp.StatusCode
		run.UpstreamBody = resp.Body
	}

	s.metrics.ObserveGradingRun(run.Outcome, run.Duration)

	if run.Success {
		s.logger.InfoContext(ctx, "grading relay completed",
			"trigger", trigger,
			"upstream_status", run.StatusCode,
			"duration_ms", run.Duration.Milliseconds(),
		)
	} else {
		s.logger.ErrorContext(ctx, "grading relay failed",
			"trigger", trigger,
			"outcome", string(run.Outcome),
			"upstream_status", run.StatusCode,
			"message", run.Message,
			"duration_ms", run.Duration.Milliseconds(),
		)
	}

	s.record(ctx, &run)
	return run
}

func (s *GradingService) record(ctx context.Context, run *grading.Run) {
	if s.runRepo == nil {
		return
	}

	if s.idGen != nil {
		runID, err := s.idGen.NewID()
		if err != nil {
			s.logger.WarnContext(ctx, "generate grading run id failed", "error", err)
			return
		}
		run.ID = runID
	}

	if err := s.runRepo.RecordRun(ctx, *run); err != nil {
		s.logger.WarnContext(ctx, "record grading run failed",
			"run_id", run.ID,
			"error", err,
		)
	}
}

// RecentRuns lists the latest relay invocations, newest first.
func (s *GradingService) RecentRuns(ctx context.Context, limit int) ([]grading.Run, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GradingService.RecentRuns")
	defer span.End()

	if s.runRepo == nil {
		return nil, fmt.Errorf("%w: grading run log is not configured", ErrDependencyUnavailable)
	}
	if limit <= 0 {
		limit = defaultRecentRunsLimit
	}
	if limit > maxRecentRunsLimit {
		return nil, fmt.Errorf("%w: limit must be <= %d", ErrInvalidInput, maxRecentRunsLimit)
	}

	runs, err := s.runRepo.ListRecentRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list grading runs: %w", err)
	}
	return runs, nil
}
