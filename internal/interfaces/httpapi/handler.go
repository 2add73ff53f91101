package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/gotlocks/internal/platform/logging"
	"github.com/riskibarqy/gotlocks/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

// CronAuth guards the grading trigger when Enabled is set.
type CronAuth struct {
	Enabled bool
	Secret  string
}

type Handler struct {
	scoringService     *usecase.ScoringService
	slipSummaryService *usecase.SlipSummaryService
	leaderboardService *usecase.LeaderboardService
	pickService        *usecase.PickService
	gradingService     *usecase.GradingService
	cronAuth           CronAuth
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	scoringService *usecase.ScoringService,
	slipSummaryService *usecase.SlipSummaryService,
	leaderboardService *usecase.LeaderboardService,
	pickService *usecase.PickService,
	gradingService *usecase.GradingService,
	cronAuth CronAuth,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		scoringService:     scoringService,
		slipSummaryService: slipSummaryService,
		leaderboardService: leaderboardService,
		pickService:        pickService,
		gradingService:     gradingService,
		cronAuth:           cronAuth,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func requirePrincipalUserID(ctx context.Context) (string, error) {
	principal, ok := principalFromContext(ctx)
	if !ok || strings.TrimSpace(principal.UserID) == "" {
		return "", fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal.UserID, nil
}
