package httpapi

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/gotlocks/internal/usecase"
)

// TriggerGrading relays one grading request upstream and answers with the
// relay payload as-is, without the response envelope.
func (h *Handler) TriggerGrading(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TriggerGrading")
	defer span.End()

	if h.cronAuth.Enabled && !h.validCronSecret(r) {
		h.logger.WarnContext(ctx, "grading trigger rejected", "remote_addr", r.RemoteAddr)
		writeJSON(ctx, w, http.StatusUnauthorized, gradingRelayDTO{
			Success: false,
			Message: "Unauthorized",
		})
		return
	}
	if h.gradingService == nil {
		writeError(ctx, w, fmt.Errorf("%w: grading relay is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	run := h.gradingService.TriggerGrading(ctx, usecase.GradingTriggerHTTP)

	status := http.StatusOK
	if !run.Success {
		status = http.StatusInternalServerError
	}
	writeJSON(ctx, w, status, gradingRelayToDTO(run))
}

func (h *Handler) validCronSecret(r *http.Request) bool {
	secret := strings.TrimSpace(h.cronAuth.Secret)
	if secret == "" {
		return false
	}
	expected := "Bearer " + secret
	provided := strings.TrimSpace(r.Header.Get("Authorization"))
	return subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) == 1
}

func (h *Handler) ListGradingRuns(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGradingRuns")
	defer span.End()

	if h.gradingService == nil {
		writeError(ctx, w, fmt.Errorf("%w: grading relay is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid limit %q", usecase.ErrInvalidInput, raw))
			return
		}
		limit = parsed
	}

	runs, err := h.gradingService.RecentRuns(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list grading runs failed", "limit", limit, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gradingRunsToDTO(runs))
}
