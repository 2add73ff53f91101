package httpapi

import (
	"net/http"

	"github.com/riskibarqy/gotlocks/internal/usecase"
)

func (h *Handler) GetScoringTiers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoringTiers")
	defer span.End()

	table, err := h.scoringService.Tiers(ctx, r.URL.Query().Get("mode"))
	if err != nil {
		h.logger.WarnContext(ctx, "get scoring tiers failed", "mode", r.URL.Query().Get("mode"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tierTableToDTO(table))
}

func (h *Handler) PreviewScoring(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PreviewScoring")
	defer span.End()

	var req previewRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.PreviewInput{
		Mode:  req.Mode,
		Picks: make([]usecase.PreviewPickInput, 0, len(req.Picks)),
	}
	for _, item := range req.Picks {
		input.Picks = append(input.Picks, usecase.PreviewPickInput{
			Description:     item.Description,
			Odds:            item.Odds,
			Result:          item.Result,
			DifficultyLabel: item.DifficultyLabel,
			BonusPoints:     item.BonusPoints,
			Points:          item.Points,
			Legs:            legsFromRequest(item.Legs),
		})
	}

	result, err := h.scoringService.Preview(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "preview scoring failed", "picks", len(req.Picks), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, previewToDTO(result))
}
