package httpapi

import "net/http"

func (h *Handler) GetGlobalLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGlobalLeaderboard")
	defer span.End()

	if _, err := requirePrincipalUserID(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	board, err := h.leaderboardService.GlobalLeaderboard(ctx, r.URL.Query().Get("mode"))
	if err != nil {
		h.logger.WarnContext(ctx, "get global leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(board))
}

func (h *Handler) GetGroupLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGroupLeaderboard")
	defer span.End()

	userID, err := requirePrincipalUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	groupID := r.PathValue("groupID")
	board, err := h.leaderboardService.GroupLeaderboard(ctx, groupID, userID, r.URL.Query().Get("mode"))
	if err != nil {
		h.logger.WarnContext(ctx, "get group leaderboard failed", "group_id", groupID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(board))
}

func (h *Handler) GetSlipLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSlipLeaderboard")
	defer span.End()

	userID, err := requirePrincipalUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	groupID := r.PathValue("groupID")
	slipID := r.PathValue("slipID")
	board, err := h.leaderboardService.SlipLeaderboard(ctx, groupID, slipID, userID, r.URL.Query().Get("mode"))
	if err != nil {
		h.logger.WarnContext(ctx, "get slip leaderboard failed", "group_id", groupID, "slip_id", slipID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(board))
}
