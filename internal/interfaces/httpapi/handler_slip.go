package httpapi

import (
	"net/http"

	"github.com/riskibarqy/gotlocks/internal/usecase"
)

func (h *Handler) GetMySlipSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMySlipSummary")
	defer span.End()

	userID, err := requirePrincipalUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	groupID := r.PathValue("groupID")
	slipID := r.PathValue("slipID")
	summary, err := h.slipSummaryService.GetMySummary(ctx, groupID, slipID, userID, r.URL.Query().Get("mode"))
	if err != nil {
		h.logger.WarnContext(ctx, "get slip summary failed", "group_id", groupID, "slip_id", slipID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, slipSummaryToDTO(summary))
}

func (h *Handler) SubmitPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPick")
	defer span.End()

	userID, err := requirePrincipalUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitPickRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	groupID := r.PathValue("groupID")
	slipID := r.PathValue("slipID")
	created, err := h.pickService.Submit(ctx, usecase.SubmitPickInput{
		GroupID:         groupID,
		SlipID:          slipID,
		UserID:          userID,
		Description:     req.Description,
		Odds:            req.Odds,
		DifficultyLabel: req.DifficultyLabel,
		Legs:            legsFromRequest(req.Legs),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit pick failed", "group_id", groupID, "slip_id", slipID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, pickScoreToDTO(created))
}

func (h *Handler) GradePick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GradePick")
	defer span.End()

	userID, err := requirePrincipalUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req gradePickRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	groupID := r.PathValue("groupID")
	pickID := r.PathValue("pickID")
	graded, err := h.pickService.Grade(ctx, usecase.GradePickInput{
		GroupID:     groupID,
		PickID:      pickID,
		ActorUserID: userID,
		Result:      req.Result,
		BonusPoints: req.BonusPoints,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "grade pick failed", "group_id", groupID, "pick_id", pickID, "actor_user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pickScoreToDTO(graded))
}
