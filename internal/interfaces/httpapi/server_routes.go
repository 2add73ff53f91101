package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool, metricsHandler http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /api/cron/grade-picks", handler.TriggerGrading)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/scoring/tiers", handler.GetScoringTiers)
	mux.HandleFunc("POST /v1/scoring/preview", handler.PreviewScoring)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedLeaderboardRoutes(mux, handler, verifier)
	registerAuthorizedSlipRoutes(mux, handler, verifier)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("GET /v1/internal/grading/runs", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ListGradingRuns)))
}

func registerAuthorizedLeaderboardRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/leaderboard/global", RequireAuth(verifier, http.HandlerFunc(handler.GetGlobalLeaderboard)))
	mux.Handle("GET /v1/groups/{groupID}/leaderboard", RequireAuth(verifier, http.HandlerFunc(handler.GetGroupLeaderboard)))
	mux.Handle("GET /v1/groups/{groupID}/slips/{slipID}/leaderboard", RequireAuth(verifier, http.HandlerFunc(handler.GetSlipLeaderboard)))
}

func registerAuthorizedSlipRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/groups/{groupID}/slips/{slipID}/summary", RequireAuth(verifier, http.HandlerFunc(handler.GetMySlipSummary)))
	mux.Handle("POST /v1/groups/{groupID}/slips/{slipID}/picks", RequireAuth(verifier, http.HandlerFunc(handler.SubmitPick)))
	mux.Handle("PATCH /v1/groups/{groupID}/picks/{pickID}/grade", RequireAuth(verifier, http.HandlerFunc(handler.GradePick)))
}
