package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/gotlocks/internal/domain/user"
	"github.com/riskibarqy/gotlocks/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/gotlocks/internal/platform/id"
	"github.com/riskibarqy/gotlocks/internal/platform/logging"
	"github.com/riskibarqy/gotlocks/internal/platform/resilience"
	"github.com/riskibarqy/gotlocks/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testInternalJobToken = "job-token"

type staticVerifier map[string]string

func (v staticVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	userID, ok := v[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return user.Principal{UserID: userID}, nil
}

type stubGradingTrigger struct {
	resp usecase.GradingUpstreamResponse
	err  error
}

func (s stubGradingTrigger) ApplyGrading(context.Context) (usecase.GradingUpstreamResponse, error) {
	return s.resp, s.err
}

type recordedRequest struct {
	route  string
	status int
}

type recordingMetrics struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (m *recordingMetrics) ObserveHTTPRequest(route string, status int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, recordedRequest{route: route, status: status})
}

type testServer struct {
	handler http.Handler
	metrics *recordingMetrics
}

type testServerOptions struct {
	trigger  usecase.GradingTrigger
	cronAuth CronAuth
	limiter  *resilience.KeyedLimiter
}

func newTestServer(t *testing.T, opts testServerOptions) testServer {
	t.Helper()

	seed := memory.SeedData(time.Now())
	groups := memory.NewGroupRepository(seed.Groups, seed.Memberships)
	slips := memory.NewSlipRepository(seed.Slips)
	picks := memory.NewPickRepository(seed.Picks)
	runs := memory.NewGradingRunRepository(10)
	logger := logging.NewNop()

	if opts.trigger == nil {
		opts.trigger = stubGradingTrigger{resp: usecase.GradingUpstreamResponse{
			StatusCode: http.StatusOK,
			Body:       map[string]any{"graded": float64(3)},
		}}
	}

	handler := NewHandler(
		usecase.NewScoringService(nil),
		usecase.NewSlipSummaryService(groups, slips, picks, nil),
		usecase.NewLeaderboardService(groups, slips, picks, nil, 2, logger),
		usecase.NewPickService(groups, slips, picks, nil, id.NewUUIDGenerator(), logger),
		usecase.NewGradingService(opts.trigger, runs, id.NewUUIDGenerator(), nil, logger),
		opts.cronAuth,
		logger,
	)

	metrics := &recordingMetrics{}
	verifier := staticVerifier{
		"token-commish": "user-commish",
		"token-alex":    "user-alex",
		"token-sam":     "user-sam",
		"token-dana":    "user-dana",
	}

	return testServer{
		handler: NewRouter(handler, verifier, logger, RouterConfig{
			SwaggerEnabled:     true,
			CORSAllowedOrigins: []string{"*"},
			InternalJobToken:   testInternalJobToken,
			MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("# metrics\n"))
			}),
			Metrics:     metrics,
			RateLimiter: opts.limiter,
		}),
		metrics: metrics,
	}
}

func (s testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "expected data object, got %s", rec.Body.String())
	return data
}

func decodeErrorStatus(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error object, got %s", rec.Body.String())
	status, _ := errObj["status"].(string)
	return status
}

func entriesOf(t *testing.T, data map[string]any) []map[string]any {
	t.Helper()

	raw, ok := data["entries"].([]any)
	require.True(t, ok)
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		require.True(t, ok)
		out = append(out, entry)
	}
	return out
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testServerOptions{})
	rec := srv.do(t, http.MethodGet, "/healthz", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeData(t, rec)["status"])
}

func TestRouter_MetricsAndDocs(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testServerOptions{})

	rec := srv.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# metrics")

	rec = srv.do(t, http.MethodGet, "/openapi.yaml", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gotLocks API")

	rec = srv.do(t, http.MethodGet, "/docs", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "swagger-ui")
}

func TestRouter_ScoringTiers(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testServerOptions{})

	rec := srv.do(t, http.MethodGet, "/v1/scoring/tiers", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	assert.Equal(t, "groupLeaderboard", data["mode"])
	assert.EqualValues(t, 60, data["potential_cap"])
	tiers, ok := data["tiers"].([]any)
	require.True(t, ok)
	assert.Len(t, tiers, 5)

	rec = srv.do(t, http.MethodGet, "/v1/scoring/tiers?mode=global", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "global", decodeData(t, rec)["mode"])

	rec = srv.do(t, http.MethodGet, "/v1/scoring/tiers?mode=weekly", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_ARGUMENT", decodeErrorStatus(t, rec))
}

func TestRouter_PreviewScoring(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testServerOptions{})
	body := `{"mode":"groupLeaderboard","picks":[
		{"description":"Jets ML","odds":"+300","result":"win","bonus_points":5},
		{"description":"Dolphins ML","odds":"+600"},
		{"description":"Lions spread","odds":"-110","result":"loss"}
	]}`

	rec := srv.do(t, http.MethodPost, "/v1/scoring/preview", "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := decodeData(t, rec)
	assert.EqualValues(t, 45, data["total_points"])
	assert.EqualValues(t, 60, data["total_potential"])

	record, ok := data["record"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1, record["wins"])
	assert.EqualValues(t, 1, record["losses"])
	assert.EqualValues(t, 1, record["pending"])
}

func TestRouter_PreviewScoring_RejectsBadPayload(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testServerOptions{})

	rec := srv.do(t, http.MethodPost, "/v1/scoring/preview", "", `{"picks":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, "/v1/scoring/preview", "", `{"picks":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, "/v1/scoring/preview", "", `{"unknown":true,"picks":[{"odds":"+100"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_AuthorizedRoutesRequireToken(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testServerOptions{})

	rec := srv.do(t, http.MethodGet, "/v1/leaderboard/global", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHENTICATED", decodeErrorStatus(t, rec))

	rec = srv.do(t, http.MethodGet, "/v1/leaderboard/global", "bogus", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_GroupLeaderboard(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testServerOptions{})
	path := "/v1/groups/" + memory.GroupIDSundaySharps + "/leaderboard"

	rec := srv.do(t, http.MethodGet, path, "token-alex", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := decodeData(t, rec)
	assert.Equal(t, "group", data["scope"])
	assert.EqualValues(t, 2, data["slip_count"])

	entries := entriesOf(t, data)
	require.Len(t, entries, 3)
	assert.Equal(t, "user-alex", entries[0]["user_id"])
	assert.EqualValues(t, 45, entries[0]["points"])
	assert.EqualValues(t, 1, entries[0]["rank"])
	assert.Equal(t, "user-sam", entries[1]["user_id"])
	assert.EqualValues(t, 40, entries[1]["points"])
	assert.Equal(t, "user-commish", entries[2]["user_id"])
	assert.EqualValues(t, 10, entries[2]["points"])
}

func TestRouter_GroupLeaderboard_NonMemberForbidden(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testServerOptions{})
	rec := srv.do(t, http.MethodGet, "/v1/groups/"+memory.GroupIDSundaySharps+"/leaderboard", "token-dana", "")

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "PERMISSION_DENIED", decodeErrorStatus(t, rec))
}

func TestRouter_SlipLeaderboardAndSummary(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testServerOptions{})
	base := "/v1/groups/" + memory.GroupIDSundaySharps + "/slips/" + memory.SlipIDWeekOne

	rec := srv.do(t, http.MethodGet, base+"/leaderboard", "token-sam", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeData(t, rec)
	assert.Equal(t, "slip", data["scope"])
	assert.Equal(t, memory.SlipIDWeekOne, data["scope_id"])

	rec = srv.do(t, http.MethodGet, base+"/summary", "token-sam", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data = decodeData(t, rec)
	assert.Equal(t, "completed", data["status"])
	assert.EqualValues(t, 40, data["earned_points"])
	picks, ok := data["picks"].([]any)
	require.True(t, ok)
	assert.Len(t, picks, 2)

	rec = srv.do(t, http.MethodGet, "/v1/groups/"+memory.GroupIDSundaySharps+"/slips/missing/summary", "token-sam", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_GlobalLeaderboard(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testServerOptions{})
	rec := srv.do(t, http.MethodGet, "/v1/leaderboard/global", "token-dana", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeData(t, rec)
	assert.Equal(t, "global", data["mode"])
	entries := entriesOf(t, data)
	require.NotEmpty(t, entries)
	assert.Equal(t, "user-alex", entries[0]["user_id"])
}

func TestRouter_SubmitPick(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testServerOptions{})
	path := "/v1/groups/" + memory.GroupIDSundaySharps + "/slips/" + memory.SlipIDWeekTwo + "/picks"

	rec := srv.do(t, http.MethodPost, path, "token-commish", `{"description":"Bills ML","odds":"+120"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	data := decodeData(t, rec)
	assert.Equal(t, "pending", data["result"])
	assert.Equal(t, "user-commish", data["user_id"])
	assert.EqualValues(t, 0, data["points"])
	assert.EqualValues(t, 25, data["potential_points"])
	assert.Equal(t, "T3", data["tier_label"])
}

func TestRouter_SubmitPick_Rejections(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testServerOptions{})
	groupPath := "/v1/groups/" + memory.GroupIDSundaySharps

	rec := srv.do(t, http.MethodPost, groupPath+"/slips/"+memory.SlipIDWeekOne+"/picks", "token-alex", `{"description":"Late pick","odds":"+120"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.do(t, http.MethodPost, groupPath+"/slips/"+memory.SlipIDWeekTwo+"/picks", "token-alex", `{"odds":"+120"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, groupPath+"/slips/"+memory.SlipIDWeekTwo+"/picks", "token-dana", `{"description":"Outsider","odds":"+120"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_GradePick(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testServerOptions{})
	path := "/v1/groups/" + memory.GroupIDSundaySharps + "/picks/pick-006/grade"

	rec := srv.do(t, http.MethodPatch, path, "token-alex", `{"result":"win"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodPatch, path, "token-commish", `{"result":"maybe"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPatch, path, "token-commish", `{"result":"win","bonus_points":5}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := decodeData(t, rec)
	assert.Equal(t, "win", data["result"])
	assert.EqualValues(t, 65, data["points"])
	assert.NotEmpty(t, data["graded_at"])
	assert.Nil(t, data["potential_points"])
}

func TestRouter_TriggerGrading(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testServerOptions{})
	rec := srv.do(t, http.MethodGet, "/api/cron/grade-picks", "", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 200, body["upstream_status"])
	assert.Equal(t, map[string]any{"graded": float64(3)}, body["upstream_body"])
	assert.Contains(t, body, "duration_ms")
	assert.NotContains(t, body, "apiVersion")

	rec = srv.do(t, http.MethodGet, "/v1/internal/grading/runs", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/internal/grading/runs?limit=5", nil)
	req.Header.Set("X-Internal-Job-Token", testInternalJobToken)
	runsRec := httptest.NewRecorder()
	srv.handler.ServeHTTP(runsRec, req)
	require.Equal(t, http.StatusOK, runsRec.Code, runsRec.Body.String())

	var runsBody map[string]any
	require.NoError(t, sonic.Unmarshal(runsRec.Body.Bytes(), &runsBody))
	runs, ok := runsBody["data"].([]any)
	require.True(t, ok)
	require.Len(t, runs, 1)
	run, ok := runs[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, usecase.GradingTriggerHTTP, run["trigger"])
	assert.Equal(t, "success", run["outcome"])
}

func TestRouter_TriggerGrading_UpstreamFailure(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testServerOptions{trigger: stubGradingTrigger{resp: usecase.GradingUpstreamResponse{
		StatusCode: http.StatusBadGateway,
		Body:       "bad gateway",
	}}})
	rec := srv.do(t, http.MethodGet, "/api/cron/grade-picks", "", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.EqualValues(t, 502, body["upstream_status"])
	assert.Equal(t, "bad gateway", body["upstream_body"])
}

func TestRouter_TriggerGrading_TransportFailure(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testServerOptions{trigger: stubGradingTrigger{err: errors.New("dial tcp: connection refused")}})
	rec := srv.do(t, http.MethodGet, "/api/cron/grade-picks", "", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "connection refused")
}

func TestRouter_TriggerGrading_CronSecret(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testServerOptions{cronAuth: CronAuth{Enabled: true, Secret: "s3cret"}})

	rec := srv.do(t, http.MethodGet, "/api/cron/grade-picks", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/cron/grade-picks", "wrong", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/cron/grade-picks", "s3cret", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testServerOptions{limiter: resilience.NewKeyedLimiter(0.001, 1)})

	rec := srv.do(t, http.MethodGet, "/v1/scoring/tiers", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/v1/scoring/tiers", "", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Equal(t, "RESOURCE_EXHAUSTED", decodeErrorStatus(t, rec))

	rec = srv.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RecordsRouteMetrics(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testServerOptions{})
	srv.do(t, http.MethodGet, "/v1/groups/"+memory.GroupIDSundaySharps+"/leaderboard", "token-alex", "")
	srv.do(t, http.MethodGet, "/nope", "", "")

	srv.metrics.mu.Lock()
	defer srv.metrics.mu.Unlock()
	require.Len(t, srv.metrics.requests, 2)
	assert.Equal(t, recordedRequest{route: "GET /v1/groups/{groupID}/leaderboard", status: http.StatusOK}, srv.metrics.requests[0])
	assert.Equal(t, recordedRequest{route: "", status: http.StatusNotFound}, srv.metrics.requests[1])
}
