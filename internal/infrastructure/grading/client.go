package grading

import (
	"context"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/gotlocks/internal/platform/logging"
	"github.com/riskibarqy/gotlocks/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	applyGradingPath   = "/pick/apply-grading"
	maxLoggedBodyBytes = 4096
)

type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Client triggers grading on the backend. Each call is a single POST with no
// body and no retries.
type Client struct {
	http     *fasthttp.Client
	baseURL  string
	timeout  time.Duration
	logger   *logging.Logger
	clockNow func() time.Time
}

func NewClient(cfg ClientConfig, logger *logging.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Client{
		http: &fasthttp.Client{
			Name:                "gotlocks-grading-relay",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
		baseURL:  strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		timeout:  timeout,
		logger:   logger,
		clockNow: time.Now,
	}
}

// ApplyGrading returns the upstream status and decoded body. Transport
// failures are returned as errors; non-2xx responses are not.
func (c *Client) ApplyGrading(ctx context.Context) (usecase.GradingUpstreamResponse, error) {
	if err := ctx.Err(); err != nil {
		return usecase.GradingUpstreamResponse{}, crerr.Wrap(err, "grading request canceled")
	}

	baseURL, err := validateHTTPBaseURL(c.baseURL)
	if err != nil {
		return usecase.GradingUpstreamResponse{}, crerr.Wrapf(usecase.ErrDependencyUnavailable, "invalid GRADING_BACKEND_URL: %v", err)
	}
	targetURL := baseURL + applyGradingPath
	curlPreview := buildCurlPreview(targetURL)

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("grading.target_url", targetURL),
			attribute.String("grading.request_curl_preview", curlPreview),
		)
	}
	c.logger.InfoContext(ctx, "grading relay request", "target_url", targetURL, "curl_preview", curlPreview)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(targetURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	if err := c.http.DoDeadline(req, resp, c.deadline(ctx)); err != nil {
		return usecase.GradingUpstreamResponse{}, crerr.Wrapf(err, "post %s", targetURL)
	}

	raw := append([]byte(nil), resp.Body()...)
	out := usecase.GradingUpstreamResponse{
		StatusCode: resp.StatusCode(),
		Body:       decodeBody(raw),
	}

	if span.IsRecording() {
		span.SetAttributes(
			attribute.Int("grading.status_code", out.StatusCode),
			attribute.String("grading.response_body", truncateForLog(string(raw), maxLoggedBodyBytes)),
		)
	}
	return out, nil
}

func (c *Client) deadline(ctx context.Context) time.Time {
	deadline := c.clockNow().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		return ctxDeadline
	}
	return deadline
}

// decodeBody keeps JSON bodies structured and falls back to the raw text.
func decodeBody(raw []byte) any {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil
	}

	var decoded any
	if err := sonic.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return trimmed
	}
	return decoded
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

func buildCurlPreview(targetURL string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for idx, part := range []string{
		"curl", "-X", "POST", shellQuote(targetURL),
		"-H", shellQuote("Accept: application/json"),
	} {
		if idx > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}
