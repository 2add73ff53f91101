package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &out))
	buf.Reset()
	return out
}

func TestLoggerWritesKeyValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, LevelInfo).With("service", "gotlocks")

	logger.Warn("grading upstream failed", "status", 502, "error", errors.New("bad gateway"), 7)
	line := decodeLine(t, &buf)

	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "grading upstream failed", line["msg"])
	assert.Equal(t, "gotlocks", line["service"])
	assert.EqualValues(t, 502, line["status"])
	assert.Equal(t, "bad gateway", line["error"])
	assert.Contains(t, line, "arg")
	assert.Contains(t, line["caller"], "logger_test.go")
}

func TestLoggerRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, LevelWarn)

	logger.Info("dropped")
	logger.DebugContext(context.Background(), "dropped")
	assert.Zero(t, buf.Len())

	logger.Error("kept")
	assert.NotZero(t, buf.Len())
}

func TestLoggerAddsTraceFields(t *testing.T) {
	t.Parallel()

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	var buf bytes.Buffer
	New(&buf, LevelInfo).InfoContext(ctx, "pick graded", "pick_id", "pick-1")
	line := decodeLine(t, &buf)

	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", line["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", line["span_id"])

	New(&buf, LevelInfo).InfoContext(context.Background(), "no span")
	assert.NotContains(t, decodeLine(t, &buf), "trace_id")
}

func TestNilLoggerUsesDefault(t *testing.T) {
	var logger *Logger
	assert.NotPanics(t, func() {
		logger.Info("nothing configured")
		_ = logger.With("k", "v")
		_ = logger.Sync()
	})
	assert.NotNil(t, Default())
}
