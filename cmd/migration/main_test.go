package main

import (
	"testing"

	"github.com/riskibarqy/gotlocks/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, steps)

	steps, err = parseSteps([]string{" 3 "})
	require.NoError(t, err)
	assert.Equal(t, 3, steps)

	_, err = parseSteps([]string{"0"})
	assert.Error(t, err)
	_, err = parseSteps([]string{"x"})
	assert.Error(t, err)
}

func TestParseVersionAndTarget(t *testing.T) {
	v, err := parseVersion("1788000100")
	require.NoError(t, err)
	assert.Equal(t, 1788000100, v)

	_, err = parseVersion("-1")
	assert.Error(t, err)

	target, err := parseTarget("1788000200")
	require.NoError(t, err)
	assert.Equal(t, uint(1788000200), target)

	_, err = parseTarget("abc")
	assert.Error(t, err)
}

func TestWithPreparedBinaryDisabled(t *testing.T) {
	raw := "postgres://u:p@localhost:5432/gotlocks?sslmode=disable"

	assert.Equal(t, raw, withPreparedBinaryDisabled(raw, false))
	assert.Contains(t, withPreparedBinaryDisabled(raw, true), "disable_prepared_binary_result=yes")
	assert.Equal(t, "host=localhost dbname=gotlocks", withPreparedBinaryDisabled("host=localhost dbname=gotlocks", true))
}

func TestRun_RequiresCommandAndDBURL(t *testing.T) {
	logger := logging.NewNop()

	assert.ErrorIs(t, run(nil, logger), errUsage)

	t.Setenv("DB_URL", "")
	assert.EqualError(t, run([]string{"up"}, logger), "DB_URL is required")
}
