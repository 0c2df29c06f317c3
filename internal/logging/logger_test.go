package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want log.Level
	}{
		{in: "debug", want: log.DebugLevel},
		{in: "info", want: log.InfoLevel},
		{in: "warn", want: log.WarnLevel},
		{in: "warning", want: log.WarnLevel},
		{in: "error", want: log.ErrorLevel},
		{in: " DEBUG ", want: log.DebugLevel},
		{in: "fatal", want: log.InfoLevel},
		{in: "verbose", want: log.InfoLevel},
		{in: "", want: log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logging.ParseLevel(tt.in))
		})
	}
}

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "warn")
	require.NotNil(t, logger)
	assert.Equal(t, log.WarnLevel, logger.GetLevel())

	logger.Info("hidden")
	logger.Warn("shown", logging.FieldRule, "MD009")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "rule=MD009")
}

func TestNewInteractive(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewInteractive(&buf)
	assert.Equal(t, log.InfoLevel, logger.GetLevel())

	logger.Info("created configuration file", logging.FieldPath, ".mdcheck.yml")
	assert.Contains(t, buf.String(), "created configuration file")
	assert.Contains(t, buf.String(), "path=.mdcheck.yml")
}

func TestDefault(t *testing.T) {
	t.Parallel()

	assert.Same(t, logging.Default(), logging.Default())
	assert.Equal(t, log.InfoLevel, logging.Default().GetLevel())
}

func TestContext(t *testing.T) {
	t.Parallel()

	assert.Same(t, logging.Default(), logging.FromContext(t.Context()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Same(t, logging.Default(), logging.FromContext(nil))

	logger := logging.New("warn")
	ctx := logging.WithLogger(context.Background(), logger)
	assert.Same(t, logger, logging.FromContext(ctx))
	assert.Same(t, logging.Default(), logging.FromContext(logging.WithLogger(ctx, nil)))
}
