package log_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cataplot/palette/pkg/log"
)

func TestGetLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input    string
		err      error
		expected slog.Level
	}{
		"error":             {input: "error", expected: slog.LevelError},
		"warn":              {input: "warn", expected: slog.LevelWarn},
		"warning alias":     {input: "warning", expected: slog.LevelWarn},
		"info":              {input: "info", expected: slog.LevelInfo},
		"debug":             {input: "debug", expected: slog.LevelDebug},
		"mixed case":        {input: "INFO", expected: slog.LevelInfo},
		"unknown level":     {input: "trace", err: log.ErrUnknownLogLevel},
		"empty string":      {input: "", err: log.ErrUnknownLogLevel},
		"whitespace padded": {input: " info", err: log.ErrUnknownLogLevel},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			lvl, err := log.GetLevel(tc.input)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, lvl)
		})
	}
}

func TestGetFormat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input    string
		err      error
		expected log.Format
	}{
		"json":           {input: "json", expected: log.FormatJSON},
		"logfmt":         {input: "logfmt", expected: log.FormatLogfmt},
		"text":           {input: "text", expected: log.FormatText},
		"mixed case":     {input: "JSON", expected: log.FormatJSON},
		"unknown format": {input: "xml", err: log.ErrUnknownLogFormat},
		"empty string":   {input: "", err: log.ErrUnknownLogFormat},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			format, err := log.GetFormat(tc.input)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, format)
		})
	}
}

func TestCreateHandlerWithStrings(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level  string
		format string
		err    error
	}{
		"valid json":     {level: "info", format: "json"},
		"valid logfmt":   {level: "debug", format: "logfmt"},
		"valid text":     {level: "warn", format: "text"},
		"invalid level":  {level: "nope", format: "json", err: log.ErrInvalidArgument},
		"invalid format": {level: "info", format: "nope", err: log.ErrInvalidArgument},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			handler, err := log.CreateHandlerWithStrings(io.Discard, tc.level, tc.format)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, handler)
		})
	}
}

func TestCreateHandlerJSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	handler := log.CreateHandler(&buf, slog.LevelInfo, log.FormatJSON)
	logger := slog.New(handler)

	logger.Info("hello", slog.String("key", "value"))
	logger.Debug("filtered out")

	var record map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "value", record["key"])
}

func TestContextWithLogger(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := log.ContextWithLogger(t.Context(), logger)

	assert.Same(t, logger, log.WithContext(ctx))
}

func TestWithContextFallsBackToDefault(t *testing.T) {
	t.Parallel()

	assert.Same(t, slog.Default(), log.WithContext(t.Context()))
}
