package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLogger(t *testing.T) {
	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: LogLevelInfo, Format: LogFormatText, Output: &buf})

		logger.Info("habit toggled", "habit", "read")

		assert.Contains(t, buf.String(), "habit toggled")
		assert.Contains(t, buf.String(), "habit=read")
	})

	t.Run("json format with service attributes", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{
			Level:          LogLevelInfo,
			Format:         LogFormatJSON,
			Output:         &buf,
			ServiceName:    "pulse",
			ServiceVersion: "1.0.0",
		})

		logger.Info("report built", "days", 7)

		entry := decodeEntry(t, &buf)
		assert.Equal(t, "report built", entry["msg"])
		assert.Equal(t, float64(7), entry["days"])
		assert.Equal(t, "pulse", entry["service"])
		assert.Equal(t, "1.0.0", entry["version"])
	})

	t.Run("level filter", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: LogLevelWarn, Format: LogFormatText, Output: &buf})

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")
		logger.Error("error message")

		out := buf.String()
		assert.NotContains(t, out, "debug message")
		assert.NotContains(t, out, "info message")
		assert.Contains(t, out, "warn message")
		assert.Contains(t, out, "error message")
	})

	t.Run("command scope from context", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: LogLevelInfo, Format: LogFormatJSON, Output: &buf})

		ctx := NewCommandContext(context.Background(), "user-1", "pulse habit toggle")
		ctx = WithCorrelationID(ctx, "corr-123")
		logger.With("component", "cli").InfoContext(ctx, "toggled")

		entry := decodeEntry(t, &buf)
		assert.Equal(t, "corr-123", entry[CorrelationIDKey])
		assert.Equal(t, "user-1", entry[UserIDKey])
		assert.Equal(t, "pulse habit toggle", entry[OperationKey])
		assert.Equal(t, "cli", entry["component"])
	})

	t.Run("scope lands inside an open group", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: LogLevelInfo, Format: LogFormatJSON, Output: &buf})

		ctx := WithCorrelationID(context.Background(), "corr-9")
		logger.WithGroup("outbox").InfoContext(ctx, "flushed", "published", 3)

		entry := decodeEntry(t, &buf)
		require.Contains(t, entry, "outbox")
		group, ok := entry["outbox"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(3), group["published"])
		assert.Equal(t, "corr-9", group[CorrelationIDKey])
	})
}

func TestLogConfigFor(t *testing.T) {
	t.Run("development keeps defaults", func(t *testing.T) {
		cfg := LogConfigFor("development", "", "", "")
		assert.Equal(t, LogLevelWarn, cfg.Level)
		assert.Equal(t, LogFormatText, cfg.Format)
		assert.Equal(t, "pulse", cfg.ServiceName)
	})

	t.Run("production switches to json", func(t *testing.T) {
		cfg := LogConfigFor("production", "", "", "1.2.3")
		assert.Equal(t, LogLevelInfo, cfg.Level)
		assert.Equal(t, LogFormatJSON, cfg.Format)
		assert.True(t, cfg.AddSource)
		assert.Equal(t, "1.2.3", cfg.ServiceVersion)
	})

	t.Run("explicit values win", func(t *testing.T) {
		cfg := LogConfigFor("production", "debug", "text", "")
		assert.Equal(t, LogLevelDebug, cfg.Level)
		assert.Equal(t, LogFormatText, cfg.Format)
	})
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		input    LogLevel
		expected slog.Level
	}{
		{LogLevelDebug, slog.LevelDebug},
		{LogLevelInfo, slog.LevelInfo},
		{LogLevelWarn, slog.LevelWarn},
		{LogLevelError, slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			assert.Equal(t, tt.expected, parseSlogLevel(tt.input))
		})
	}
}
