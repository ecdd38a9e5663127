package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edgestats/internal/config"
)

func decodeLines(t *testing.T, raw string) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestNewLogger_Outputs(t *testing.T) {
	tests := []struct {
		name       string
		output     string
		wantStdout bool
		wantFile   bool
	}{
		{name: "console", output: "console", wantStdout: true},
		{name: "file", output: "file", wantFile: true},
		{name: "both", output: "both", wantStdout: true, wantFile: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout bytes.Buffer
			path := filepath.Join(t.TempDir(), "logs", "edge.log")

			logger, file, err := NewLogger(config.LoggingConfig{
				Level: "info", Output: tt.output, FilePath: path,
			}, &stdout)
			require.NoError(t, err)
			logger.Info("built game tables", "home_away_rows", 12)
			if file != nil {
				require.NoError(t, file.Close())
			}

			if tt.wantStdout {
				entries := decodeLines(t, stdout.String())
				require.Len(t, entries, 1)
				assert.Equal(t, "built game tables", entries[0]["msg"])
				assert.Equal(t, float64(12), entries[0]["home_away_rows"])
				assert.Equal(t, "INFO", entries[0]["level"])
			} else {
				assert.Empty(t, stdout.String())
			}

			if tt.wantFile {
				content, err := os.ReadFile(path)
				require.NoError(t, err)
				assert.Len(t, decodeLines(t, string(content)), 1)
			} else {
				assert.NoFileExists(t, path)
			}
		})
	}
}

func TestTraceIDInjection(t *testing.T) {
	var stdout bytes.Buffer
	logger, _, err := NewLogger(config.LoggingConfig{Level: "debug", Output: "console"}, &stdout)
	require.NoError(t, err)

	ctx := WithTraceID(context.Background(), "test-trace-123")
	logger.With("component", "test").InfoContext(ctx, "with trace")
	logger.Info("without trace")

	entries := decodeLines(t, stdout.String())
	require.Len(t, entries, 2)
	assert.Equal(t, "test-trace-123", entries[0]["trace_id"])
	assert.Equal(t, "test", entries[0]["component"])
	assert.NotContains(t, entries[1], "trace_id")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.level))
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var stdout bytes.Buffer
	logger, _, err := NewLogger(config.LoggingConfig{Level: "warn", Output: "console"}, &stdout)
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")
	entries := decodeLines(t, stdout.String())
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0]["msg"])
}

func TestInitializeLogger_SetsDefault(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() {
		_ = CloseLogFile()
		slog.SetDefault(previous)
	})

	path := filepath.Join(t.TempDir(), "edge.log")
	logger, err := InitializeLogger(config.LoggingConfig{Level: "info", Output: "file", FilePath: path})
	require.NoError(t, err)
	assert.Same(t, logger, GetLogger())
	assert.Same(t, logger, slog.Default())
}
