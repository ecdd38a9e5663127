package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("test message", slog.String("key", "value"))
		logger.Error("error message", slog.Int("code", 500))

		assert.Equal(t, 2, handler.Count())
		assert.True(t, handler.ContainsMessage("test message"))
		assert.True(t, handler.ContainsAttr("key", "value"))
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelError), 1)
	})

	t.Run("keeps attributes of derived loggers", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With(slog.String("component", "processor")).
			WithGroup("stage").
			Info("shifted", slog.Int("rows", 4))

		rec, ok := handler.FindMessage("shifted")
		assert.True(t, ok)
		assert.Equal(t, "processor", rec.Attrs["component"])
		assert.Equal(t, int64(4), rec.Attrs["stage.rows"])
	})

	t.Run("clear", func(t *testing.T) {
		logger, handler := NewTestLogger(t)
		logger.Warn("warn msg")
		handler.Clear()
		assert.Equal(t, 0, handler.Count())
	})
}
