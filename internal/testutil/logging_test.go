package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestLogHandler_DerivedLoggersShareRecords(t *testing.T) {
	handler := NewTestLogHandler()
	logger := slog.New(handler).With("instance", "pod-a")

	logger.Warn("first", "attempt", 1)
	slog.New(handler).Info("second")

	require.Len(t, handler.GetRecords(), 2)
	assert.Equal(t, 1, handler.CountByLevel(slog.LevelWarn))
	assert.Equal(t, 0, handler.CountByLevel(slog.LevelError))

	record, ok := handler.FindMessage(slog.LevelWarn, "first")
	require.True(t, ok)
	assert.Equal(t, "pod-a", record.Attrs["instance"])
	assert.Equal(t, int64(1), record.Attrs["attempt"])

	assert.True(t, handler.ContainsMessage(slog.LevelInfo, "second"))
	assert.False(t, handler.ContainsMessage(slog.LevelWarn, "second"))
}
