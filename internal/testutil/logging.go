package testutil

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// TestLogHandler records every log entry so tests can assert on what a
// handler logged. Loggers derived with With share the same record sink.
type TestLogHandler struct {
	sink  *logSink
	attrs []slog.Attr
}

type logSink struct {
	mu      sync.Mutex
	records []TestLogRecord
}

type TestLogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

func NewTestLogHandler() *TestLogHandler {
	return &TestLogHandler{sink: &logSink{}}
}

func (h *TestLogHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *TestLogHandler) Handle(_ context.Context, record slog.Record) error {
	attrs := make(map[string]any, len(h.attrs)+record.NumAttrs())
	for _, attr := range h.attrs {
		attrs[attr.Key] = attr.Value.Any()
	}
	record.Attrs(func(attr slog.Attr) bool {
		attrs[attr.Key] = attr.Value.Any()
		return true
	})

	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	h.sink.records = append(h.sink.records, TestLogRecord{
		Level:   record.Level,
		Message: record.Message,
		Attrs:   attrs,
	})

	return nil
}

func (h *TestLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TestLogHandler{sink: h.sink, attrs: append(slices.Clone(h.attrs), attrs...)}
}

// WithGroup is flat: grouped keys are recorded without their prefix.
func (h *TestLogHandler) WithGroup(string) slog.Handler {
	return h
}

func (h *TestLogHandler) GetRecords() []TestLogRecord {
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	return slices.Clone(h.sink.records)
}

// FindMessage returns the first record logged at level with the given message.
func (h *TestLogHandler) FindMessage(level slog.Level, message string) (TestLogRecord, bool) {
	for _, record := range h.GetRecords() {
		if record.Level == level && record.Message == message {
			return record, true
		}
	}
	return TestLogRecord{}, false
}

func (h *TestLogHandler) ContainsMessage(level slog.Level, message string) bool {
	_, ok := h.FindMessage(level, message)
	return ok
}

func (h *TestLogHandler) CountByLevel(level slog.Level) int {
	count := 0
	for _, record := range h.GetRecords() {
		if record.Level == level {
			count++
		}
	}
	return count
}
