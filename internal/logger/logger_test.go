package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/garyellow/whatsapp-course-bot/internal/ctxutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "output: %s", buf.String())
	return entry
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewWithWriter_KeyNames(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter("debug", &buf)
	log.Warn("careful")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "careful", entry["message"])
	assert.Equal(t, "warning", entry["level"])
	assert.Contains(t, entry, "timestamp")
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter("error", &buf)
	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Error("kept")
	assert.Equal(t, "error", decodeLine(t, &buf)["level"])
}

func TestLogger_Fields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithModule("webhook").
		WithRequestID("req-9").
		WithField("operation", "ug_list").
		WithFields(map[string]any{"status": 200}).
		WithError(errors.New("boom")).
		Info("done")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "webhook", entry["module"])
	assert.Equal(t, "req-9", entry["request_id"])
	assert.Equal(t, "ug_list", entry["operation"])
	assert.EqualValues(t, 200, entry["status"])
	assert.Equal(t, "boom", entry["error"])
}

func TestLogger_ContextValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	ctx := ctxutil.WithSenderID(context.Background(), "15550001111")
	log.InfoContext(ctx, "dispatched")

	assert.Equal(t, "15550001111", decodeLine(t, &buf)["sender_id"])
}

func TestLogger_ShutdownWithoutRemote(t *testing.T) {
	t.Parallel()

	log := NewWithWriter("info", &bytes.Buffer{})
	assert.NoError(t, log.Shutdown(context.Background()))
	assert.NoError(t, log.WithField("k", "v").Shutdown(context.Background()))
}

type recordingHandler struct {
	mu       sync.Mutex
	messages []string
	block    chan struct{}
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	if h.block != nil {
		<-h.block
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, r.Message)
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *recordingHandler) WithGroup(string) slog.Handler { return h }

func (h *recordingHandler) snapshot() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.messages...)
}

func TestAsyncHandler_DeliversOnShutdown(t *testing.T) {
	t.Parallel()

	rec := &recordingHandler{}
	h := NewAsyncHandler(rec, AsyncOptions{})
	logger := slog.New(h)

	logger.Info("one")
	logger.With("k", "v").Info("two")

	require.NoError(t, h.Shutdown(context.Background()))
	assert.Equal(t, []string{"one", "two"}, rec.snapshot())
	assert.Zero(t, h.Dropped())

	// Second shutdown is a no-op; records after shutdown are dropped.
	require.NoError(t, h.Shutdown(context.Background()))
	logger.Info("late")
	assert.Equal(t, uint64(1), h.Dropped())
}

func TestAsyncHandler_DropsWhenFull(t *testing.T) {
	t.Parallel()

	rec := &recordingHandler{block: make(chan struct{})}
	h := NewAsyncHandler(rec, AsyncOptions{BufferSize: 1})
	logger := slog.New(h)

	// The worker takes the first record and blocks; the buffer holds one more.
	for range 10 {
		logger.Info("burst")
	}
	assert.Positive(t, h.Dropped())

	close(rec.block)
	require.NoError(t, h.Shutdown(context.Background()))
}

func TestAsyncHandler_ShutdownTimeout(t *testing.T) {
	t.Parallel()

	rec := &recordingHandler{block: make(chan struct{})}
	defer close(rec.block)

	h := NewAsyncHandler(rec, AsyncOptions{FlushTimeout: 10 * time.Millisecond})
	slog.New(h).Info("stuck")

	err := h.Shutdown(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAsyncHandler_NilSafe(t *testing.T) {
	t.Parallel()

	var h *AsyncHandler
	assert.NoError(t, h.Shutdown(context.Background()))
	assert.Zero(t, h.Dropped())
}
