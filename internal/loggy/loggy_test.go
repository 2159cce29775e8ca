package loggy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{Level: slog.LevelDebug, Format: "json", AddSource: true})

	logger.Info("calling gemini", "model", "gemini-1.5-flash")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "calling gemini", record["msg"])
	assert.Equal(t, "gemini-1.5-flash", record["model"])
	assert.Contains(t, record["source"], "loggy_test.go")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{Level: slog.LevelWarn, Format: "text"})

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.NotContains(t, out, "source=", "source attrs are off unless configured")
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger
	assert.NotPanics(t, func() {
		logger.Info("nothing")
		_ = logger.With("k", "v")
	})
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := GetGlobalLogger()
	SetGlobalLogger(NewWithWriter(&buf, Config{Level: slog.LevelInfo, Format: "text"}))
	defer SetGlobalLogger(prev)

	id := NewRequestID()
	assert.True(t, strings.HasPrefix(id, "req-"))

	ctx := WithRequestID(context.Background(), id)
	assert.Equal(t, id, GetRequestID(ctx))

	FromContext(ctx).Info("review started")
	assert.Contains(t, buf.String(), "request_id="+id)
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	noop := NewNoopLogger()
	assert.Same(t, noop, FromContext(context.Background()))
	assert.Equal(t, "", GetRequestID(context.Background()))
}

func TestNewDiscardLoggerKeepsGlobal(t *testing.T) {
	previous := GetGlobalLogger()
	t.Cleanup(func() { SetGlobalLogger(previous) })

	var buf bytes.Buffer
	global := NewWithWriter(&buf, Config{Level: slog.LevelInfo})
	SetGlobalLogger(global)

	discard := NewDiscardLogger()
	discard.Error("dropped")

	assert.Same(t, global, GetGlobalLogger())
	assert.Empty(t, buf.String())
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{Level: slog.LevelInfo, Format: "json"})

	assert.Same(t, logger, logger.WithError(nil))

	logger.WithError(errors.New("quota exceeded")).Error("Gemini call failed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Gemini call failed", entry["msg"])
	assert.Equal(t, "quota exceeded", entry["error"])
}
