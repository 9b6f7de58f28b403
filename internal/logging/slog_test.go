package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil))), &buf
}

func TestSlogLogger_WritesStructuredFields(t *testing.T) {
	l, buf := newBufLogger(t)

	l.Info(context.Background(), "turn handled", "chat_id", int64(42))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "turn handled", rec["msg"])
	assert.Equal(t, float64(42), rec["chat_id"])
}

func TestSlogLogger_WithAddsPersistentFields(t *testing.T) {
	l, buf := newBufLogger(t)

	child := l.With("component", "gateway")
	child.Error(context.Background(), "poll failed")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "gateway", rec["component"])
	assert.Equal(t, "poll failed", rec["msg"])
}
