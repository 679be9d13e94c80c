package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogDurationWritesTraceID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := FromLogger(zap.New(core))

	ctx := WithTraceID(context.Background(), "abc-123")
	l.LogDuration(ctx, "Analyze")()

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "Analyze", fields["func"])
	assert.Equal(t, "abc-123", fields["trace_id"])
	assert.Contains(t, fields, "duration_ms")
}

func TestTraceIDMissing(t *testing.T) {
	assert.Equal(t, "", TraceID(context.Background()))
}

func TestNewLoggersCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	l, err := NewLoggers(dir)
	require.NoError(t, err)

	l.App.Info("hello")
	l.Sync()

	_, err = os.Stat(filepath.Join(dir, "app.log"))
	assert.NoError(t, err)
}
