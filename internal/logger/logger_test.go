package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultLevelInfo(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{Output: buf})

	log.Info("test info")
	assert.Contains(t, buf.String(), "test info")

	buf.Reset()
	log.Debug("test debug")
	assert.Empty(t, buf.String())
}

func TestNew_DebugLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	New(Options{Debug: true, Output: buf}).Debug("test debug message")
	assert.Contains(t, buf.String(), "test debug message")
}

func TestNew_QuietOnlyErrors(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{Quiet: true, Debug: true, Output: buf})

	log.Info("test info")
	log.Warn("test warn")
	assert.Empty(t, buf.String())

	log.Error("test error")
	assert.Contains(t, buf.String(), "test error")
}

func TestNew_JSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	New(Options{JSON: true, Output: buf}).Info("test message", "jobs", 5)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, float64(5), entry["jobs"])
}

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, Level(Options{}))
	assert.Equal(t, slog.LevelDebug, Level(Options{Debug: true}))
	assert.Equal(t, slog.LevelError, Level(Options{Quiet: true}))
}

func TestDiscard(t *testing.T) {
	log := Discard()
	require.NotNil(t, log)
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
	log.Error("dropped")
}
