package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
		{"loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

// TestNew_DefaultLevelHidesDebug verifies the CLI stays quiet unless asked.
func TestNew_DefaultLevelHidesDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{})

	log.Debug("reading source")
	log.Info("rendered")
	assert.Empty(t, buf.String())

	log.Warn("marker missing", "marker", "const html = `")
	assert.Contains(t, buf.String(), "marker missing")
}

func TestNew_VerboseOverridesLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{Level: "error", Verbose: true})

	log.Debug("reading source", "path", "/tmp/x")
	assert.Contains(t, buf.String(), "reading source")
	assert.Contains(t, buf.String(), "path=/tmp/x")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{JSON: true})

	log.Warn("marker missing", "artifact", "styles")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "marker missing", entry["msg"])
	assert.Equal(t, "styles", entry["artifact"])
}
