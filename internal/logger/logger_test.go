package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"quiet", LevelQuiet},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			level := ParseLogLevel(tt.in)
			assert.Equal(t, tt.want, level)
			if tt.in != "bogus" {
				assert.Equal(t, tt.in, level.String())
			}
		})
	}
}

func TestConsoleLogger_RoutesByLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	log := NewConsoleWriter(LevelInfo, &stdout, &stderr)

	log.Debug("hidden %d", 1)
	log.Info("visible %d", 2)
	log.Warn("careful %s", "now")
	log.Error("broken")

	assert.Equal(t, "visible 2\n", stdout.String())
	assert.Equal(t, "careful now\nbroken\n", stderr.String())
}

func TestConsoleLogger_WithComponent(t *testing.T) {
	var stdout, stderr bytes.Buffer
	log := NewConsoleWriter(LevelDebug, &stdout, &stderr).WithComponent("shake")

	log.Debug("step %d", 3)

	assert.Equal(t, "[shake] step 3\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONWriter(LevelInfo, zapcore.AddSync(&buf))

	log.Debug("hidden")
	log.WithComponent("detect").Info("found %d", 4)
	require.NoError(t, log.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "found 4", entry["msg"])
	assert.Equal(t, "detect", entry["component"])
}

func TestNoopLogger(t *testing.T) {
	log := NewNoop()
	assert.Same(t, log, log.WithComponent("x"))
	log.Error("ignored %d", 1)
}

func TestConsoleLogger_QuietSuppressesErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	log := NewConsoleWriter(ParseLogLevel("quiet"), &stdout, &stderr)

	log.Info("visible")
	log.Error("broken")

	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestJSONLogger_Quiet(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONWriter(LevelQuiet, zapcore.AddSync(&buf))

	log.Error("broken")
	require.NoError(t, log.Sync())

	assert.Empty(t, buf.String())
}
