package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"anitrack/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("loud"))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "info", true)

	log.Debug("hidden")
	log.Info("login", "user", 7)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "login", rec["msg"])
	assert.Equal(t, float64(7), rec["user"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "debug", false)

	log.Debug("session rejected", "reason", "expired")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "reason=expired")
}
