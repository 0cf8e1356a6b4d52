package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fwojciec/firescrape/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := newLogger(config.LogConfig{Level: "info", Format: config.LogFormatJSON}, &buf)

		logger.Debug("hidden")
		logger.Info("fetch", "url", "https://example.com")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "fetch", entry["msg"])
		assert.Equal(t, "https://example.com", entry["url"])
	})

	t.Run("text respects level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := newLogger(config.LogConfig{Level: "warn", Format: config.LogFormatText}, &buf)

		logger.Info("quiet")
		logger.Warn("loud")

		assert.NotContains(t, buf.String(), "quiet")
		assert.Contains(t, buf.String(), "loud")
	})

	t.Run("unknown level falls back to warn", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := newLogger(config.LogConfig{Level: "chatty", Format: config.LogFormatText}, &buf)

		logger.Info("quiet")

		assert.Empty(t, buf.String())
	})
}
