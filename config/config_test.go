package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/firescrape"
	"github.com/fwojciec/firescrape/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "firescrape.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// Tests touching the environment cannot run in parallel.

func TestLoad_File(t *testing.T) {
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvAPIURL, "")

	path := writeConfig(t, `
api_key = "fc-file"
output_dir = "out"

[fetch]
timeout = "10s"
extractor = "trafilatura"
render = true

[search]
min_candidates = 20

[log]
level = "debug"
`)

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "fc-file", cfg.APIKey)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "10s", cfg.Fetch.Timeout)
	assert.Equal(t, config.ExtractorTrafilatura, cfg.Fetch.Extractor)
	assert.True(t, cfg.Fetch.Render)
	assert.Equal(t, 20, cfg.Search.MinCandidates)
	assert.Equal(t, "debug", cfg.Log.Level)

	// untouched keys keep their defaults
	assert.Equal(t, 3, cfg.Fetch.Retries)
	assert.Equal(t, 5, cfg.Batch.CheckpointEvery)
	assert.Equal(t, config.LogFormatText, cfg.Log.Format)
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv(config.EnvAPIKey, "fc-env")
	t.Setenv(config.EnvAPIURL, "http://localhost:3002")

	cfg, err := config.Load(writeConfig(t, `api_key = "fc-file"`))

	require.NoError(t, err)
	assert.Equal(t, "fc-env", cfg.APIKey)
	assert.Equal(t, "http://localhost:3002", cfg.APIURL)
	assert.True(t, cfg.HasCredential())
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvConfig, "")
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")

	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.False(t, cfg.HasCredential())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_ConfigFromEnv(t *testing.T) {
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvConfig, writeConfig(t, `output_dir = "from-env"`))

	cfg, err := config.Load("")

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.OutputDir)
}

func TestLoad_BadTOML(t *testing.T) {
	_, err := config.Load(writeConfig(t, "[fetch\ntimeout = 1"))

	assert.Equal(t, firescrape.EINVALID, firescrape.ErrorCode(err))
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{"unknown extractor", func(c *config.Config) { c.Fetch.Extractor = "boilerpipe" }},
		{"unknown log format", func(c *config.Config) { c.Log.Format = "xml" }},
		{"unknown log level", func(c *config.Config) { c.Log.Level = "loud" }},
		{"bad duration", func(c *config.Config) { c.Fetch.Timeout = "soon" }},
		{"negative retries", func(c *config.Config) { c.Fetch.Retries = -1 }},
		{"zero attempts", func(c *config.Config) { c.Search.Attempts = 0 }},
		{"zero checkpoint cadence", func(c *config.Config) { c.Batch.CheckpointEvery = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.Default()
			tt.modify(cfg)

			assert.Equal(t, firescrape.EINVALID, firescrape.ErrorCode(cfg.Validate()))
		})
	}

	assert.NoError(t, config.Default().Validate())
}

func TestDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2*time.Second, config.Duration("2s"))
	assert.Zero(t, config.Duration("bad"))
}
