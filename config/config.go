// Package config loads firescrape settings from a TOML file and the
// environment.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/firescrape"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "firescrape.toml"

// Environment variables.
const (
	EnvAPIKey = "FIRECRAWL_API_KEY"
	EnvAPIURL = "FIRECRAWL_API_URL"
	EnvConfig = "FIRESCRAPE_CONFIG"
)

// Extractors.
const (
	ExtractorReadability = "readability"
	ExtractorTrafilatura = "trafilatura"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds every setting read from the config file and environment.
type Config struct {
	APIKey    string `toml:"api_key"`
	APIURL    string `toml:"api_url"`
	// OutputDir is where results and checkpoints go when a command is not
	// given -d.
	OutputDir string `toml:"output_dir"`

	Fetch  FetchConfig  `toml:"fetch"`
	Search SearchConfig `toml:"search"`
	Batch  BatchConfig  `toml:"batch"`
	Log    LogConfig    `toml:"log"`
}

// FetchConfig configures the local fetch path.
type FetchConfig struct {
	Timeout    string `toml:"timeout"`
	Retries    int    `toml:"retries"`
	RetryDelay string `toml:"retry_delay"`
	Extractor  string `toml:"extractor"`
	// Render uses headless Chrome instead of plain HTTP.
	Render    bool   `toml:"render"`
	UserAgent string `toml:"user_agent"`
}

// SearchConfig configures the free search fallback.
type SearchConfig struct {
	Attempts      int    `toml:"attempts"`
	RetryDelay    string `toml:"retry_delay"`
	MinCandidates int    `toml:"min_candidates"`
}

// BatchConfig configures the batch runner. CheckpointEvery is the number
// of successes between checkpoint saves.
type BatchConfig struct {
	CheckpointEvery int `toml:"checkpoint_every"`
}

// LogConfig selects the log level (debug, info, warn, error) and format.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		OutputDir: ".",
		Fetch: FetchConfig{
			Timeout:    "30s",
			Retries:    3,
			RetryDelay: "2s",
			Extractor:  ExtractorReadability,
		},
		Search: SearchConfig{
			Attempts:      3,
			RetryDelay:    "2s",
			MinCandidates: 15,
		},
		Batch: BatchConfig{
			CheckpointEvery: 5,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: LogFormatText,
		},
	}
}

// Load reads the file at path over the defaults and applies environment
// overrides. An empty path means FIRESCRAPE_CONFIG or DefaultPath; a
// missing file is only an error when the path was given explicitly.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfig)
		explicit = path != ""
	}
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				row, col := derr.Position()
				return nil, firescrape.Errorf(firescrape.EINVALID, "%s:%d:%d: %s", path, row, col, derr.Error())
			}
			return nil, firescrape.Errorf(firescrape.EINVALID, "%s: %v", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		c.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		c.APIURL = v
	}
}

// HasCredential reports whether the hosted API can be used.
func (c *Config) HasCredential() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// Validate checks enumerated values and durations.
func (c *Config) Validate() error {
	switch c.Fetch.Extractor {
	case ExtractorReadability, ExtractorTrafilatura:
	default:
		return firescrape.Errorf(firescrape.EINVALID, "unknown extractor %q", c.Fetch.Extractor)
	}
	switch c.Log.Format {
	case LogFormatText, LogFormatJSON:
	default:
		return firescrape.Errorf(firescrape.EINVALID, "unknown log format %q", c.Log.Format)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return firescrape.Errorf(firescrape.EINVALID, "unknown log level %q", c.Log.Level)
	}
	for name, v := range map[string]string{
		"fetch.timeout":      c.Fetch.Timeout,
		"fetch.retry_delay":  c.Fetch.RetryDelay,
		"search.retry_delay": c.Search.RetryDelay,
	} {
		if _, err := time.ParseDuration(v); err != nil {
			return firescrape.Errorf(firescrape.EINVALID, "invalid duration %s = %q", name, v)
		}
	}
	if c.Fetch.Retries < 0 {
		return firescrape.Errorf(firescrape.EINVALID, "fetch.retries must not be negative")
	}
	if c.Search.Attempts < 1 {
		return firescrape.Errorf(firescrape.EINVALID, "search.attempts must be at least 1")
	}
	if c.Batch.CheckpointEvery < 1 {
		return firescrape.Errorf(firescrape.EINVALID, "batch.checkpoint_every must be at least 1")
	}
	return nil
}

// Duration parses a validated duration setting.
func Duration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
