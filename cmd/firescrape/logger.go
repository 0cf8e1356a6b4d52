package main

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/fwojciec/firescrape/config"
)

// newLogger builds the process logger. Text output goes through
// charmbracelet/log for readable terminal output.
func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.WarnLevel
	}

	if cfg.Format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.Level(level)}))
	}

	return slog.New(log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	}))
}
