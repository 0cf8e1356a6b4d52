package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/firescrape"
)

// Ensure LoggingFetcher implements firescrape.Fetcher.
var _ firescrape.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   firescrape.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next firescrape.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"code", firescrape.ErrorCode(err),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingContentFetcher implements firescrape.ContentFetcher.
var _ firescrape.ContentFetcher = (*LoggingContentFetcher)(nil)

// LoggingContentFetcher wraps a ContentFetcher with logging.
type LoggingContentFetcher struct {
	next   firescrape.ContentFetcher
	logger *slog.Logger
}

// NewLoggingContentFetcher creates a new LoggingContentFetcher.
func NewLoggingContentFetcher(next firescrape.ContentFetcher, logger *slog.Logger) *LoggingContentFetcher {
	return &LoggingContentFetcher{next: next, logger: logger}
}

// FetchContent delegates to the wrapped fetcher and logs the operation.
func (f *LoggingContentFetcher) FetchContent(ctx context.Context, url string) (result *firescrape.FetchResult, err error) {
	defer func(begin time.Time) {
		var title string
		var size int
		if result != nil {
			title, size = result.Title, len(result.Content)
		}
		f.logger.Info("fetch content",
			"url", url,
			"title", title,
			"bytes", size,
			"duration", time.Since(begin),
			"code", firescrape.ErrorCode(err),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchContent(ctx, url)
}
