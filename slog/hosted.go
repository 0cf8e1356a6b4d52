package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/firescrape"
)

// Ensure LoggingHostedService implements firescrape.HostedService.
var _ firescrape.HostedService = (*LoggingHostedService)(nil)

// LoggingHostedService wraps a HostedService with logging.
type LoggingHostedService struct {
	next   firescrape.HostedService
	logger *slog.Logger
}

// NewLoggingHostedService creates a new LoggingHostedService.
func NewLoggingHostedService(next firescrape.HostedService, logger *slog.Logger) *LoggingHostedService {
	return &LoggingHostedService{next: next, logger: logger}
}

// Scrape delegates to the wrapped service and logs the operation.
func (s *LoggingHostedService) Scrape(ctx context.Context, url string, opts firescrape.ScrapeOptions) (doc *firescrape.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Info("hosted scrape",
			"url", url,
			"formats", opts.Formats,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Scrape(ctx, url, opts)
}

// Crawl delegates to the wrapped service and logs the operation.
func (s *LoggingHostedService) Crawl(ctx context.Context, url string, opts firescrape.CrawlOptions) (docs []*firescrape.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Info("hosted crawl",
			"url", url,
			"limit", opts.Limit,
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Crawl(ctx, url, opts)
}

// Map delegates to the wrapped service and logs the operation.
func (s *LoggingHostedService) Map(ctx context.Context, url string, opts firescrape.MapOptions) (links []firescrape.Link, err error) {
	defer func(begin time.Time) {
		s.logger.Info("hosted map",
			"url", url,
			"count", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Map(ctx, url, opts)
}

// BatchScrape delegates to the wrapped service and logs the operation.
func (s *LoggingHostedService) BatchScrape(ctx context.Context, urls []string, opts firescrape.ScrapeOptions) (docs []*firescrape.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Info("hosted batch scrape",
			"urls", len(urls),
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.BatchScrape(ctx, urls, opts)
}
