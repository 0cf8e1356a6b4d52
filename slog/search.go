package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/firescrape"
)

// Ensure LoggingSearcher implements firescrape.Searcher.
var _ firescrape.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with logging.
type LoggingSearcher struct {
	next   firescrape.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next firescrape.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the operation.
func (s *LoggingSearcher) Search(ctx context.Context, query string, limit int) (hits []firescrape.SearchHit, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"query", query,
			"limit", limit,
			"count", len(hits),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, limit)
}
