// Package fetch turns URLs into articles. A Dispatcher tries the hosted
// scraping service when one is configured and falls back to downloading and
// extracting the page locally.
package fetch

import (
	"context"
	"log/slog"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/fwojciec/firescrape"
)

// TimeLayout is the normalized publish time format.
const TimeLayout = "2006-01-02 15:04:05"

// Ensure Dispatcher implements firescrape.ContentFetcher at compile time.
var _ firescrape.ContentFetcher = (*Dispatcher)(nil)

// Dispatcher picks a fetch strategy per call. Hosted is optional and only
// set when a credential is available; Local is always required.
type Dispatcher struct {
	Hosted firescrape.ContentFetcher
	Local  firescrape.ContentFetcher
	Logger *slog.Logger
}

// NewDispatcher creates a Dispatcher. hosted may be nil.
func NewDispatcher(hosted, local firescrape.ContentFetcher, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{Hosted: hosted, Local: local, Logger: logger}
}

// FetchContent tries Hosted first and falls back to Local on any error
// other than cancellation of ctx.
func (d *Dispatcher) FetchContent(ctx context.Context, url string) (*firescrape.FetchResult, error) {
	if d.Hosted != nil {
		result, err := d.Hosted.FetchContent(ctx, url)
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		d.Logger.Warn("hosted fetch failed, using local extraction",
			"url", url,
			"code", firescrape.ErrorCode(err),
			"err", err,
		)
	}
	return d.Local.FetchContent(ctx, url)
}

// ItemFetcher adapts a ContentFetcher to the batch runner. Items that
// already carry content are converted without fetching.
func ItemFetcher(cf firescrape.ContentFetcher) firescrape.ItemFetchFunc {
	return func(ctx context.Context, item firescrape.BatchItem) (*firescrape.FetchResult, error) {
		if strings.TrimSpace(item.Content) != "" {
			title := item.Title
			if title == "" {
				title = item.URL
			}
			return &firescrape.FetchResult{
				Title:   title,
				Content: firescrape.NormalizeWhitespace(item.Content),
				URL:     item.URL,
			}, nil
		}
		return cf.FetchContent(ctx, item.URL)
	}
}

// NormalizePublishTime rewrites a date found in a page as TimeLayout,
// keeping the wall clock as written. Values that cannot be parsed are
// returned trimmed but otherwise unchanged.
func NormalizePublishTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return raw
	}
	return t.Format(TimeLayout)
}
