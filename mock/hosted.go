package mock

import (
	"context"

	"github.com/fwojciec/firescrape"
)

var _ firescrape.HostedService = (*HostedService)(nil)

// HostedService is a mock implementation of firescrape.HostedService.
type HostedService struct {
	ScrapeFn      func(ctx context.Context, url string, opts firescrape.ScrapeOptions) (*firescrape.Document, error)
	CrawlFn       func(ctx context.Context, url string, opts firescrape.CrawlOptions) ([]*firescrape.Document, error)
	MapFn         func(ctx context.Context, url string, opts firescrape.MapOptions) ([]firescrape.Link, error)
	BatchScrapeFn func(ctx context.Context, urls []string, opts firescrape.ScrapeOptions) ([]*firescrape.Document, error)
}

func (s *HostedService) Scrape(ctx context.Context, url string, opts firescrape.ScrapeOptions) (*firescrape.Document, error) {
	return s.ScrapeFn(ctx, url, opts)
}

func (s *HostedService) Crawl(ctx context.Context, url string, opts firescrape.CrawlOptions) ([]*firescrape.Document, error) {
	return s.CrawlFn(ctx, url, opts)
}

func (s *HostedService) Map(ctx context.Context, url string, opts firescrape.MapOptions) ([]firescrape.Link, error) {
	return s.MapFn(ctx, url, opts)
}

func (s *HostedService) BatchScrape(ctx context.Context, urls []string, opts firescrape.ScrapeOptions) ([]*firescrape.Document, error) {
	return s.BatchScrapeFn(ctx, urls, opts)
}
