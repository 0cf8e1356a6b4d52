package mock

import (
	"context"

	"github.com/fwojciec/firescrape"
)

var _ firescrape.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of firescrape.SitemapService.
// With DiscoverURLsFn unset it behaves like a site without a sitemap.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *firescrape.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *firescrape.URLFilter) ([]string, error) {
	if s.DiscoverURLsFn == nil {
		return nil, nil
	}
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
