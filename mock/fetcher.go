package mock

import (
	"context"

	"github.com/fwojciec/firescrape"
)

var _ firescrape.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of firescrape.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ firescrape.ContentFetcher = (*ContentFetcher)(nil)

// ContentFetcher is a mock implementation of firescrape.ContentFetcher.
type ContentFetcher struct {
	FetchContentFn func(ctx context.Context, url string) (*firescrape.FetchResult, error)
}

func (f *ContentFetcher) FetchContent(ctx context.Context, url string) (*firescrape.FetchResult, error) {
	return f.FetchContentFn(ctx, url)
}
