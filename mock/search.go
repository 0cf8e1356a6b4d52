package mock

import (
	"context"

	"github.com/fwojciec/firescrape"
)

var _ firescrape.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of firescrape.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string, limit int) ([]firescrape.SearchHit, error)
}

func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]firescrape.SearchHit, error) {
	return s.SearchFn(ctx, query, limit)
}

var _ firescrape.SearchEngine = (*SearchEngine)(nil)

// SearchEngine is a mock implementation of firescrape.SearchEngine.
type SearchEngine struct {
	QueryFn func(ctx context.Context, query string, region string, max int) ([]firescrape.SearchHit, error)
}

func (e *SearchEngine) Query(ctx context.Context, query string, region string, max int) ([]firescrape.SearchHit, error) {
	return e.QueryFn(ctx, query, region, max)
}
