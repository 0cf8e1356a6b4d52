// Package search implements firescrape.Searcher over the hosted search API
// with a free search engine as fallback.
package search

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/purell"
	"github.com/fwojciec/firescrape"
)

// Defaults for the free search path.
const (
	DefaultAttempts      = 3
	DefaultRetryDelay    = 2 * time.Second
	DefaultMinCandidates = 15
)

// urlFlags decide when two result URLs are the same page.
const urlFlags = purell.FlagLowercaseScheme |
	purell.FlagLowercaseHost |
	purell.FlagRemoveDefaultPort |
	purell.FlagRemoveFragment |
	purell.FlagDecodeUnnecessaryEscapes |
	purell.FlagSortQuery |
	purell.FlagRemoveDotSegments

// Ensure Provider implements firescrape.Searcher at compile time.
var _ firescrape.Searcher = (*Provider)(nil)

// Provider searches the hosted API when one is configured and the free
// engine otherwise, or when the hosted search fails.
type Provider struct {
	hosted firescrape.Searcher
	engine firescrape.SearchEngine

	attempts      int
	delay         time.Duration
	minCandidates int
	logger        *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithAttempts sets how many times the engine is queried when it fails or
// returns nothing, and the fixed delay between attempts.
func WithAttempts(n int, delay time.Duration) Option {
	return func(p *Provider) {
		if n > 0 {
			p.attempts = n
		}
		p.delay = delay
	}
}

// WithMinCandidates sets the lower bound on candidates requested from the
// engine before ranking.
func WithMinCandidates(n int) Option {
	return func(p *Provider) {
		p.minCandidates = n
	}
}

// WithLogger sets the logger used for fallbacks and retries.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// NewProvider creates a Provider. Either hosted or engine may be nil, but
// Search fails with EDEPENDENCY when both are.
func NewProvider(hosted firescrape.Searcher, engine firescrape.SearchEngine, opts ...Option) *Provider {
	p := &Provider{
		hosted:        hosted,
		engine:        engine,
		attempts:      DefaultAttempts,
		delay:         DefaultRetryDelay,
		minCandidates: DefaultMinCandidates,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Search returns at most limit hits for query, relevant ones first.
func (p *Provider) Search(ctx context.Context, query string, limit int) ([]firescrape.SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, firescrape.Errorf(firescrape.EINVALID, "search query is required")
	}
	if limit <= 0 {
		return nil, firescrape.Errorf(firescrape.EINVALID, "limit must be positive, got %d", limit)
	}
	if p.hosted == nil && p.engine == nil {
		return nil, firescrape.Errorf(firescrape.EDEPENDENCY, "no search backend configured")
	}

	if p.hosted != nil {
		hits, err := p.hosted.Search(ctx, query, limit)
		if err == nil && len(hits) > 0 {
			if len(hits) > limit {
				hits = hits[:limit]
			}
			return hits, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if p.engine == nil {
			if err != nil {
				return nil, err
			}
			return nil, firescrape.Errorf(firescrape.EEMPTY, "no results for %q", query)
		}
		p.logger.Warn("hosted search failed, using free engine",
			"query", query,
			"code", firescrape.ErrorCode(err),
			"err", err,
		)
	}

	candidates, err := p.query(ctx, query, max(limit*3, p.minCandidates))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, firescrape.Errorf(firescrape.EEMPTY, "no results for %q: %s", query, firescrape.ErrorMessage(err))
	}

	hits := firescrape.RankByRelevance(query, Dedupe(candidates), limit)
	if len(hits) == 0 {
		return nil, firescrape.Errorf(firescrape.EEMPTY, "no results for %q", query)
	}
	return hits, nil
}

// query asks the engine for candidates, retrying on errors and on empty
// results. The last error is returned once attempts run out; running out
// with no error yields an empty slice.
func (p *Provider) query(ctx context.Context, query string, max int) ([]firescrape.SearchHit, error) {
	region := firescrape.SearchRegion(query)
	for attempt := 1; ; attempt++ {
		hits, err := p.engine.Query(ctx, query, region, max)
		if err == nil && len(hits) > 0 {
			return hits, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt >= p.attempts {
			return nil, err
		}

		p.logger.Debug("retrying search",
			"query", query,
			"region", region,
			"attempt", attempt+1,
			"err", err,
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.delay):
		}
	}
}

// Dedupe drops hits whose normalized URL was already seen, keeping the
// first occurrence.
func Dedupe(hits []firescrape.SearchHit) []firescrape.SearchHit {
	seen := make(map[string]bool, len(hits))
	out := make([]firescrape.SearchHit, 0, len(hits))
	for _, h := range hits {
		key, err := purell.NormalizeURLString(h.URL, urlFlags)
		if err != nil {
			key = h.URL
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, h)
	}
	return out
}
