package firescrape

import (
	"context"
	"strings"
	"unicode"
)

// SearchHit is a single web search result.
type SearchHit struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`

	// Content is the page body as Markdown. Only set when content
	// fetching was requested from a provider that supports it.
	Content string `json:"content,omitempty"`
}

// Searcher returns ranked results for a query.
type Searcher interface {
	// Search returns at most limit hits, most relevant first.
	// Returns EEMPTY if no results were found.
	Search(ctx context.Context, query string, limit int) ([]SearchHit, error)
}

// SearchEngine is a free, unauthenticated search backend queried for raw
// candidates. Results are unranked and may contain duplicates.
type SearchEngine interface {
	Query(ctx context.Context, query string, region string, max int) ([]SearchHit, error)
}

// Search regions passed to SearchEngine.
const (
	RegionWorldwide = "wt-wt"
	RegionChinese   = "cn-zh"
)

// ContainsCJK reports whether s contains Chinese, Japanese or Korean script.
func ContainsCJK(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) {
			return true
		}
	}
	return false
}

// SearchRegion picks the engine region for a query.
func SearchRegion(query string) string {
	if ContainsCJK(query) {
		return RegionChinese
	}
	return RegionWorldwide
}

// QueryTokens splits a query into lowercase match tokens. CJK queries are
// not whitespace-delimited so the whole query is a single token.
func QueryTokens(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	if ContainsCJK(q) {
		return []string{q}
	}
	return strings.Fields(q)
}

// IsRelevant reports whether any query token appears in the hit's title,
// description or URL.
func IsRelevant(hit SearchHit, tokens []string) bool {
	text := strings.ToLower(hit.Title + " " + hit.Description)
	u := strings.ToLower(hit.URL)
	for _, tok := range tokens {
		if strings.Contains(text, tok) || strings.Contains(u, tok) {
			return true
		}
	}
	return false
}

// RankByRelevance orders hits so that relevant ones come first, keeping the
// original order within each group, and truncates the result to limit.
// Irrelevant hits are only used to fill up to limit.
func RankByRelevance(query string, hits []SearchHit, limit int) []SearchHit {
	tokens := QueryTokens(query)

	relevant := make([]SearchHit, 0, len(hits))
	var rest []SearchHit
	for _, h := range hits {
		if IsRelevant(h, tokens) {
			relevant = append(relevant, h)
		} else {
			rest = append(rest, h)
		}
	}

	ranked := append(relevant, rest...)
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
