// Package ddg queries the DuckDuckGo HTML endpoint, the free search path
// used when no hosted search is available.
package ddg

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/firescrape"
)

// DefaultBaseURL is the JavaScript-free results page.
const DefaultBaseURL = "https://html.duckduckgo.com/html/"

// Ensure Engine implements firescrape.SearchEngine at compile time.
var _ firescrape.SearchEngine = (*Engine)(nil)

// Engine scrapes DuckDuckGo result pages. Transport, headers and retries
// of transient failures are delegated to the Fetcher.
type Engine struct {
	fetcher firescrape.Fetcher
	baseURL string
}

// Option configures an Engine.
type Option func(*Engine)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(e *Engine) {
		e.baseURL = u
	}
}

// NewEngine creates an Engine that downloads result pages with fetcher.
func NewEngine(fetcher firescrape.Fetcher, opts ...Option) *Engine {
	e := &Engine{
		fetcher: fetcher,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Query returns up to max candidates for query in region. Only the first
// result page is read, so fewer results than max are common. Ads are
// skipped. An empty page is not an error.
func (e *Engine) Query(ctx context.Context, query string, region string, max int) ([]firescrape.SearchHit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, firescrape.Errorf(firescrape.EINVALID, "empty search query")
	}

	u, err := url.Parse(e.baseURL)
	if err != nil {
		return nil, firescrape.Errorf(firescrape.EINVALID, "invalid search endpoint %q", e.baseURL)
	}
	params := url.Values{}
	params.Set("q", query)
	if region != "" {
		params.Set("kl", region)
	}
	u.RawQuery = params.Encode()

	html, err := e.fetcher.Fetch(ctx, u.String())
	if err != nil {
		return nil, err
	}

	hits, err := ParseResults(html)
	if err != nil {
		return nil, err
	}
	if max > 0 && len(hits) > max {
		hits = hits[:max]
	}
	return hits, nil
}

// ParseResults extracts organic results from a DuckDuckGo HTML page.
func ParseResults(html string) ([]firescrape.SearchHit, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, firescrape.Errorf(firescrape.EPARSE, "failed to parse search results: %v", err)
	}

	hits := []firescrape.SearchHit{}
	doc.Find(".result").Each(func(_ int, sel *goquery.Selection) {
		if sel.HasClass("result--ad") {
			return
		}
		a := sel.Find("a.result__a").First()
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		target := unwrapRedirect(href)
		if target == "" {
			return
		}
		hits = append(hits, firescrape.SearchHit{
			URL:         target,
			Title:       collapse(a.Text()),
			Description: collapse(sel.Find(".result__snippet").First().Text()),
		})
	})
	return hits, nil
}

// unwrapRedirect returns the destination of a /l/?uddg= tracking link, or
// href itself when it is already absolute. Protocol-relative links get
// https. Anything else yields "".
func unwrapRedirect(href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if strings.HasPrefix(u.Path, "/l/") {
		if target := u.Query().Get("uddg"); target != "" {
			return target
		}
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if strings.HasSuffix(u.Host, "duckduckgo.com") {
		return ""
	}
	return u.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
