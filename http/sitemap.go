package http

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/firescrape"
)

// Ensure SitemapService implements firescrape.SitemapService.
var _ firescrape.SitemapService = (*SitemapService)(nil)

// SitemapService discovers URLs from website sitemaps via HTTP.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, a client with DefaultFetchTimeout is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	return &SitemapService{client: client}
}

// DiscoverURLs finds all URLs from a site's sitemaps, in sitemap order and
// without duplicates. Returns an empty slice (not nil) if no sitemaps are
// found.
//
// When baseURL has a non-root path (e.g., https://example.com/blog/),
// only URLs under that path are returned.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *firescrape.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, firescrape.Errorf(firescrape.EINVALID, "invalid base URL %q", baseURL)
	}

	prefix := strings.TrimSuffix(base.Path, "/")
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	sitemaps, err := s.findSitemaps(ctx, root)
	if err != nil {
		return nil, err
	}

	seenSitemaps := make(map[string]bool)
	seen := make(map[string]bool)
	urls := []string{}
	for _, sm := range sitemaps {
		found, err := s.readSitemap(ctx, sm, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range found {
			if seen[u] || !underPath(u, prefix) || !filter.Match(u) {
				continue
			}
			seen[u] = true
			urls = append(urls, u)
		}
	}
	return urls, nil
}

// underPath reports whether rawURL's path is prefix or below it, respecting
// path boundaries: /docs matches /docs/intro but not /documentation.
func underPath(rawURL, prefix string) bool {
	if prefix == "" {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Path == prefix || strings.HasPrefix(u.Path, prefix+"/")
}

// findSitemaps reads Sitemap: directives from robots.txt and falls back to
// /sitemap.xml.
func (s *SitemapService) findSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if body, err := s.get(ctx, robots); err == nil {
		defer body.Close()
		var sitemaps []string
		scanner := bufio.NewScanner(body)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if len(line) > 8 && strings.EqualFold(line[:8], "sitemap:") {
				if u := strings.TrimSpace(line[8:]); u != "" {
					sitemaps = append(sitemaps, u)
				}
			}
		}
		if len(sitemaps) > 0 {
			return sitemaps, nil
		}
	} else if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return []string{root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()}, nil
}

// readSitemap fetches a sitemap and returns its page URLs. Sitemap indexes
// are followed recursively. A missing sitemap yields no URLs.
func (s *SitemapService) readSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if firescrape.ErrorCode(err) == firescrape.ENOTFOUND {
			return nil, nil
		}
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, firescrape.Errorf(firescrape.EPARSE, "parsing sitemap %s: %v", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, firescrape.Errorf(firescrape.EPARSE, "empty sitemap %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		var urls []string
		for _, loc := range locs(root, "sitemap") {
			found, err := s.readSitemap(ctx, loc, seen)
			if err != nil {
				return nil, err
			}
			urls = append(urls, found...)
		}
		return urls, nil
	}
	return locs(root, "url"), nil
}

// locs returns the trimmed <loc> text of every child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func (s *SitemapService) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, firescrape.Errorf(firescrape.EINVALID, "invalid URL %q: %v", target, err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, classify(ctx, err, target)
	}
	if err := statusError(resp.StatusCode, target); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}
