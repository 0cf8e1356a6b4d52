package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/firescrape"
)

// ExtractLinks returns the same-host links of a page in document order,
// without duplicates. Fragments are stripped and links pointing back at
// baseURL itself are skipped. The anchor text becomes the link title.
func ExtractLinks(html string, baseURL string) ([]firescrape.Link, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, firescrape.Errorf(firescrape.EINVALID, "invalid base URL %q", baseURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, firescrape.Errorf(firescrape.EPARSE, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	links := []firescrape.Link{}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == nil || resolved.Host != base.Host {
			return
		}

		u := resolved.String()
		if seen[u] {
			return
		}
		seen[u] = true
		links = append(links, firescrape.Link{
			URL:   u,
			Title: strings.Join(strings.Fields(sel.Text()), " "),
		})
	})

	return links, nil
}

// resolveURL resolves href against base and strips the fragment. Returns
// nil if href cannot be parsed or resolves to base itself.
func resolveURL(base *url.URL, href string) *url.URL {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	self := *base
	self.Fragment = ""
	if resolved.String() == self.String() {
		return nil
	}
	return resolved
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
