package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/firescrape"
	"github.com/fwojciec/firescrape/goquery"
)

// Run executes the map command.
func (c *MapCmd) Run(deps *Dependencies) error {
	if c.Limit <= 0 {
		return firescrape.Errorf(firescrape.EINVALID, "limit must be positive")
	}

	var links []firescrape.Link
	if deps.Hosted != nil {
		stop := startSpinner(deps, "Mapping "+c.URL)
		var err error
		links, err = deps.Hosted.Map(deps.Ctx, c.URL, firescrape.MapOptions{Search: c.Search, Limit: c.Limit})
		stop()
		if err != nil {
			return err
		}
	} else {
		urls, err := discover(deps, c.URL, nil)
		if err != nil {
			return err
		}
		for _, u := range urls {
			links = append(links, firescrape.Link{URL: u})
		}
	}

	links = filterLinks(links, c.Search, c.Limit)
	fmt.Fprintf(deps.Stdout, "Found %d links\n", len(links))
	for i, l := range links {
		if l.Title != "" {
			fmt.Fprintf(deps.Stdout, "%d. %s - %s\n", i+1, l.URL, l.Title)
		} else {
			fmt.Fprintf(deps.Stdout, "%d. %s\n", i+1, l.URL)
		}
	}
	return nil
}

// discover lists the pages of a site without the hosted API: sitemap
// first, then the links on the page itself.
func discover(deps *Dependencies, siteURL string, filter *firescrape.URLFilter) ([]string, error) {
	urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, siteURL, filter)
	if err != nil {
		return nil, err
	}
	if len(urls) > 0 {
		return urls, nil
	}

	deps.Logger.Info("no sitemap, reading links from page", "url", siteURL)
	html, err := deps.Pages.Fetch(deps.Ctx, siteURL)
	if err != nil {
		return nil, err
	}
	links, err := goquery.ExtractLinks(html, siteURL)
	if err != nil {
		return nil, err
	}
	urls = make([]string, 0, len(links))
	for _, l := range links {
		if filter.Match(l.URL) {
			urls = append(urls, l.URL)
		}
	}
	return urls, nil
}

// filterLinks keeps links whose URL or title contains keyword, up to limit.
func filterLinks(links []firescrape.Link, keyword string, limit int) []firescrape.Link {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	out := make([]firescrape.Link, 0, min(len(links), limit))
	for _, l := range links {
		if len(out) == limit {
			break
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(l.URL), keyword) &&
			!strings.Contains(strings.ToLower(l.Title), keyword) {
			continue
		}
		out = append(out, l)
	}
	return out
}
