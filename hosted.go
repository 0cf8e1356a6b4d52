package firescrape

import "context"

// Output formats supported by the hosted API.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatLinks    = "links"
	FormatJSON     = "json"
)

// ScrapeOptions configures a hosted scrape.
type ScrapeOptions struct {
	// Formats defaults to markdown when empty.
	Formats         []string
	OnlyMainContent bool

	// WaitFor is the time to let the page settle, in milliseconds.
	WaitFor int
	Mobile  bool

	// JSONPrompt is the instruction for structured extraction. Only used
	// when Formats contains FormatJSON.
	JSONPrompt string
}

// DocumentMetadata is page metadata reported by the hosted API.
type DocumentMetadata struct {
	Title       string
	Description string
	SourceURL   string
	StatusCode  int
}

// Document is a page returned by the hosted API.
type Document struct {
	Markdown string
	HTML     string

	// JSON holds structured extraction output, if requested.
	JSON     map[string]any
	Metadata DocumentMetadata
	Links    []string
}

// CrawlOptions configures a hosted crawl.
type CrawlOptions struct {
	Limit        int
	IncludePaths []string
	ExcludePaths []string
}

// MapOptions configures a hosted site map request.
type MapOptions struct {
	// Search filters links by keyword.
	Search string
	Limit  int
}

// Link is a URL discovered on a site.
type Link struct {
	URL         string
	Title       string
	Description string
}

// HostedService represents the hosted scraping API.
//
// Errors carry EUNAUTHORIZED for a bad credential, ENOTFOUND for
// unreachable pages, ETIMEOUT and ECONNECTION for transport problems.
type HostedService interface {
	Scrape(ctx context.Context, url string, opts ScrapeOptions) (*Document, error)

	// Crawl starts a crawl job and waits for it to finish.
	Crawl(ctx context.Context, url string, opts CrawlOptions) ([]*Document, error)

	// Map lists links found on a site without scraping them.
	Map(ctx context.Context, url string, opts MapOptions) ([]Link, error)

	// BatchScrape starts a batch job and waits for it to finish.
	BatchScrape(ctx context.Context, urls []string, opts ScrapeOptions) ([]*Document, error)
}
