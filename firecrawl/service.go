package firecrawl

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/fwojciec/firescrape"
)

// Ensure Service implements the hosted interfaces at compile time.
var (
	_ firescrape.HostedService = (*Service)(nil)
	_ firescrape.Searcher      = (*Service)(nil)
)

// Service adapts a Client to firescrape.HostedService and
// firescrape.Searcher. Client failures are converted to coded errors;
// context cancellation is returned unchanged.
type Service struct {
	client        Client
	pollOpts      []PollOption
	searchContent bool
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithPollOptions sets the polling behavior for crawl and batch jobs.
func WithPollOptions(opts ...PollOption) ServiceOption {
	return func(s *Service) {
		s.pollOpts = opts
	}
}

// WithSearchContent makes Search request the Markdown body of every hit.
func WithSearchContent(enabled bool) ServiceOption {
	return func(s *Service) {
		s.searchContent = enabled
	}
}

// NewService creates a Service backed by client.
func NewService(client Client, opts ...ServiceOption) *Service {
	s := &Service{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape fetches a single page.
func (s *Service) Scrape(ctx context.Context, url string, opts firescrape.ScrapeOptions) (*firescrape.Document, error) {
	resp, err := s.client.Scrape(ctx, ScrapeRequest{URL: url, ScrapeOptions: scrapeOptions(opts)})
	if err != nil {
		return nil, classify(ctx, err, url)
	}
	return toDocument(resp.Data), nil
}

// Crawl starts a crawl job and polls it until it finishes.
func (s *Service) Crawl(ctx context.Context, url string, opts firescrape.CrawlOptions) ([]*firescrape.Document, error) {
	job, err := s.client.Crawl(ctx, CrawlRequest{
		URL:          url,
		Limit:        opts.Limit,
		IncludePaths: opts.IncludePaths,
		ExcludePaths: opts.ExcludePaths,
		ScrapeOptions: &ScrapeOptions{
			Formats:         []string{firescrape.FormatMarkdown},
			OnlyMainContent: true,
		},
	})
	if err != nil {
		return nil, classify(ctx, err, url)
	}

	status, err := PollCrawl(ctx, s.client, job.ID, s.pollOpts...)
	if err != nil {
		return nil, classify(ctx, err, url)
	}
	return toDocuments(status.Data), nil
}

// Map lists links found on a site.
func (s *Service) Map(ctx context.Context, url string, opts firescrape.MapOptions) ([]firescrape.Link, error) {
	resp, err := s.client.Map(ctx, MapRequest{URL: url, Search: opts.Search, Limit: opts.Limit})
	if err != nil {
		return nil, classify(ctx, err, url)
	}

	links := make([]firescrape.Link, 0, len(resp.Links))
	for _, l := range resp.Links {
		links = append(links, firescrape.Link{URL: l.URL, Title: l.Title, Description: l.Description})
	}
	return links, nil
}

// BatchScrape starts a batch job for urls and polls it until it finishes.
func (s *Service) BatchScrape(ctx context.Context, urls []string, opts firescrape.ScrapeOptions) ([]*firescrape.Document, error) {
	if len(urls) == 0 {
		return nil, firescrape.Errorf(firescrape.EINVALID, "no URLs to scrape")
	}

	job, err := s.client.BatchScrape(ctx, BatchScrapeRequest{URLs: urls, ScrapeOptions: scrapeOptions(opts)})
	if err != nil {
		return nil, classify(ctx, err, "batch")
	}

	status, err := PollBatchScrape(ctx, s.client, job.ID, s.pollOpts...)
	if err != nil {
		return nil, classify(ctx, err, "batch")
	}
	return toDocuments(status.Data), nil
}

// Search queries the hosted search endpoint. Returns EEMPTY when nothing
// was found.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]firescrape.SearchHit, error) {
	req := SearchRequest{Query: query, Limit: limit}
	if s.searchContent {
		req.ScrapeOptions = &ScrapeOptions{Formats: []string{firescrape.FormatMarkdown}}
	}

	resp, err := s.client.Search(ctx, req)
	if err != nil {
		return nil, classify(ctx, err, query)
	}
	if len(resp.Data) == 0 {
		return nil, firescrape.Errorf(firescrape.EEMPTY, "no results for %q", query)
	}

	hits := make([]firescrape.SearchHit, 0, len(resp.Data))
	for _, r := range resp.Data {
		hits = append(hits, firescrape.SearchHit{
			URL:         r.URL,
			Title:       r.Title,
			Description: r.Description,
			Content:     r.Markdown,
		})
	}
	return hits, nil
}

func scrapeOptions(opts firescrape.ScrapeOptions) ScrapeOptions {
	formats := opts.Formats
	if len(formats) == 0 {
		formats = []string{firescrape.FormatMarkdown}
	}
	out := ScrapeOptions{
		Formats:         formats,
		OnlyMainContent: opts.OnlyMainContent,
		WaitFor:         opts.WaitFor,
		Mobile:          opts.Mobile,
	}
	if opts.JSONPrompt != "" {
		for _, f := range formats {
			if f == firescrape.FormatJSON {
				out.JSONOptions = &JSONOptions{Prompt: opts.JSONPrompt}
				break
			}
		}
	}
	return out
}

func toDocument(p PageData) *firescrape.Document {
	source := p.Metadata.SourceURL
	if source == "" {
		source = p.Metadata.URL
	}
	return &firescrape.Document{
		Markdown: p.Markdown,
		HTML:     p.HTML,
		JSON:     p.JSON,
		Links:    p.Links,
		Metadata: firescrape.DocumentMetadata{
			Title:       p.Metadata.Title,
			Description: p.Metadata.Description,
			SourceURL:   source,
			StatusCode:  p.Metadata.StatusCode,
		},
	}
}

func toDocuments(pages []PageData) []*firescrape.Document {
	docs := make([]*firescrape.Document, 0, len(pages))
	for _, p := range pages {
		docs = append(docs, toDocument(p))
	}
	return docs
}

// classify maps a client failure to a coded error. target names the URL or
// query the request was about.
func classify(ctx context.Context, err error, target string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized:
			return firescrape.Errorf(firescrape.EUNAUTHORIZED, "invalid API key, check that the key is correct")
		case http.StatusPaymentRequired, http.StatusForbidden:
			return firescrape.Errorf(firescrape.EFORBIDDEN, "access denied for %s: HTTP %d", target, apiErr.StatusCode)
		case http.StatusNotFound:
			return firescrape.Errorf(firescrape.ENOTFOUND, "cannot access %s, check that the URL is correct", target)
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			return firescrape.Errorf(firescrape.ETIMEOUT, "request timed out: %s", target)
		}
		if apiErr.StatusCode >= 500 {
			return firescrape.Errorf(firescrape.ECONNECTION, "hosted API unavailable: HTTP %d", apiErr.StatusCode)
		}
		return firescrape.Errorf(firescrape.EINVALID, "hosted API rejected request for %s: HTTP %d", target, apiErr.StatusCode)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return firescrape.Errorf(firescrape.ETIMEOUT, "request timed out: %s", target)
	}
	if errors.Is(err, ErrJobFailed) {
		return firescrape.Errorf(firescrape.EINTERNAL, "hosted job failed for %s", target)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return firescrape.Errorf(firescrape.ETIMEOUT, "request timed out: %s", target)
		}
		return firescrape.Errorf(firescrape.ECONNECTION, "cannot reach hosted API: %v", err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return firescrape.Errorf(firescrape.EPARSE, "unexpected response for %s: %v", target, err)
	}

	return firescrape.Errorf(firescrape.EINTERNAL, "hosted request failed for %s: %v", target, err)
}
