// Package firecrawl implements a client for the Firecrawl v1 HTTP API and
// adapts it to firescrape.HostedService and firescrape.Searcher.
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// DefaultAPIURL is the hosted API root. Endpoint paths are appended to it
// with the /v1 prefix.
const DefaultAPIURL = "https://api.firecrawl.dev"

// DefaultTimeout bounds a single API request. Job polling is bounded
// separately.
const DefaultTimeout = 60 * time.Second

// Client defines the Firecrawl v1 API operations.
type Client interface {
	Scrape(ctx context.Context, req ScrapeRequest) (*ScrapeResponse, error)
	Crawl(ctx context.Context, req CrawlRequest) (*JobResponse, error)
	GetCrawlStatus(ctx context.Context, id string) (*JobStatusResponse, error)
	BatchScrape(ctx context.Context, req BatchScrapeRequest) (*JobResponse, error)
	GetBatchScrapeStatus(ctx context.Context, id string) (*JobStatusResponse, error)
	Map(ctx context.Context, req MapRequest) (*MapResponse, error)
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

// JSONOptions configures structured extraction for the json format.
type JSONOptions struct {
	Prompt string `json:"prompt,omitempty"`
}

// ScrapeOptions are the page options shared by scrape, crawl, batch and
// search requests.
type ScrapeOptions struct {
	Formats         []string     `json:"formats,omitempty"`
	OnlyMainContent bool         `json:"onlyMainContent,omitempty"`
	WaitFor         int          `json:"waitFor,omitempty"`
	Mobile          bool         `json:"mobile,omitempty"`
	JSONOptions     *JSONOptions `json:"jsonOptions,omitempty"`
}

// ScrapeRequest is the body for POST /v1/scrape.
type ScrapeRequest struct {
	URL string `json:"url"`
	ScrapeOptions
}

// ScrapeResponse is the response from POST /v1/scrape.
type ScrapeResponse struct {
	Success bool     `json:"success"`
	Data    PageData `json:"data"`
}

// CrawlRequest is the body for POST /v1/crawl.
type CrawlRequest struct {
	URL           string         `json:"url"`
	Limit         int            `json:"limit,omitempty"`
	IncludePaths  []string       `json:"includePaths,omitempty"`
	ExcludePaths  []string       `json:"excludePaths,omitempty"`
	ScrapeOptions *ScrapeOptions `json:"scrapeOptions,omitempty"`
}

// BatchScrapeRequest is the body for POST /v1/batch/scrape.
type BatchScrapeRequest struct {
	URLs []string `json:"urls"`
	ScrapeOptions
}

// JobResponse is the response from endpoints that start an async job.
type JobResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// JobStatusResponse is the response from GET /v1/crawl/{id} and
// GET /v1/batch/scrape/{id}.
type JobStatusResponse struct {
	Status    string     `json:"status"`
	Total     int        `json:"total"`
	Completed int        `json:"completed"`
	Data      []PageData `json:"data"`
}

// PageData represents a single page result from Firecrawl.
type PageData struct {
	Markdown string         `json:"markdown"`
	HTML     string         `json:"html"`
	JSON     map[string]any `json:"json"`
	Links    []string       `json:"links"`
	Metadata PageMetadata   `json:"metadata"`
}

// PageMetadata is the metadata block of a page result.
type PageMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	SourceURL   string `json:"sourceURL"`
	URL         string `json:"url"`
	StatusCode  int    `json:"statusCode"`
}

// MapRequest is the body for POST /v1/map.
type MapRequest struct {
	URL    string `json:"url"`
	Search string `json:"search,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

// MapResponse is the response from POST /v1/map.
type MapResponse struct {
	Success bool      `json:"success"`
	Links   []MapLink `json:"links"`
}

// MapLink is a link returned by /v1/map. The API returns either bare URL
// strings or objects with url, title and description.
type MapLink struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UnmarshalJSON accepts both the string and the object form.
func (l *MapLink) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &l.URL)
	}
	type plain MapLink
	return json.Unmarshal(data, (*plain)(l))
}

// SearchRequest is the body for POST /v1/search.
type SearchRequest struct {
	Query         string         `json:"query"`
	Limit         int            `json:"limit,omitempty"`
	ScrapeOptions *ScrapeOptions `json:"scrapeOptions,omitempty"`
}

// SearchResponse is the response from POST /v1/search.
type SearchResponse struct {
	Success bool           `json:"success"`
	Data    []SearchResult `json:"data"`
}

// SearchResult is a single search hit. Markdown is only set when
// scrape options were requested.
type SearchResult struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Markdown    string `json:"markdown"`
}

// APIError is returned when Firecrawl responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("firecrawl: HTTP %d: %s", e.StatusCode, e.Body)
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithBaseURL overrides DefaultAPIURL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// httpClient implements Client using net/http.
type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new Firecrawl client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: DefaultAPIURL,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Scrape(ctx context.Context, req ScrapeRequest) (*ScrapeResponse, error) {
	var resp ScrapeResponse
	if err := c.post(ctx, "/scrape", req, &resp); err != nil {
		return nil, eris.Wrap(err, "firecrawl: scrape")
	}
	return &resp, nil
}

func (c *httpClient) Crawl(ctx context.Context, req CrawlRequest) (*JobResponse, error) {
	var resp JobResponse
	if err := c.post(ctx, "/crawl", req, &resp); err != nil {
		return nil, eris.Wrap(err, "firecrawl: start crawl")
	}
	return &resp, nil
}

func (c *httpClient) GetCrawlStatus(ctx context.Context, id string) (*JobStatusResponse, error) {
	var resp JobStatusResponse
	if err := c.get(ctx, "/crawl/"+id, &resp); err != nil {
		return nil, eris.Wrapf(err, "firecrawl: get crawl status %s", id)
	}
	return &resp, nil
}

func (c *httpClient) BatchScrape(ctx context.Context, req BatchScrapeRequest) (*JobResponse, error) {
	var resp JobResponse
	if err := c.post(ctx, "/batch/scrape", req, &resp); err != nil {
		return nil, eris.Wrap(err, "firecrawl: start batch scrape")
	}
	return &resp, nil
}

func (c *httpClient) GetBatchScrapeStatus(ctx context.Context, id string) (*JobStatusResponse, error) {
	var resp JobStatusResponse
	if err := c.get(ctx, "/batch/scrape/"+id, &resp); err != nil {
		return nil, eris.Wrapf(err, "firecrawl: get batch scrape status %s", id)
	}
	return &resp, nil
}

func (c *httpClient) Map(ctx context.Context, req MapRequest) (*MapResponse, error) {
	var resp MapResponse
	if err := c.post(ctx, "/map", req, &resp); err != nil {
		return nil, eris.Wrap(err, "firecrawl: map")
	}
	return &resp, nil
}

func (c *httpClient) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.post(ctx, "/search", req, &resp); err != nil {
		return nil, eris.Wrap(err, "firecrawl: search")
	}
	return &resp, nil
}

func (c *httpClient) post(ctx context.Context, path string, body any, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return eris.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1"+path, bytes.NewReader(buf))
	if err != nil {
		return eris.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	return c.do(req, out)
}

func (c *httpClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1"+path, nil)
	if err != nil {
		return eris.Wrap(err, "create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	return c.do(req, out)
}

func (c *httpClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "execute request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrap(err, "decode response")
	}

	return nil
}
