// Package http provides an HTTP-based implementation of firescrape.Fetcher
// for downloading pages that don't require JavaScript rendering, and a
// sitemap reader used when no hosted service is configured.
package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/firescrape"
	"golang.org/x/net/html/charset"
)

// Defaults for the local fetch path.
const (
	DefaultFetchTimeout = 30 * time.Second
	DefaultRetries      = 3
	DefaultRetryDelay   = 2 * time.Second

	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Ensure Fetcher implements firescrape.Fetcher at compile time.
var _ firescrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests with
// browser-like headers. Transient failures (5xx, connection errors,
// timeouts) are retried with a fixed delay. The body is decoded to UTF-8.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	delays    []time.Duration
	userAgent string
	logger    *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for a single HTTP request.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRetries sets how many times a transient failure is retried and the
// fixed delay between attempts.
func WithRetries(n int, delay time.Duration) Option {
	return func(f *Fetcher) {
		f.delays = RetryDelays(n, delay)
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithLogger sets the logger used to report retries.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		delays:    RetryDelays(DefaultRetries, DefaultRetryDelay),
		userAgent: DefaultUserAgent,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
//
// Errors carry ENOTFOUND for 404 and unknown hosts, EFORBIDDEN for 403,
// EINVALID for other 4xx, ECONNECTION for 5xx and network failures and
// ETIMEOUT for timeouts. Context cancellation is returned unchanged.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	retry := func(attempt int, err error) {
		f.logger.Debug("retrying fetch", "url", url, "attempt", attempt, "err", err)
	}
	return FetchWithRetryDelays(ctx, url, f.fetchOnce, retry, f.delays)
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", firescrape.Errorf(firescrape.EINVALID, "invalid URL %q: %v", url, err)
	}
	f.setHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", classify(ctx, err, url)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode, url); err != nil {
		return "", err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classify(ctx, err, url)
	}
	if len(raw) == 0 {
		return "", nil
	}

	r, err := charset.NewReader(bytes.NewReader(raw), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", firescrape.Errorf(firescrape.EPARSE, "cannot decode %s: %v", url, err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", firescrape.Errorf(firescrape.EPARSE, "cannot decode %s: %v", url, err)
	}

	return string(body), nil
}

func (f *Fetcher) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9,zh-CN;q=0.8")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func statusError(code int, url string) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return firescrape.Errorf(firescrape.ENOTFOUND, "HTTP %d for %s", code, url)
	case code == http.StatusForbidden:
		return firescrape.Errorf(firescrape.EFORBIDDEN, "HTTP %d for %s", code, url)
	case code == http.StatusRequestTimeout, code == http.StatusGatewayTimeout:
		return firescrape.Errorf(firescrape.ETIMEOUT, "HTTP %d for %s", code, url)
	case code >= 500:
		return firescrape.Errorf(firescrape.ECONNECTION, "HTTP %d for %s", code, url)
	default:
		return firescrape.Errorf(firescrape.EINVALID, "HTTP %d for %s", code, url)
	}
}

func classify(ctx context.Context, err error, url string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return firescrape.Errorf(firescrape.ENOTFOUND, "unknown host for %s", url)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return firescrape.Errorf(firescrape.ETIMEOUT, "timed out fetching %s", url)
	}

	return firescrape.Errorf(firescrape.ECONNECTION, "cannot fetch %s: %v", url, err)
}
