package firescrape

import "context"

// Fetcher retrieves raw HTML from URLs.
// Implementations may use plain HTTP or browser automation for
// JavaScript-rendered content.
type Fetcher interface {
	// Fetch downloads the URL and returns its HTML decoded as UTF-8.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
