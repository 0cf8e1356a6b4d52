package firescrape

import "context"

// FetchResult is a single fetched article.
type FetchResult struct {
	Title string `json:"title"`

	// Author and PublishTime are empty when the page does not expose them.
	Author      string `json:"author"`
	PublishTime string `json:"publishTime"`

	Content string `json:"content"` // Markdown
	URL     string `json:"url"`
}

// ContentFetcher turns a URL into a structured article.
//
// Returned errors carry one of EUNAUTHORIZED, ENOTFOUND, EFORBIDDEN,
// ETIMEOUT, ECONNECTION or EPARSE.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) (*FetchResult, error)
}

// ResultWriter persists rendered documents.
type ResultWriter interface {
	// Write stores content under name and returns the path written.
	// An existing file with the same name is overwritten.
	Write(name, content string) (path string, err error)
}
