package firescrape

import "context"

// BatchItem is a unit of work for a batch run.
type BatchItem struct {
	URL         string
	Title       string
	Description string

	// Content holds an already fetched Markdown body, e.g. from a hosted
	// crawl or a search with content. Empty means it must be fetched.
	Content string
}

// ItemFailure records a URL that could not be fetched or saved.
type ItemFailure struct {
	URL   string
	Error string
}

// BatchReport summarizes a batch run.
type BatchReport struct {
	Query string

	// Succeeded holds output paths of saved items, SucceededURLs their URLs.
	Succeeded     []string
	SucceededURLs []string

	Failed  []ItemFailure
	Skipped int

	// Interrupted is set when the run stopped before all items were
	// processed. The checkpoint is left in place for the next run.
	Interrupted bool
}

// ItemFetchFunc fetches the article for a batch item.
type ItemFetchFunc func(ctx context.Context, item BatchItem) (*FetchResult, error)

// ItemSaveFunc persists a fetched article. index is the item's 1-based
// position in the batch. Returns the path written.
type ItemSaveFunc func(ctx context.Context, index int, item BatchItem, result *FetchResult) (string, error)
