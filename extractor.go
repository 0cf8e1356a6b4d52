package firescrape

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// Byline is the author as guessed by the extractor, if any.
	Byline string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string

	// TextContent is ContentHTML with all markup removed. It is used to
	// judge whether extraction found enough text.
	TextContent string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}

// PageMeta holds article metadata found in page markup.
type PageMeta struct {
	Author string

	// PublishTime is the raw value as written in the page.
	PublishTime string
}

// MetaReader reads article metadata (author, publish time) from HTML.
type MetaReader interface {
	ReadMeta(html string) (*PageMeta, error)
}
