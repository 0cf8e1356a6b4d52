// Package readability implements firescrape.Extractor with
// go-shiori/go-readability. It is the default main-content extractor.
package readability

import (
	"strings"

	"github.com/fwojciec/firescrape"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements firescrape.Extractor at compile time.
var _ firescrape.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*firescrape.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, firescrape.Errorf(firescrape.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, firescrape.Errorf(firescrape.EPARSE, "readability: %v", err)
	}

	return &firescrape.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		Byline:      strings.TrimSpace(article.Byline),
		ContentHTML: article.Content,
		TextContent: strings.TrimSpace(article.TextContent),
	}, nil
}
