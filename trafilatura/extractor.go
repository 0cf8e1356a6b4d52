// Package trafilatura implements firescrape.Extractor with
// markusmobius/go-trafilatura. It is selected with extractor = "trafilatura".
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/firescrape"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements firescrape.Extractor at compile time.
var _ firescrape.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor. The readability and dom-distiller
// fallbacks built into trafilatura are enabled.
func NewExtractor() *Extractor {
	return &Extractor{opts: trafilatura.Options{EnableFallback: true}}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*firescrape.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, firescrape.Errorf(firescrape.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, firescrape.Errorf(firescrape.EPARSE, "trafilatura: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, firescrape.Errorf(firescrape.EPARSE, "rendering content: %v", err)
		}
		contentHTML = buf.String()
	}

	return &firescrape.ExtractResult{
		Title:       strings.TrimSpace(result.Metadata.Title),
		Byline:      strings.TrimSpace(result.Metadata.Author),
		ContentHTML: contentHTML,
		TextContent: strings.TrimSpace(result.ContentText),
	}, nil
}
