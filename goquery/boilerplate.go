package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/firescrape"
)

// Ensure BoilerplateExtractor implements firescrape.Extractor at compile time.
var _ firescrape.Extractor = (*BoilerplateExtractor)(nil)

// boilerplateTags are removed from the body before it is used as content.
const boilerplateTags = "script, style, noscript, nav, header, footer, aside, iframe, form"

// BoilerplateExtractor keeps the whole <body> minus scripts, styles and
// page chrome. It is the fallback when a main-content extractor finds too
// little text.
type BoilerplateExtractor struct{}

// NewBoilerplateExtractor creates a new BoilerplateExtractor.
func NewBoilerplateExtractor() *BoilerplateExtractor {
	return &BoilerplateExtractor{}
}

// Extract returns the cleaned body and the document title.
func (e *BoilerplateExtractor) Extract(html string) (*firescrape.ExtractResult, error) {
	if strings.TrimSpace(html) == "" {
		return nil, firescrape.Errorf(firescrape.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, firescrape.Errorf(firescrape.EPARSE, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	body := doc.Find("body")
	body.Find(boilerplateTags).Remove()

	content, err := body.Html()
	if err != nil {
		return nil, firescrape.Errorf(firescrape.EPARSE, "rendering body: %v", err)
	}

	return &firescrape.ExtractResult{
		Title:       title,
		ContentHTML: strings.TrimSpace(content),
		TextContent: strings.Join(strings.Fields(body.Text()), " "),
	}, nil
}
