package fetch

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/firescrape"
)

// ArticlePrompt is the extraction instruction sent with hosted scrapes.
const ArticlePrompt = "Extract the article title, author, publish time and main body text. Ignore navigation, ads, sidebars and footers."

// Ensure HostedStrategy implements firescrape.ContentFetcher at compile time.
var _ firescrape.ContentFetcher = (*HostedStrategy)(nil)

// HostedStrategy fetches articles through the hosted service's structured
// extraction.
type HostedStrategy struct {
	Service firescrape.HostedService
}

// NewHostedStrategy creates a HostedStrategy backed by svc.
func NewHostedStrategy(svc firescrape.HostedService) *HostedStrategy {
	return &HostedStrategy{Service: svc}
}

// FetchContent scrapes url as Markdown plus structured JSON. The JSON
// fields title, author, publish_time and content take precedence over the
// page metadata and Markdown body.
func (s *HostedStrategy) FetchContent(ctx context.Context, url string) (*firescrape.FetchResult, error) {
	doc, err := s.Service.Scrape(ctx, url, firescrape.ScrapeOptions{
		Formats:         []string{firescrape.FormatMarkdown, firescrape.FormatJSON},
		OnlyMainContent: true,
		JSONPrompt:      ArticlePrompt,
	})
	if err != nil {
		return nil, err
	}

	content := firstNonEmpty(field(doc.JSON, "content"), doc.Markdown)
	if content == "" {
		return nil, firescrape.Errorf(firescrape.EPARSE, "no content extracted from %s", url)
	}

	return &firescrape.FetchResult{
		Title:       firstNonEmpty(field(doc.JSON, "title"), doc.Metadata.Title, url),
		Author:      field(doc.JSON, "author"),
		PublishTime: NormalizePublishTime(field(doc.JSON, "publish_time")),
		Content:     firescrape.NormalizeWhitespace(content),
		URL:         url,
	}, nil
}

// field returns m[key] as a trimmed string. Non-string scalars are
// formatted; missing and null values are empty.
func field(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, p := range v {
			if s, ok := p.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
