package fetch

import (
	"context"
	"unicode/utf8"

	"github.com/fwojciec/firescrape"
)

// MinContentLength is the extracted text length, in characters, below
// which the fallback extractor is used.
const MinContentLength = 50

// Ensure LocalStrategy implements firescrape.ContentFetcher at compile time.
var _ firescrape.ContentFetcher = (*LocalStrategy)(nil)

// LocalStrategy downloads a page and extracts the article itself.
type LocalStrategy struct {
	Fetcher   firescrape.Fetcher
	Extractor firescrape.Extractor

	// Fallback runs when Extractor fails or finds less than
	// MinContentLength characters of text.
	Fallback  firescrape.Extractor
	Converter firescrape.Converter
	Meta      firescrape.MetaReader
}

// FetchContent fetches url and builds the article from the extracted HTML.
func (s *LocalStrategy) FetchContent(ctx context.Context, url string) (*firescrape.FetchResult, error) {
	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	extracted, err := s.extract(html)
	if err != nil {
		return nil, firescrape.Errorf(firescrape.EPARSE, "cannot extract content from %s: %s", url, firescrape.ErrorMessage(err))
	}

	md, err := s.Converter.Convert(extracted.ContentHTML, url)
	if err != nil {
		return nil, firescrape.Errorf(firescrape.EPARSE, "cannot convert content from %s: %s", url, firescrape.ErrorMessage(err))
	}

	meta, err := s.Meta.ReadMeta(html)
	if err != nil {
		return nil, firescrape.Errorf(firescrape.EPARSE, "cannot read metadata from %s: %s", url, firescrape.ErrorMessage(err))
	}

	author := meta.Author
	if author == "" {
		author = extracted.Byline
	}
	title := extracted.Title
	if title == "" {
		title = url
	}

	return &firescrape.FetchResult{
		Title:       title,
		Author:      author,
		PublishTime: NormalizePublishTime(meta.PublishTime),
		Content:     firescrape.NormalizeWhitespace(md),
		URL:         url,
	}, nil
}

func (s *LocalStrategy) extract(html string) (*firescrape.ExtractResult, error) {
	primary, err := s.Extractor.Extract(html)
	if err == nil && utf8.RuneCountInString(primary.TextContent) >= MinContentLength {
		return primary, nil
	}
	if s.Fallback == nil {
		if err != nil {
			return nil, err
		}
		return primary, nil
	}

	fallback, fbErr := s.Fallback.Extract(html)
	if fbErr != nil {
		if err != nil {
			return nil, err
		}
		return primary, nil
	}
	if fallback.Title == "" && primary != nil {
		fallback.Title = primary.Title
	}
	if fallback.Byline == "" && primary != nil {
		fallback.Byline = primary.Byline
	}
	return fallback, nil
}
