// Package goquery implements HTML helpers on top of PuerkitoBio/goquery:
// article metadata reading, boilerplate stripping and link extraction.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/firescrape"
)

// Ensure MetaReader implements firescrape.MetaReader at compile time.
var _ firescrape.MetaReader = (*MetaReader)(nil)

// pattern locates a value in a document. An empty attr means the
// element's text.
type pattern struct {
	selector string
	attr     string
}

// Patterns are tried in order; the first non-empty value wins.
var (
	authorPatterns = []pattern{
		{`meta[name="author"]`, "content"},
		{`meta[property="article:author"]`, "content"},
		{`meta[name="byl"]`, "content"},
		{`meta[name="dc.creator"], meta[name="DC.creator"]`, "content"},
		{`meta[itemprop="author"]`, "content"},
		{`[itemprop="author"] [itemprop="name"]`, ""},
		{`[rel="author"]`, ""},
		{`.author`, ""},
		{`.byline`, ""},
	}

	publishPatterns = []pattern{
		{`meta[property="article:published_time"]`, "content"},
		{`meta[property="og:published_time"]`, "content"},
		{`meta[name="pubdate"]`, "content"},
		{`meta[name="publishdate"]`, "content"},
		{`meta[name="publish_date"]`, "content"},
		{`meta[name="dc.date"], meta[name="DC.date"]`, "content"},
		{`meta[name="date"]`, "content"},
		{`meta[itemprop="datePublished"]`, "content"},
		{`time[itemprop="datePublished"]`, "datetime"},
		{`time[pubdate]`, "datetime"},
		{`time[datetime]`, "datetime"},
	}
)

// MetaReader reads author and publish time from meta tags and common
// article markup.
type MetaReader struct{}

// NewMetaReader creates a new MetaReader.
func NewMetaReader() *MetaReader {
	return &MetaReader{}
}

// ReadMeta returns the first author and publish time found. Values are
// returned as written in the page; missing values are empty.
func (r *MetaReader) ReadMeta(html string) (*firescrape.PageMeta, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, firescrape.Errorf(firescrape.EPARSE, "failed to parse HTML: %v", err)
	}
	return &firescrape.PageMeta{
		Author:      firstMatch(doc, authorPatterns),
		PublishTime: firstMatch(doc, publishPatterns),
	}, nil
}

func firstMatch(doc *goquery.Document, patterns []pattern) string {
	for _, p := range patterns {
		var value string
		doc.Find(p.selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if p.attr == "" {
				value = strings.Join(strings.Fields(sel.Text()), " ")
			} else {
				value = strings.TrimSpace(sel.AttrOr(p.attr, ""))
			}
			return value == ""
		})
		if value != "" {
			return value
		}
	}
	return ""
}
