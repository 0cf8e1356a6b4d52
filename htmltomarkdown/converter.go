// Package htmltomarkdown implements firescrape.Converter with
// JohannesKaufmann/html-to-markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/firescrape"
)

// Ensure Converter implements firescrape.Converter at compile time.
var _ firescrape.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown. Relative link and image
// targets are made absolute against baseURL when it is set.
func (c *Converter) Convert(html string, baseURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", firescrape.Errorf(firescrape.EINVALID, "empty HTML input")
	}

	var opts []converter.ConvertOptionFunc
	if baseURL != "" {
		opts = append(opts, converter.WithDomain(baseURL))
	}

	result, err := c.conv.ConvertString(html, opts...)
	if err != nil {
		return "", firescrape.Errorf(firescrape.EPARSE, "converting HTML: %v", err)
	}

	return strings.TrimSpace(result), nil
}
