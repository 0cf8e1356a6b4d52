package mock

import "github.com/fwojciec/firescrape"

var _ firescrape.Converter = (*Converter)(nil)

// Converter is a mock implementation of firescrape.Converter.
type Converter struct {
	ConvertFn func(html string, baseURL string) (string, error)
}

func (c *Converter) Convert(html string, baseURL string) (string, error) {
	return c.ConvertFn(html, baseURL)
}
