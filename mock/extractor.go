package mock

import "github.com/fwojciec/firescrape"

var _ firescrape.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of firescrape.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*firescrape.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*firescrape.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ firescrape.MetaReader = (*MetaReader)(nil)

// MetaReader is a mock implementation of firescrape.MetaReader.
type MetaReader struct {
	ReadMetaFn func(html string) (*firescrape.PageMeta, error)
}

func (m *MetaReader) ReadMeta(html string) (*firescrape.PageMeta, error) {
	return m.ReadMetaFn(html)
}
