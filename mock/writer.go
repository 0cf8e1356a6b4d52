package mock

import "github.com/fwojciec/firescrape"

var _ firescrape.ResultWriter = (*ResultWriter)(nil)

// ResultWriter is a mock implementation of firescrape.ResultWriter.
type ResultWriter struct {
	WriteFn func(name, content string) (string, error)
}

func (w *ResultWriter) Write(name, content string) (string, error) {
	return w.WriteFn(name, content)
}
