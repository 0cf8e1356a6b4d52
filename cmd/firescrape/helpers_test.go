package main_test

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/firescrape"
	main "github.com/fwojciec/firescrape/cmd/firescrape"
	"github.com/fwojciec/firescrape/config"
	"github.com/fwojciec/firescrape/fs"
	"github.com/fwojciec/firescrape/mock"
)

type testEnv struct {
	deps   *main.Dependencies
	dir    string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv returns dependencies writing results and checkpoints into a
// temporary directory.
// Content echoes the URL as an article; tests replace what they need.
func newTestEnv(t *testing.T, stdin string) *testEnv {
	t.Helper()

	dir := t.TempDir()
	env := &testEnv{dir: dir, stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	env.deps = &main.Dependencies{
		Ctx:    context.Background(),
		Stdin:  strings.NewReader(stdin),
		Stdout: env.stdout,
		Stderr: env.stderr,
		Logger: slog.New(slog.DiscardHandler),
		Config: config.Default(),
		Content: &mock.ContentFetcher{
			FetchContentFn: func(ctx context.Context, url string) (*firescrape.FetchResult, error) {
				return &firescrape.FetchResult{Title: "Page " + url[strings.LastIndex(url, "/")+1:], Content: "body of " + url, URL: url}, nil
			},
		},
		NewWriter: func(sub string) firescrape.ResultWriter {
			return fs.NewWriter(filepath.Join(dir, sub))
		},
		NewStore: func(sub string) firescrape.CheckpointStore {
			return fs.NewCheckpointStore(filepath.Join(dir, sub))
		},
	}
	return env
}
