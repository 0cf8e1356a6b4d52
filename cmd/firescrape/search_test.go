package main_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/firescrape"
	main "github.com/fwojciec/firescrape/cmd/firescrape"
	"github.com/fwojciec/firescrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	hits := []firescrape.SearchHit{
		{URL: "https://a.example/intro", Title: "Intro", Description: "Getting started"},
		{URL: "https://b.example/guide", Title: "Guide", Content: "# Guide\n\nprefetched"},
	}

	t.Run("lists results", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		env.deps.NewSearcher = func(content bool) firescrape.Searcher {
			assert.True(t, content)
			return &mock.Searcher{SearchFn: func(ctx context.Context, query string, limit int) ([]firescrape.SearchHit, error) {
				assert.Equal(t, "golang", query)
				assert.Equal(t, 2, limit)
				return hits, nil
			}}
		}

		err := (&main.SearchCmd{Query: "golang", Limit: 2, Content: true}).Run(env.deps)

		require.NoError(t, err)
		assert.Contains(t, env.stdout.String(), "1. Intro\n   https://a.example/intro\n   Getting started\n")
		assert.Contains(t, env.stdout.String(), "2. Guide\n   https://b.example/guide\n")
	})

	t.Run("saves results", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		env.deps.NewSearcher = func(content bool) firescrape.Searcher {
			return &mock.Searcher{SearchFn: func(ctx context.Context, query string, limit int) ([]firescrape.SearchHit, error) {
				return hits, nil
			}}
		}
		var fetched []string
		env.deps.Content = &mock.ContentFetcher{
			FetchContentFn: func(ctx context.Context, url string) (*firescrape.FetchResult, error) {
				fetched = append(fetched, url)
				return &firescrape.FetchResult{Title: "Intro Page", Content: "fetched", URL: url}, nil
			},
		}

		err := (&main.SearchCmd{Query: "go lang", Limit: 2, Save: true, Dir: "search_results"}).Run(env.deps)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://a.example/intro"}, fetched, "hits with content are not fetched again")

		dir := filepath.Join(env.dir, "search_results")
		_, err = os.Stat(filepath.Join(dir, "001_go_lang_Intro_Page.md"))
		assert.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(dir, "002_go_lang_Guide.md"))
		require.NoError(t, err)
		assert.Contains(t, string(got), "prefetched")
		assert.Contains(t, env.stdout.String(), "Done: 2 saved, 0 failed, 0 skipped")
	})

	t.Run("returns search errors", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		env.deps.NewSearcher = func(content bool) firescrape.Searcher {
			return &mock.Searcher{SearchFn: func(ctx context.Context, query string, limit int) ([]firescrape.SearchHit, error) {
				return nil, firescrape.Errorf(firescrape.EEMPTY, "no results")
			}}
		}

		err := (&main.SearchCmd{Query: "x", Limit: 2}).Run(env.deps)

		assert.Equal(t, firescrape.EEMPTY, firescrape.ErrorCode(err))
	})

	t.Run("saves under the output directory by default", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		env.deps.Config.OutputDir = "results"
		env.deps.NewSearcher = func(content bool) firescrape.Searcher {
			return &mock.Searcher{SearchFn: func(ctx context.Context, query string, limit int) ([]firescrape.SearchHit, error) {
				return hits, nil
			}}
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		env.deps.Ctx = ctx
		env.deps.Content = &mock.ContentFetcher{
			FetchContentFn: func(ctx context.Context, url string) (*firescrape.FetchResult, error) {
				cancel()
				return &firescrape.FetchResult{Title: "Intro", Content: "fetched", URL: url}, nil
			},
		}

		err := (&main.SearchCmd{Query: "it's go", Limit: 2, Save: true}).Run(env.deps)

		require.NoError(t, err)
		dir := filepath.Join(env.dir, "results", "search_results")
		_, err = os.Stat(filepath.Join(dir, "001_its_go_Intro.md"))
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(dir, ".progress_its_go.json"))
		assert.NoError(t, err, "checkpoint sits next to the results")
		assert.Contains(t, env.stdout.String(),
			`firescrape search --save -n 2 -d results/search_results -- 'it'\''s go'`)
	})
}
