package slog_test

import (
	"context"
	"testing"

	"github.com/fwojciec/firescrape"
	"github.com/fwojciec/firescrape/mock"
	fsslog "github.com/fwojciec/firescrape/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSearcher_Search(t *testing.T) {
	t.Parallel()

	logger, buf := newBufferLogger()
	inner := &mock.Searcher{
		SearchFn: func(ctx context.Context, query string, limit int) ([]firescrape.SearchHit, error) {
			return []firescrape.SearchHit{{URL: "https://go.dev", Title: "Go"}}, nil
		},
	}

	hits, err := fsslog.NewLoggingSearcher(inner, logger).Search(context.Background(), "golang 教程", 5)

	require.NoError(t, err)
	assert.Len(t, hits, 1)
	assert.Contains(t, buf.String(), `msg=search query="golang 教程" limit=5 count=1`)
}

func TestLoggingHostedService(t *testing.T) {
	t.Parallel()

	t.Run("scrape logs requested formats", func(t *testing.T) {
		t.Parallel()

		logger, buf := newBufferLogger()
		inner := &mock.HostedService{
			ScrapeFn: func(ctx context.Context, url string, opts firescrape.ScrapeOptions) (*firescrape.Document, error) {
				return &firescrape.Document{Markdown: "# Hi"}, nil
			},
		}

		doc, err := fsslog.NewLoggingHostedService(inner, logger).Scrape(context.Background(), "https://example.com",
			firescrape.ScrapeOptions{Formats: []string{firescrape.FormatMarkdown, firescrape.FormatJSON}})

		require.NoError(t, err)
		assert.Equal(t, "# Hi", doc.Markdown)
		assert.Contains(t, buf.String(), `msg="hosted scrape" url=https://example.com formats="[markdown json]"`)
	})

	t.Run("map logs link count", func(t *testing.T) {
		t.Parallel()

		logger, buf := newBufferLogger()
		inner := &mock.HostedService{
			MapFn: func(ctx context.Context, url string, opts firescrape.MapOptions) ([]firescrape.Link, error) {
				return []firescrape.Link{{URL: "https://example.com/a"}, {URL: "https://example.com/b"}}, nil
			},
		}

		links, err := fsslog.NewLoggingHostedService(inner, logger).Map(context.Background(), "https://example.com", firescrape.MapOptions{Limit: 10})

		require.NoError(t, err)
		assert.Len(t, links, 2)
		assert.Contains(t, buf.String(), `msg="hosted map" url=https://example.com count=2`)
	})

	t.Run("crawl logs failures", func(t *testing.T) {
		t.Parallel()

		logger, buf := newBufferLogger()
		inner := &mock.HostedService{
			CrawlFn: func(ctx context.Context, url string, opts firescrape.CrawlOptions) ([]*firescrape.Document, error) {
				return nil, firescrape.Errorf(firescrape.EUNAUTHORIZED, "invalid API key")
			},
		}

		_, err := fsslog.NewLoggingHostedService(inner, logger).Crawl(context.Background(), "https://example.com", firescrape.CrawlOptions{Limit: 3})

		require.Error(t, err)
		assert.Contains(t, buf.String(), `msg="hosted crawl" url=https://example.com limit=3 count=0`)
		assert.Contains(t, buf.String(), "invalid API key")
	})
}
