package fetch_test

import (
	"context"
	"testing"

	"github.com/fwojciec/firescrape"
	"github.com/fwojciec/firescrape/fetch"
	"github.com/fwojciec/firescrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_FetchContent(t *testing.T) {
	t.Parallel()

	localResult := &firescrape.FetchResult{Title: "Local", URL: "https://example.com"}
	local := &mock.ContentFetcher{
		FetchContentFn: func(ctx context.Context, url string) (*firescrape.FetchResult, error) {
			return localResult, nil
		},
	}

	t.Run("uses local when hosted is not configured", func(t *testing.T) {
		t.Parallel()

		d := fetch.NewDispatcher(nil, local, nil)

		got, err := d.FetchContent(context.Background(), "https://example.com")

		require.NoError(t, err)
		assert.Same(t, localResult, got)
	})

	t.Run("prefers hosted", func(t *testing.T) {
		t.Parallel()

		hostedResult := &firescrape.FetchResult{Title: "Hosted"}
		hosted := &mock.ContentFetcher{
			FetchContentFn: func(ctx context.Context, url string) (*firescrape.FetchResult, error) {
				return hostedResult, nil
			},
		}
		failingLocal := &mock.ContentFetcher{
			FetchContentFn: func(ctx context.Context, url string) (*firescrape.FetchResult, error) {
				t.Fatal("local should not be called")
				return nil, nil
			},
		}

		got, err := fetch.NewDispatcher(hosted, failingLocal, nil).FetchContent(context.Background(), "https://example.com")

		require.NoError(t, err)
		assert.Same(t, hostedResult, got)
	})

	t.Run("falls back to local on hosted error", func(t *testing.T) {
		t.Parallel()

		hosted := &mock.ContentFetcher{
			FetchContentFn: func(ctx context.Context, url string) (*firescrape.FetchResult, error) {
				return nil, firescrape.Errorf(firescrape.EUNAUTHORIZED, "bad key")
			},
		}

		got, err := fetch.NewDispatcher(hosted, local, nil).FetchContent(context.Background(), "https://example.com")

		require.NoError(t, err)
		assert.Same(t, localResult, got)
	})

	t.Run("does not fall back after cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		hosted := &mock.ContentFetcher{
			FetchContentFn: func(ctx context.Context, url string) (*firescrape.FetchResult, error) {
				cancel()
				return nil, ctx.Err()
			},
		}
		var localCalled bool
		spy := &mock.ContentFetcher{
			FetchContentFn: func(ctx context.Context, url string) (*firescrape.FetchResult, error) {
				localCalled = true
				return nil, nil
			},
		}

		_, err := fetch.NewDispatcher(hosted, spy, nil).FetchContent(ctx, "https://example.com")

		require.ErrorIs(t, err, context.Canceled)
		assert.False(t, localCalled)
	})
}

func TestItemFetcher(t *testing.T) {
	t.Parallel()

	t.Run("uses prefetched content", func(t *testing.T) {
		t.Parallel()

		cf := &mock.ContentFetcher{
			FetchContentFn: func(ctx context.Context, url string) (*firescrape.FetchResult, error) {
				t.Fatal("should not fetch")
				return nil, nil
			},
		}

		got, err := fetch.ItemFetcher(cf)(context.Background(), firescrape.BatchItem{
			URL:     "https://example.com/a",
			Content: "# A\n\n\n\nbody",
		})

		require.NoError(t, err)
		assert.Equal(t, &firescrape.FetchResult{
			Title:   "https://example.com/a",
			Content: "# A\n\nbody",
			URL:     "https://example.com/a",
		}, got)
	})

	t.Run("fetches items without content", func(t *testing.T) {
		t.Parallel()

		want := &firescrape.FetchResult{Title: "B"}
		cf := &mock.ContentFetcher{
			FetchContentFn: func(ctx context.Context, url string) (*firescrape.FetchResult, error) {
				assert.Equal(t, "https://example.com/b", url)
				return want, nil
			},
		}

		got, err := fetch.ItemFetcher(cf)(context.Background(), firescrape.BatchItem{URL: "https://example.com/b", Title: "B"})

		require.NoError(t, err)
		assert.Same(t, want, got)
	})
}

func TestNormalizePublishTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-02T10:00:00Z", "2024-01-02 10:00:00"},
		{"2024-01-02T10:00:00+08:00", "2024-01-02 10:00:00"},
		{"2023-05-01", "2023-05-01 00:00:00"},
		{" 2022-03-04 08:30 ", "2022-03-04 08:30:00"},
		{"last Tuesday", "last Tuesday"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fetch.NormalizePublishTime(tt.in), tt.in)
	}
}
