package goquery_test

import (
	"testing"

	"github.com/fwojciec/firescrape"
	"github.com/fwojciec/firescrape/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("resolves and filters links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="/blog/one">First  post</a>
<a href="two#comments">Second</a>
<a href="https://example.com/blog/one#top">First again</a>
<a href="https://other.example/x">External</a>
<a href="https://sub.example.com/y">Subdomain</a>
<a href="mailto:me@example.com">Mail</a>
<a href="javascript:void(0)">Script</a>
<a href="#">Self</a>
<a>No href</a>
</body></html>`

		links, err := goquery.ExtractLinks(html, "https://example.com/blog/")

		require.NoError(t, err)
		assert.Equal(t, []firescrape.Link{
			{URL: "https://example.com/blog/one", Title: "First post"},
			{URL: "https://example.com/blog/two", Title: "Second"},
		}, links)
	})

	t.Run("returns empty slice for page without links", func(t *testing.T) {
		t.Parallel()

		links, err := goquery.ExtractLinks(`<p>nothing</p>`, "https://example.com")

		require.NoError(t, err)
		assert.NotNil(t, links)
		assert.Empty(t, links)
	})

	t.Run("rejects invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.ExtractLinks(`<a href="/x">x</a>`, "::")

		assert.Equal(t, firescrape.EINVALID, firescrape.ErrorCode(err))
	})
}
