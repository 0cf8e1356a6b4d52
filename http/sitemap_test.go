package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/firescrape"
	fshttp "github.com/fwojciec/firescrape/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const urlset = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/blog/first</loc></url>
  <url><loc>{{BASE}}/blog/drafts/wip</loc></url>
  <url><loc>{{BASE}}/about</loc></url>
  <url><loc>{{BASE}}/blog/first</loc></url>
</urlset>`

func TestSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("reads sitemaps listed in robots.txt", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t, map[string]string{
			"/robots.txt": "User-agent: *\nDisallow: /private/\nsitemap: {{BASE}}/s1.xml\nSitemap: {{BASE}}/s2.xml\n",
			"/s1.xml":     `<urlset><url><loc>{{BASE}}/one</loc></url></urlset>`,
			"/s2.xml":     `<urlset><url><loc>{{BASE}}/two</loc></url></urlset>`,
		})

		urls, err := fshttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/one", srv.URL + "/two"}, urls)
	})

	t.Run("falls back to sitemap.xml and drops duplicates", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t, map[string]string{"/sitemap.xml": urlset})

		urls, err := fshttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/blog/first", srv.URL + "/blog/drafts/wip", srv.URL + "/about"}, urls)
	})

	t.Run("follows sitemap index", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t, map[string]string{
			"/sitemap.xml": `<sitemapindex>
  <sitemap><loc>{{BASE}}/posts.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/missing.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/posts.xml</loc></sitemap>
</sitemapindex>`,
			"/posts.xml": `<urlset><url><loc>{{BASE}}/post</loc></url></urlset>`,
		})

		urls, err := fshttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/post"}, urls)
	})

	t.Run("limits to base path", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t, map[string]string{"/sitemap.xml": urlset})

		urls, err := fshttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL+"/blog/", nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/blog/first", srv.URL + "/blog/drafts/wip"}, urls)
	})

	t.Run("applies filter", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t, map[string]string{"/sitemap.xml": urlset})
		filter, err := firescrape.NewURLFilter([]string{"/blog/"}, []string{"/drafts/"})
		require.NoError(t, err)

		urls, err := fshttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, filter)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/blog/first"}, urls)
	})

	t.Run("returns empty slice without sitemap", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t, map[string]string{})

		urls, err := fshttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.NotNil(t, urls)
		assert.Empty(t, urls)
	})

	t.Run("malformed sitemap is EPARSE", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t, map[string]string{"/sitemap.xml": "<urlset><url>"})

		_, err := fshttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, nil)

		assert.Equal(t, firescrape.EPARSE, firescrape.ErrorCode(err))
	})

	t.Run("rejects invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, err := fshttp.NewSitemapService(nil).DiscoverURLs(context.Background(), "not a url", nil)

		assert.Equal(t, firescrape.EINVALID, firescrape.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t, map[string]string{"/sitemap.xml": urlset})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fshttp.NewSitemapService(srv.Client()).DiscoverURLs(ctx, srv.URL, nil)

		require.ErrorIs(t, err, context.Canceled)
	})
}

// newSiteServer serves the given path->content mapping. Content may contain
// {{BASE}}, which is replaced with the server URL.
func newSiteServer(t *testing.T, content map[string]string) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := content[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(strings.ReplaceAll(body, "{{BASE}}", srv.URL)))
	}))
	t.Cleanup(srv.Close)

	return srv
}
