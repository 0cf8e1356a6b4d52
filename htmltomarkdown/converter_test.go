package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/firescrape"
	"github.com/fwojciec/firescrape/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "headings",
			html: `<h1>Title</h1><h2>Subtitle</h2>`,
			want: []string{"# Title", "## Subtitle"},
		},
		{
			name: "lists",
			html: `<ul><li>First</li><li>Second</li></ul><ol><li>One</li></ol>`,
			want: []string{"- First", "- Second", "1. One"},
		},
		{
			name: "emphasis and quotes",
			html: `<p><strong>Bold</strong> and <em>italic</em></p><blockquote><p>Quoted.</p></blockquote>`,
			want: []string{"**Bold**", "*italic*", "> Quoted."},
		},
		{
			name: "code block keeps language",
			html: `<pre><code class="language-go">package main</code></pre>`,
			want: []string{"```go", "package main"},
		},
		{
			name: "tables",
			html: `<table><thead><tr><th>Name</th></tr></thead><tbody><tr><td>Alice</td></tr></tbody></table>`,
			want: []string{"Name", "Alice", "|", "---"},
		},
		{
			name: "CJK text",
			html: `<article><h1>标题</h1><p>这是正文。</p></article>`,
			want: []string{"# 标题", "这是正文。"},
		},
	}

	conv := htmltomarkdown.NewConverter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			md, err := conv.Convert(tt.html, "")

			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, md, w)
			}
		})
	}
}

func TestConverter_ResolvesRelativeLinks(t *testing.T) {
	t.Parallel()

	html := `<p>See <a href="/about">about</a> and <img src="img/chart.png" alt="chart"></p>`

	md, err := htmltomarkdown.NewConverter().Convert(html, "https://example.com/blog/post")

	require.NoError(t, err)
	assert.Contains(t, md, "[about](https://example.com/about)")
	assert.Contains(t, md, "![chart](https://example.com/blog/img/chart.png)")
}

func TestConverter_KeepsRelativeLinksWithoutBase(t *testing.T) {
	t.Parallel()

	md, err := htmltomarkdown.NewConverter().Convert(`<a href="/about">about</a>`, "")

	require.NoError(t, err)
	assert.Equal(t, "[about](/about)", md)
}

func TestConverter_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := htmltomarkdown.NewConverter().Convert("  \n ", "")

	assert.Equal(t, firescrape.EINVALID, firescrape.ErrorCode(err))
}
