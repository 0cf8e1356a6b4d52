package firescrape_test

import (
	"testing"

	"github.com/fwojciec/firescrape"
	"github.com/stretchr/testify/assert"
)

func TestSearchRegion(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "cn-zh", firescrape.SearchRegion("Python 教程"))
	assert.Equal(t, "wt-wt", firescrape.SearchRegion("python tutorial"))
	assert.Equal(t, "cn-zh", firescrape.SearchRegion("カタカナ"))
}

func TestQueryTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"python", "tutorial"}, firescrape.QueryTokens("  Python   Tutorial "))
	assert.Equal(t, []string{"python 教程"}, firescrape.QueryTokens("Python 教程"))
	assert.Nil(t, firescrape.QueryTokens("   "))
}

func TestRankByRelevance(t *testing.T) {
	t.Parallel()

	t.Run("relevant hits come first", func(t *testing.T) {
		t.Parallel()

		hits := []firescrape.SearchHit{
			{URL: "b", Title: "Cooking"},
			{URL: "a", Title: "Python Guide"},
		}

		got := firescrape.RankByRelevance("python", hits, 1)

		assert.Equal(t, []firescrape.SearchHit{{URL: "a", Title: "Python Guide"}}, got)
	})

	t.Run("keeps order when relevant is already first", func(t *testing.T) {
		t.Parallel()

		hits := []firescrape.SearchHit{
			{URL: "a", Title: "Python Guide"},
			{URL: "b", Title: "Cooking"},
		}

		got := firescrape.RankByRelevance("python", hits, 1)

		assert.Len(t, got, 1)
		assert.Equal(t, "a", got[0].URL)
	})

	t.Run("fills with irrelevant hits up to limit", func(t *testing.T) {
		t.Parallel()

		hits := []firescrape.SearchHit{
			{URL: "https://cook.example/1", Title: "Cooking"},
			{URL: "https://python.org", Title: "Home"},
			{URL: "https://news.example", Title: "News", Description: "all about python"},
			{URL: "https://garden.example", Title: "Gardening"},
		}

		got := firescrape.RankByRelevance("Python", hits, 3)

		urls := make([]string, 0, len(got))
		for _, h := range got {
			urls = append(urls, h.URL)
		}
		assert.Equal(t, []string{"https://python.org", "https://news.example", "https://cook.example/1"}, urls)
	})

	t.Run("matches whole CJK query", func(t *testing.T) {
		t.Parallel()

		hits := []firescrape.SearchHit{
			{URL: "x", Title: "Python 入门"},
			{URL: "y", Title: "最好的 Python 教程"},
		}

		got := firescrape.RankByRelevance("Python 教程", hits, 2)

		assert.Equal(t, "y", got[0].URL)
		assert.Equal(t, "x", got[1].URL)
	})
}
