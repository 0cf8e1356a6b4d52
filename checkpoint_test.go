package firescrape_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fwojciec/firescrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpoint_MarkProcessed(t *testing.T) {
	t.Parallel()

	cp := firescrape.NewCheckpoint("golang")

	assert.True(t, cp.MarkProcessed("https://a.example"))
	assert.True(t, cp.MarkProcessed("https://b.example"))
	assert.False(t, cp.MarkProcessed("https://a.example"))

	assert.True(t, cp.IsProcessed("https://a.example"))
	assert.False(t, cp.IsProcessed("https://c.example"))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cp.ProcessedURLs())
	assert.Equal(t, 2, cp.Len())
}

func TestCheckpoint_ZeroValue(t *testing.T) {
	t.Parallel()

	var cp firescrape.Checkpoint

	assert.True(t, cp.MarkProcessed("https://a.example"))
	assert.True(t, cp.IsProcessed("https://a.example"))
}

func TestCheckpoint_JSON(t *testing.T) {
	t.Parallel()

	t.Run("uses snake case keys", func(t *testing.T) {
		t.Parallel()

		cp := firescrape.NewCheckpoint("golang")
		cp.MarkProcessed("https://a.example")
		cp.SavedCount = 1
		cp.LastUpdate = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

		data, err := json.Marshal(cp)
		require.NoError(t, err)

		assert.JSONEq(t, `{
			"query": "golang",
			"processed_urls": ["https://a.example"],
			"saved_count": 1,
			"last_update": "2025-03-01T12:00:00Z"
		}`, string(data))
	})

	t.Run("empty checkpoint encodes empty list", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(firescrape.NewCheckpoint("q"))
		require.NoError(t, err)

		assert.Contains(t, string(data), `"processed_urls":[]`)
	})

	t.Run("decoding collapses duplicates", func(t *testing.T) {
		t.Parallel()

		var cp firescrape.Checkpoint
		err := json.Unmarshal([]byte(`{"query":"q","processed_urls":["a","b","a"],"saved_count":2}`), &cp)
		require.NoError(t, err)

		assert.Equal(t, "q", cp.Query)
		assert.Equal(t, 2, cp.SavedCount)
		assert.Equal(t, []string{"a", "b"}, cp.ProcessedURLs())
		assert.True(t, cp.IsProcessed("b"))
	})
}
