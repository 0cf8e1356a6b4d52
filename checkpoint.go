package firescrape

import (
	"context"
	"encoding/json"
	"time"
)

// Checkpoint records which URLs of a batch run have been processed so an
// interrupted run can resume. Failed URLs are recorded too and are never
// retried while the checkpoint exists.
type Checkpoint struct {
	Query      string
	SavedCount int
	LastUpdate time.Time

	urls []string
	seen map[string]struct{}
}

// NewCheckpoint returns an empty checkpoint for query.
func NewCheckpoint(query string) *Checkpoint {
	return &Checkpoint{
		Query: query,
		seen:  make(map[string]struct{}),
	}
}

// IsProcessed reports whether url was already recorded.
func (c *Checkpoint) IsProcessed(url string) bool {
	_, ok := c.seen[url]
	return ok
}

// MarkProcessed records url. Returns false if it was already recorded.
func (c *Checkpoint) MarkProcessed(url string) bool {
	if c.seen == nil {
		c.seen = make(map[string]struct{})
	}
	if _, ok := c.seen[url]; ok {
		return false
	}
	c.seen[url] = struct{}{}
	c.urls = append(c.urls, url)
	return true
}

// ProcessedURLs returns recorded URLs in the order they were processed.
func (c *Checkpoint) ProcessedURLs() []string {
	out := make([]string, len(c.urls))
	copy(out, c.urls)
	return out
}

// Len returns the number of processed URLs.
func (c *Checkpoint) Len() int {
	return len(c.urls)
}

type checkpointJSON struct {
	Query         string    `json:"query"`
	ProcessedURLs []string  `json:"processed_urls"`
	SavedCount    int       `json:"saved_count"`
	LastUpdate    time.Time `json:"last_update"`
}

// MarshalJSON implements json.Marshaler.
func (c *Checkpoint) MarshalJSON() ([]byte, error) {
	urls := c.urls
	if urls == nil {
		urls = []string{}
	}
	return json.Marshal(checkpointJSON{
		Query:         c.Query,
		ProcessedURLs: urls,
		SavedCount:    c.SavedCount,
		LastUpdate:    c.LastUpdate,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Duplicate URLs in the input
// are collapsed.
func (c *Checkpoint) UnmarshalJSON(data []byte) error {
	var v checkpointJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = *NewCheckpoint(v.Query)
	c.SavedCount = v.SavedCount
	c.LastUpdate = v.LastUpdate
	for _, u := range v.ProcessedURLs {
		c.MarkProcessed(u)
	}
	return nil
}

// CheckpointStore persists checkpoints keyed by query.
type CheckpointStore interface {
	// Load returns the checkpoint for query.
	// Returns ENOTFOUND if none exists and EPARSE if it is unreadable.
	Load(ctx context.Context, query string) (*Checkpoint, error)

	// Save writes the checkpoint, replacing any previous one.
	Save(ctx context.Context, cp *Checkpoint) error

	// Delete removes the checkpoint for query. Deleting a missing
	// checkpoint is not an error.
	Delete(ctx context.Context, query string) error
}
