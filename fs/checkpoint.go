package fs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/firescrape"
	"github.com/google/uuid"
)

// Ensure CheckpointStore implements firescrape.CheckpointStore at compile time.
var _ firescrape.CheckpointStore = (*CheckpointStore)(nil)

// CheckpointStore keeps one hidden JSON file per query in a directory.
type CheckpointStore struct {
	dir string
}

// NewCheckpointStore creates a CheckpointStore rooted at dir.
func NewCheckpointStore(dir string) *CheckpointStore {
	if dir == "" {
		dir = "."
	}
	return &CheckpointStore{dir: dir}
}

// CheckpointFilename returns the file name used for query. Queries that
// sanitize to nothing are keyed by a hash so they do not collide.
func CheckpointFilename(query string) string {
	key := firescrape.SanitizeFragment(query)
	if key == "" {
		key = strconv.FormatUint(xxhash.Sum64String(query), 16)
	}
	return ".progress_" + key + ".json"
}

// Path returns the checkpoint path for query.
func (s *CheckpointStore) Path(query string) string {
	return filepath.Join(s.dir, CheckpointFilename(query))
}

// Load reads the checkpoint for query.
func (s *CheckpointStore) Load(ctx context.Context, query string) (*firescrape.Checkpoint, error) {
	data, err := os.ReadFile(s.Path(query))
	if errors.Is(err, os.ErrNotExist) {
		return nil, firescrape.Errorf(firescrape.ENOTFOUND, "no checkpoint for %q", query)
	}
	if err != nil {
		return nil, err
	}

	var cp firescrape.Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, firescrape.Errorf(firescrape.EPARSE, "corrupt checkpoint %s: %v", s.Path(query), err)
	}
	return &cp, nil
}

// Save writes cp to a temporary file and renames it over the previous
// checkpoint, so a crash never leaves a half-written file behind.
func (s *CheckpointStore) Save(ctx context.Context, cp *firescrape.Checkpoint) error {
	if cp == nil {
		return firescrape.Errorf(firescrape.EINVALID, "nil checkpoint")
	}

	data, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	final := s.Path(cp.Query)
	tmp := final + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Delete removes the checkpoint for query.
func (s *CheckpointStore) Delete(ctx context.Context, query string) error {
	err := os.Remove(s.Path(query))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
