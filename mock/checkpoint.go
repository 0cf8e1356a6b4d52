package mock

import (
	"context"

	"github.com/fwojciec/firescrape"
)

var _ firescrape.CheckpointStore = (*CheckpointStore)(nil)

// CheckpointStore is a mock implementation of firescrape.CheckpointStore.
type CheckpointStore struct {
	LoadFn   func(ctx context.Context, query string) (*firescrape.Checkpoint, error)
	SaveFn   func(ctx context.Context, cp *firescrape.Checkpoint) error
	DeleteFn func(ctx context.Context, query string) error
}

func (s *CheckpointStore) Load(ctx context.Context, query string) (*firescrape.Checkpoint, error) {
	return s.LoadFn(ctx, query)
}

func (s *CheckpointStore) Save(ctx context.Context, cp *firescrape.Checkpoint) error {
	return s.SaveFn(ctx, cp)
}

func (s *CheckpointStore) Delete(ctx context.Context, query string) error {
	return s.DeleteFn(ctx, query)
}
