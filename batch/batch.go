// Package batch runs a list of URLs through fetch and save one at a time,
// checkpointing progress so an interrupted run can resume where it stopped.
package batch

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/firescrape"
	"github.com/google/uuid"
)

// DefaultCheckpointEvery is how many successes pass between checkpoint
// saves.
const DefaultCheckpointEvery = 5

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type  ProgressType
	Index int // 1-based position in the batch
	Total int
	URL   string
	Path  string
	Error error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressSkipped
	ProgressFetching
	ProgressSaved
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// Runner processes batches sequentially.
type Runner struct {
	store    firescrape.CheckpointStore
	every    int
	logger   *slog.Logger
	progress ProgressFunc
	now      func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithCheckpointEvery sets how many successes pass between checkpoint saves.
func WithCheckpointEvery(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.every = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithProgress sets a callback that receives events as items are processed.
func WithProgress(fn ProgressFunc) Option {
	return func(r *Runner) {
		r.progress = fn
	}
}

// NewRunner creates a Runner that persists checkpoints to store.
func NewRunner(store firescrape.CheckpointStore, opts ...Option) *Runner {
	r := &Runner{
		store:  store,
		every:  DefaultCheckpointEvery,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run fetches and saves every item not already in the checkpoint for
// query. Per-item failures are recorded in the report and never stop the
// run. When ctx is cancelled the item in flight is left unprocessed, the
// checkpoint is saved and the report comes back with Interrupted set and a
// nil error. A checkpoint is deleted once all items have been processed.
func (r *Runner) Run(ctx context.Context, query string, items []firescrape.BatchItem, fetch firescrape.ItemFetchFunc, save firescrape.ItemSaveFunc) (*firescrape.BatchReport, error) {
	logger := r.logger.With("run_id", uuid.NewString(), "query", query)

	cp, err := r.load(ctx, query, logger)
	if err != nil {
		return nil, err
	}
	state := NewState(query, cp)
	total := len(items)

	logger.Info("batch started", "items", total, "already_processed", cp.Len())
	r.notify(ProgressEvent{Type: ProgressStarted, Total: total})

	for i, item := range items {
		index := i + 1
		if ctx.Err() != nil {
			return r.interrupt(ctx, state, logger)
		}

		if state.Checkpoint.IsProcessed(item.URL) {
			state.RecordSkip()
			r.notify(ProgressEvent{Type: ProgressSkipped, Index: index, Total: total, URL: item.URL})
			continue
		}

		r.notify(ProgressEvent{Type: ProgressFetching, Index: index, Total: total, URL: item.URL})

		path, err := r.process(ctx, index, item, fetch, save)
		if err != nil {
			if ctx.Err() != nil {
				return r.interrupt(ctx, state, logger)
			}
			state.RecordFailure(item.URL, err)
			logger.Warn("item failed", "index", index, "url", item.URL, "code", firescrape.ErrorCode(err), "err", err)
			r.notify(ProgressEvent{Type: ProgressFailed, Index: index, Total: total, URL: item.URL, Error: err})
			continue
		}

		state.RecordSuccess(item.URL, path)
		logger.Debug("item saved", "index", index, "url", item.URL, "path", path)
		r.notify(ProgressEvent{Type: ProgressSaved, Index: index, Total: total, URL: item.URL, Path: path})

		if state.Successes()%r.every == 0 {
			if err := r.flush(ctx, state); err != nil {
				logger.Warn("checkpoint save failed", "err", err)
			}
		}
	}

	if err := r.flush(ctx, state); err != nil {
		logger.Warn("checkpoint save failed", "err", err)
	}
	if err := r.store.Delete(ctx, query); err != nil {
		logger.Warn("checkpoint delete failed", "err", err)
	}

	logger.Info("batch finished",
		"succeeded", len(state.Report.Succeeded),
		"failed", len(state.Report.Failed),
		"skipped", state.Report.Skipped,
	)
	r.notify(ProgressEvent{Type: ProgressFinished, Index: total, Total: total})
	return state.Report, nil
}

func (r *Runner) process(ctx context.Context, index int, item firescrape.BatchItem, fetch firescrape.ItemFetchFunc, save firescrape.ItemSaveFunc) (string, error) {
	result, err := fetch(ctx, item)
	if err != nil {
		return "", err
	}
	return save(ctx, index, item, result)
}

// load returns the checkpoint to resume from. A missing, unreadable or
// foreign checkpoint means a fresh start.
func (r *Runner) load(ctx context.Context, query string, logger *slog.Logger) (*firescrape.Checkpoint, error) {
	cp, err := r.store.Load(ctx, query)
	switch firescrape.ErrorCode(err) {
	case "":
	case firescrape.ENOTFOUND:
		return firescrape.NewCheckpoint(query), nil
	case firescrape.EPARSE:
		logger.Warn("ignoring unreadable checkpoint", "err", err)
		return firescrape.NewCheckpoint(query), nil
	default:
		return nil, err
	}

	if cp.Query != query {
		logger.Warn("ignoring checkpoint for another query", "checkpoint_query", cp.Query)
		return firescrape.NewCheckpoint(query), nil
	}
	if cp.Len() > 0 {
		logger.Info("resuming from checkpoint", "processed", cp.Len(), "last_update", cp.LastUpdate)
	}
	return cp, nil
}

// interrupt saves progress with a context that outlives the cancelled one.
func (r *Runner) interrupt(ctx context.Context, state *State, logger *slog.Logger) (*firescrape.BatchReport, error) {
	state.Report.Interrupted = true
	if err := r.flush(context.WithoutCancel(ctx), state); err != nil {
		logger.Error("checkpoint save failed after interrupt", "err", err)
		return state.Report, err
	}
	logger.Info("batch interrupted", "processed", state.Checkpoint.Len())
	return state.Report, nil
}

func (r *Runner) flush(ctx context.Context, state *State) error {
	return r.store.Save(ctx, state.Snapshot(r.now()))
}

func (r *Runner) notify(e ProgressEvent) {
	if r.progress != nil {
		r.progress(e)
	}
}
