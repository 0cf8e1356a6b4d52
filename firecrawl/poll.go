package firecrawl

import (
	"context"
	"errors"
	"time"

	"github.com/rotisserie/eris"
)

const (
	defaultPollInitial = 2 * time.Second
	defaultPollCap     = 15 * time.Second
	defaultPollTimeout = 5 * time.Minute
)

// Job states reported by the status endpoints.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ErrJobFailed is returned when a crawl or batch job reports failure.
var ErrJobFailed = errors.New("firecrawl: job failed")

// PollOption configures polling behavior.
type PollOption func(*pollConfig)

type pollConfig struct {
	initial time.Duration
	cap     time.Duration
	timeout time.Duration
}

func defaultPollConfig() pollConfig {
	return pollConfig{
		initial: defaultPollInitial,
		cap:     defaultPollCap,
		timeout: defaultPollTimeout,
	}
}

// WithPollInterval overrides the initial poll interval.
func WithPollInterval(d time.Duration) PollOption {
	return func(c *pollConfig) {
		c.initial = d
	}
}

// WithPollCap overrides the maximum poll interval.
func WithPollCap(d time.Duration) PollOption {
	return func(c *pollConfig) {
		c.cap = d
	}
}

// WithPollTimeout overrides the default timeout (applied only if the parent
// context has no deadline).
func WithPollTimeout(d time.Duration) PollOption {
	return func(c *pollConfig) {
		c.timeout = d
	}
}

// StatusFunc fetches the current state of a job.
type StatusFunc func(ctx context.Context, id string) (*JobStatusResponse, error)

// PollCrawl polls GetCrawlStatus until the crawl completes, fails, or the
// context expires.
func PollCrawl(ctx context.Context, client Client, id string, opts ...PollOption) (*JobStatusResponse, error) {
	resp, err := pollJob(ctx, client.GetCrawlStatus, id, opts...)
	if err != nil {
		return nil, eris.Wrapf(err, "firecrawl: poll crawl %s", id)
	}
	return resp, nil
}

// PollBatchScrape polls GetBatchScrapeStatus until the batch completes,
// fails, or the context expires.
func PollBatchScrape(ctx context.Context, client Client, id string, opts ...PollOption) (*JobStatusResponse, error) {
	resp, err := pollJob(ctx, client.GetBatchScrapeStatus, id, opts...)
	if err != nil {
		return nil, eris.Wrapf(err, "firecrawl: poll batch scrape %s", id)
	}
	return resp, nil
}

// pollJob uses exponential backoff: 2s -> 4s -> 8s -> 15s (capped).
func pollJob(ctx context.Context, status StatusFunc, id string, opts ...PollOption) (*JobStatusResponse, error) {
	cfg := defaultPollConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	interval := cfg.initial
	for {
		resp, err := status(ctx, id)
		if err != nil {
			return nil, err
		}

		switch resp.Status {
		case StatusCompleted:
			return resp, nil
		case StatusFailed:
			return nil, ErrJobFailed
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}

		interval *= 2
		if interval > cfg.cap {
			interval = cfg.cap
		}
	}
}
