package http

import (
	"context"
	"time"

	"github.com/fwojciec/firescrape"
)

// FetchFunc is the signature for a single fetch attempt.
type FetchFunc func(ctx context.Context, url string) (string, error)

// RetryFunc is called before each retry with the upcoming attempt number
// (starting at 2) and the error that caused it.
type RetryFunc func(attempt int, err error)

// RetryDelays returns n copies of delay.
func RetryDelays(n int, delay time.Duration) []time.Duration {
	if n <= 0 {
		return nil
	}
	delays := make([]time.Duration, n)
	for i := range delays {
		delays[i] = delay
	}
	return delays
}

// Retryable reports whether err is a transient failure worth retrying.
func Retryable(err error) bool {
	switch firescrape.ErrorCode(err) {
	case firescrape.ECONNECTION, firescrape.ETIMEOUT:
		return true
	}
	return false
}

// FetchWithRetryDelays calls fetch until it succeeds, returns a terminal
// error, or len(delays) retries have been used. delays[i] is the wait
// before retry i+1.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, onRetry RetryFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if !Retryable(err) || attempt >= maxAttempts-1 {
			break
		}

		if onRetry != nil {
			onRetry(attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
