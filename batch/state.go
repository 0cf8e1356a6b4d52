package batch

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/firescrape"
)

// MaxErrorLen is the number of characters of an error kept in a report.
const MaxErrorLen = 100

// State is the mutable progress of one run: the checkpoint being built and
// the report returned to the caller.
type State struct {
	Checkpoint *firescrape.Checkpoint
	Report     *firescrape.BatchReport

	// successes counts items saved during this run.
	successes int
}

// NewState wraps cp, which may carry URLs from an earlier run.
func NewState(query string, cp *firescrape.Checkpoint) *State {
	if cp == nil {
		cp = firescrape.NewCheckpoint(query)
	}
	return &State{
		Checkpoint: cp,
		Report: &firescrape.BatchReport{
			Query:         query,
			Succeeded:     []string{},
			SucceededURLs: []string{},
			Failed:        []firescrape.ItemFailure{},
		},
	}
}

// Successes returns the number of items saved during this run.
func (s *State) Successes() int {
	return s.successes
}

// RecordSuccess marks url processed and saved to path.
func (s *State) RecordSuccess(url, path string) {
	s.Checkpoint.MarkProcessed(url)
	s.Checkpoint.SavedCount++
	s.Report.Succeeded = append(s.Report.Succeeded, path)
	s.Report.SucceededURLs = append(s.Report.SucceededURLs, url)
	s.successes++
}

// RecordFailure marks url processed so it is not retried on resume.
func (s *State) RecordFailure(url string, err error) {
	s.Checkpoint.MarkProcessed(url)
	s.Report.Failed = append(s.Report.Failed, firescrape.ItemFailure{
		URL:   url,
		Error: truncate(failureMessage(err), MaxErrorLen),
	})
}

// RecordSkip counts an item found in the loaded checkpoint.
func (s *State) RecordSkip() {
	s.Report.Skipped++
}

// Snapshot stamps the checkpoint for persisting.
func (s *State) Snapshot(now time.Time) *firescrape.Checkpoint {
	s.Checkpoint.LastUpdate = now
	return s.Checkpoint
}

// failureMessage prefers the message of a coded error; anything else is
// shown as is.
func failureMessage(err error) string {
	var e *firescrape.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
