package main

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fwojciec/firescrape"
	"github.com/fwojciec/firescrape/batch"
)

// PreviewLen is the number of characters shown after a scrape.
const PreviewLen = 500

// startSpinner shows msg with a spinner on Stderr until the returned func
// is called. It does nothing when Stderr is not a terminal.
func startSpinner(deps *Dependencies, msg string) func() {
	if !deps.Spinner {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(deps.Stderr))
	s.Suffix = " " + msg
	s.Start()
	return s.Stop
}

func printPreview(deps *Dependencies, r *firescrape.FetchResult) {
	fmt.Fprintf(deps.Stdout, "Title: %s\n", r.Title)
	if r.Author != "" {
		fmt.Fprintf(deps.Stdout, "Author: %s\n", r.Author)
	}
	if r.PublishTime != "" {
		fmt.Fprintf(deps.Stdout, "Published: %s\n", r.PublishTime)
	}
	fmt.Fprintf(deps.Stdout, "URL: %s\n\n", r.URL)

	preview, rest := firescrape.Preview(r.Content, PreviewLen)
	fmt.Fprintln(deps.Stdout, preview)
	if rest > 0 {
		fmt.Fprintf(deps.Stdout, "\n... (%d more characters)\n", rest)
	}
}

// outputDir returns dir, or sub under the configured output directory when
// no directory was given.
func outputDir(deps *Dependencies, dir, sub string) string {
	if dir != "" {
		return dir
	}
	return filepath.Join(deps.Config.OutputDir, sub)
}

// newRunner returns a batch runner that reports progress on Stdout and
// keeps its checkpoint in dir.
func newRunner(deps *Dependencies, dir string) *batch.Runner {
	progress := func(e batch.ProgressEvent) {
		switch e.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Processing %d URLs\n", e.Total)
		case batch.ProgressFetching:
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s\n", e.Index, e.Total, firescrape.TruncateURL(e.URL, 80))
		case batch.ProgressSaved:
			fmt.Fprintf(deps.Stdout, "  saved %s\n", e.Path)
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  failed: %s\n", errorText(e.Error))
		}
	}
	return batch.NewRunner(deps.NewStore(dir),
		batch.WithCheckpointEvery(deps.Config.Batch.CheckpointEvery),
		batch.WithLogger(deps.Logger),
		batch.WithProgress(progress),
	)
}

// saveWith renders each result as Markdown and writes it under the name
// returned by filename.
func saveWith(w firescrape.ResultWriter, filename func(index int, r *firescrape.FetchResult) string) firescrape.ItemSaveFunc {
	return func(ctx context.Context, index int, item firescrape.BatchItem, r *firescrape.FetchResult) (string, error) {
		return w.Write(filename(index, r), firescrape.FormatResult(r))
	}
}

// printReport summarizes a run. resume is the command that continues an
// interrupted run.
func printReport(deps *Dependencies, report *firescrape.BatchReport, resume string) {
	fmt.Fprintf(deps.Stdout, "\nDone: %d saved, %d failed, %d skipped\n",
		len(report.Succeeded), len(report.Failed), report.Skipped)
	for _, f := range report.Failed {
		fmt.Fprintf(deps.Stdout, "  %s: %s\n", f.URL, f.Error)
	}
	if report.Interrupted {
		fmt.Fprintf(deps.Stdout, "\nInterrupted. Progress is saved; run this to resume:\n  %s\n", resume)
	}
}

var safeArg = regexp.MustCompile(`^[A-Za-z0-9_@%+=:,./-]+$`)

// commandLine joins args into a line a POSIX shell splits back into args.
func commandLine(args ...string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if safeArg.MatchString(a) {
			quoted[i] = a
			continue
		}
		quoted[i] = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
	}
	return strings.Join(quoted, " ")
}
