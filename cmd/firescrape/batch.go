package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/firescrape"
	"github.com/fwojciec/firescrape/fetch"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	urls := c.URLs
	if c.File != "" {
		fromFile, err := readURLFile(c.File)
		if err != nil {
			return err
		}
		urls = append(urls, fromFile...)
	}
	if len(urls) == 0 {
		return firescrape.Errorf(firescrape.EINVALID, "no URLs given; pass them as arguments or with --file")
	}

	name := c.Name
	if name == "" {
		name = defaultBatchName(urls)
	}

	items := make([]firescrape.BatchItem, len(urls))
	for i, u := range urls {
		items[i] = firescrape.BatchItem{URL: u}
	}

	dir := outputDir(deps, c.Dir, "")
	save := saveWith(deps.NewWriter(dir), func(index int, r *firescrape.FetchResult) string {
		return firescrape.BatchFilename(index, r.Title)
	})
	report, err := newRunner(deps, dir).Run(deps.Ctx, name, items, fetch.ItemFetcher(deps.Content), save)
	if err != nil {
		return err
	}
	printReport(deps, report, c.resumeCommand(name, dir))
	return nil
}

// defaultBatchName keys an unnamed batch by its URL list, so only a rerun
// over the same list resumes it.
func defaultBatchName(urls []string) string {
	return fmt.Sprintf("batch_%016x", xxhash.Sum64String(strings.Join(urls, "\n")))
}

func (c *BatchCmd) resumeCommand(name, dir string) string {
	args := []string{"firescrape", "batch", "--name", name, "-d", dir}
	if c.File != "" {
		args = append(args, "-f", c.File)
	}
	if len(c.URLs) > 0 {
		args = append(append(args, "--"), c.URLs...)
	}
	return commandLine(args...)
}

// readURLFile returns the non-empty lines of path. Lines starting with #
// are comments.
func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}
