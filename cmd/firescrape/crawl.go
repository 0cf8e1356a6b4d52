package main

import (
	"fmt"
	"strconv"

	"github.com/fwojciec/firescrape"
	"github.com/fwojciec/firescrape/fetch"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	if c.Limit <= 0 {
		return firescrape.Errorf(firescrape.EINVALID, "limit must be positive")
	}
	filter, err := firescrape.NewURLFilter(c.Include, c.Exclude)
	if err != nil {
		return err
	}

	dir := outputDir(deps, c.Dir, "")
	if deps.Hosted != nil {
		return c.runHosted(deps, deps.NewWriter(dir))
	}
	return c.runLocal(deps, dir, filter)
}

func (c *CrawlCmd) runHosted(deps *Dependencies, writer firescrape.ResultWriter) error {
	stop := startSpinner(deps, "Crawling "+c.URL)
	docs, err := deps.Hosted.Crawl(deps.Ctx, c.URL, firescrape.CrawlOptions{
		Limit:        c.Limit,
		IncludePaths: c.Include,
		ExcludePaths: c.Exclude,
	})
	stop()
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Crawled %d pages\n", len(docs))
	for i, doc := range docs {
		result := &firescrape.FetchResult{
			Title:   doc.Metadata.Title,
			Content: firescrape.NormalizeWhitespace(doc.Markdown),
			URL:     doc.Metadata.SourceURL,
		}
		if result.Title == "" {
			result.Title = result.URL
		}
		path, err := writer.Write(firescrape.CrawlPageFilename(i+1, result.Title), firescrape.FormatResult(result))
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "  saved %s\n", path)
	}
	return nil
}

// runLocal discovers pages from the sitemap, or the links of the start
// page when there is none, and runs them through the batch pipeline.
func (c *CrawlCmd) runLocal(deps *Dependencies, dir string, filter *firescrape.URLFilter) error {
	urls, err := discover(deps, c.URL, filter)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return firescrape.Errorf(firescrape.EEMPTY, "no pages found at %s", c.URL)
	}
	if len(urls) > c.Limit {
		urls = urls[:c.Limit]
	}

	items := make([]firescrape.BatchItem, len(urls))
	for i, u := range urls {
		items[i] = firescrape.BatchItem{URL: u}
	}

	save := saveWith(deps.NewWriter(dir), func(index int, r *firescrape.FetchResult) string {
		return firescrape.CrawlPageFilename(index, r.Title)
	})
	report, err := newRunner(deps, dir).Run(deps.Ctx, "crawl "+c.URL, items, fetch.ItemFetcher(deps.Content), save)
	if err != nil {
		return err
	}
	printReport(deps, report, c.resumeCommand(dir))
	return nil
}

func (c *CrawlCmd) resumeCommand(dir string) string {
	args := []string{"firescrape", "crawl", "-n", strconv.Itoa(c.Limit), "-d", dir}
	for _, p := range c.Include {
		args = append(args, "--include", p)
	}
	for _, p := range c.Exclude {
		args = append(args, "--exclude", p)
	}
	return commandLine(append(args, "--", c.URL)...)
}
