package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/firescrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	if c.Format == firescrape.FormatHTML {
		return c.runHTML(deps)
	}

	result, err := deps.Content.FetchContent(deps.Ctx, c.URL)
	if err != nil {
		return err
	}

	printPreview(deps, result)
	if c.Output == "" {
		return nil
	}
	return c.save(deps, firescrape.FormatResult(result))
}

// runHTML returns the raw page: from the hosted API when configured,
// otherwise straight from the local fetcher.
func (c *ScrapeCmd) runHTML(deps *Dependencies) error {
	var html string
	if deps.Hosted != nil {
		doc, err := deps.Hosted.Scrape(deps.Ctx, c.URL, firescrape.ScrapeOptions{
			Formats: []string{firescrape.FormatHTML},
		})
		if err != nil {
			return err
		}
		html = doc.HTML
	} else {
		var err error
		if html, err = deps.Pages.Fetch(deps.Ctx, c.URL); err != nil {
			return err
		}
	}

	if c.Output == "" {
		fmt.Fprintln(deps.Stdout, html)
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Fetched %s (%s)\n", c.URL, firescrape.FormatBytes(len(html)))
	return c.save(deps, html)
}

func (c *ScrapeCmd) save(deps *Dependencies, content string) error {
	path, err := deps.NewWriter(filepath.Dir(c.Output)).Write(filepath.Base(c.Output), content)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "\nSaved to %s\n", path)
	return nil
}
