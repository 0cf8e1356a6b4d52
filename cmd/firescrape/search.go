package main

import (
	"fmt"
	"strconv"

	"github.com/fwojciec/firescrape"
	"github.com/fwojciec/firescrape/fetch"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	hits, err := deps.NewSearcher(c.Content).Search(deps.Ctx, c.Query, c.Limit)
	if err != nil {
		return err
	}

	for i, h := range hits {
		fmt.Fprintf(deps.Stdout, "%d. %s\n   %s\n", i+1, h.Title, h.URL)
		if h.Description != "" {
			fmt.Fprintf(deps.Stdout, "   %s\n", h.Description)
		}
	}
	if !c.Save {
		return nil
	}

	items := make([]firescrape.BatchItem, len(hits))
	for i, h := range hits {
		items[i] = firescrape.BatchItem{
			URL:         h.URL,
			Title:       h.Title,
			Description: h.Description,
			Content:     h.Content,
		}
	}

	fmt.Fprintln(deps.Stdout)
	dir := outputDir(deps, c.Dir, "search_results")
	save := saveWith(deps.NewWriter(dir), func(index int, r *firescrape.FetchResult) string {
		return firescrape.SearchResultFilename(index, c.Query, r.Title)
	})
	report, err := newRunner(deps, dir).Run(deps.Ctx, c.Query, items, fetch.ItemFetcher(deps.Content), save)
	if err != nil {
		return err
	}
	printReport(deps, report, c.resumeCommand(dir))
	return nil
}

func (c *SearchCmd) resumeCommand(dir string) string {
	args := []string{"firescrape", "search", "--save", "-n", strconv.Itoa(c.Limit), "-d", dir}
	if c.Content {
		args = append(args, "--content")
	}
	return commandLine(append(args, "--", c.Query)...)
}
