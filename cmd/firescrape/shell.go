package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fwojciec/firescrape"
)

// APIKeyPrefix starts every Firecrawl API key.
const APIKeyPrefix = "fc-"

const menu = `
==== firescrape ====
1. Scrape a page
2. Crawl a site
3. Search the web
4. Map a site
5. Batch scrape
6. Set API key
7. Help
0. Exit
`

const help = `Without an API key pages are fetched and extracted locally and search
uses DuckDuckGo. Set FIRECRAWL_API_KEY, pass --api-key or choose 6 to use
the Firecrawl API. Batch runs and saved searches keep a checkpoint file in
the output directory; an interrupted run prints the command that resumes it.`

// Run executes the interactive shell. Command errors are printed and the
// menu continues; it returns on 0, end of input or interrupt.
func (c *ShellCmd) Run(deps *Dependencies) error {
	sh := &shell{deps: deps, lines: readLines(deps.Ctx, deps.Stdin)}
	if deps.Hosted == nil {
		fmt.Fprintln(deps.Stdout, "No API key configured: using local extraction and free search.")
	}

	for {
		fmt.Fprint(deps.Stdout, menu)
		choice, ok := sh.prompt("Choose an option: ")
		if !ok {
			return deps.Ctx.Err()
		}

		var err error
		switch choice {
		case "1":
			err = sh.scrape()
		case "2":
			err = sh.crawl()
		case "3":
			err = sh.search()
		case "4":
			err = sh.mapSite()
		case "5":
			err = sh.batch()
		case "6":
			err = sh.setAPIKey()
		case "7":
			fmt.Fprintln(deps.Stdout, help)
		case "0", "q", "exit":
			fmt.Fprintln(deps.Stdout, "Bye.")
			return nil
		default:
			fmt.Fprintf(deps.Stdout, "Unknown option %q\n", choice)
		}

		if deps.Ctx.Err() != nil {
			return nil
		}
		if err != nil {
			if err == errInputClosed {
				return nil
			}
			fmt.Fprintln(deps.Stderr, "error:", errorText(err))
		}
	}
}

var errInputClosed = firescrape.Errorf(firescrape.EINVALID, "input closed")

type shell struct {
	deps  *Dependencies
	lines <-chan string
}

// readLines delivers lines from r until EOF or ctx is done.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case ch <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// prompt prints label and waits for a line. ok is false on end of input
// or interrupt.
func (s *shell) prompt(label string) (line string, ok bool) {
	fmt.Fprint(s.deps.Stdout, label)
	select {
	case line, ok = <-s.lines:
		return strings.TrimSpace(line), ok
	case <-s.deps.Ctx.Done():
		fmt.Fprintln(s.deps.Stdout)
		return "", false
	}
}

func (s *shell) required(label string) (string, error) {
	for {
		v, ok := s.prompt(label)
		if !ok {
			return "", errInputClosed
		}
		if v != "" {
			return v, nil
		}
	}
}

// number reads a positive integer, using def for an empty line.
func (s *shell) number(label string, def int) (int, error) {
	v, ok := s.prompt(fmt.Sprintf("%s [%d]: ", label, def))
	if !ok {
		return 0, errInputClosed
	}
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, firescrape.Errorf(firescrape.EINVALID, "%q is not a positive number", v)
	}
	return n, nil
}

func (s *shell) yes(label string) (bool, error) {
	v, ok := s.prompt(label + " [y/N]: ")
	if !ok {
		return false, errInputClosed
	}
	v = strings.ToLower(v)
	return v == "y" || v == "yes", nil
}

func (s *shell) scrape() error {
	url, err := s.required("URL: ")
	if err != nil {
		return err
	}
	result, err := s.deps.Content.FetchContent(s.deps.Ctx, url)
	if err != nil {
		return err
	}
	printPreview(s.deps, result)

	save, err := s.yes("Save to file?")
	if err != nil || !save {
		return err
	}
	name, _ := s.prompt("File name [" + firescrape.BatchFilename(1, result.Title) + "]: ")
	if name == "" {
		name = filepath.Join(outputDir(s.deps, "", ""), firescrape.BatchFilename(1, result.Title))
	}
	cmd := &ScrapeCmd{Output: name}
	return cmd.save(s.deps, firescrape.FormatResult(result))
}

func (s *shell) crawl() error {
	url, err := s.required("Start URL: ")
	if err != nil {
		return err
	}
	limit, err := s.number("Max pages", 10)
	if err != nil {
		return err
	}
	return (&CrawlCmd{URL: url, Limit: limit}).Run(s.deps)
}

func (s *shell) search() error {
	query, err := s.required("Query: ")
	if err != nil {
		return err
	}
	limit, err := s.number("Results", 5)
	if err != nil {
		return err
	}
	save, err := s.yes("Fetch and save results?")
	if err != nil {
		return err
	}
	return (&SearchCmd{Query: query, Limit: limit, Save: save}).Run(s.deps)
}

func (s *shell) mapSite() error {
	url, err := s.required("Site URL: ")
	if err != nil {
		return err
	}
	keyword, _ := s.prompt("Filter keyword (optional): ")
	return (&MapCmd{URL: url, Limit: 100, Search: keyword}).Run(s.deps)
}

func (s *shell) batch() error {
	raw, err := s.required("URLs (space or comma separated): ")
	if err != nil {
		return err
	}
	urls := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	name, _ := s.prompt("Batch name (optional): ")
	return (&BatchCmd{URLs: urls, Name: name}).Run(s.deps)
}

func (s *shell) setAPIKey() error {
	key, err := s.required("API key: ")
	if err != nil {
		return err
	}
	if !strings.HasPrefix(key, APIKeyPrefix) {
		fmt.Fprintf(s.deps.Stdout, "Warning: API keys normally start with %q.\n", APIKeyPrefix)
	}
	if err := s.deps.SetAPIKey(key); err != nil {
		return err
	}
	fmt.Fprintln(s.deps.Stdout, "API key set for this session.")
	return nil
}
