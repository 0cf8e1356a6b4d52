package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/firescrape"
	"github.com/fwojciec/firescrape/config"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *config.Config

	// Hosted is nil when no API key is configured.
	Hosted   firescrape.HostedService
	Content  firescrape.ContentFetcher
	Pages    firescrape.Fetcher
	Sitemaps firescrape.SitemapService

	// NewWriter and NewStore are given the same directory so checkpoints
	// sit next to the files they describe.
	NewWriter   func(dir string) firescrape.ResultWriter
	NewStore    func(dir string) firescrape.CheckpointStore
	NewSearcher func(content bool) firescrape.Searcher

	// SetAPIKey rebuilds the services with a new key for the rest of the
	// session.
	SetAPIKey func(key string) error

	// Spinner enables progress spinners on Stderr.
	Spinner bool
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"Path to config file (default firescrape.toml, or $FIRESCRAPE_CONFIG)" type:"path"`
	APIKey  string `name:"api-key" env:"FIRECRAWL_API_KEY" help:"Firecrawl API key"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Scrape ScrapeCmd `cmd:"" help:"Scrape a single page"`
	Crawl  CrawlCmd  `cmd:"" help:"Crawl a site and save every page"`
	Search SearchCmd `cmd:"" help:"Search the web"`
	Map    MapCmd    `cmd:"" help:"List the links of a site"`
	Batch  BatchCmd  `cmd:"" help:"Scrape a list of URLs, resumable after interruption"`
	Shell  ShellCmd  `cmd:"" help:"Interactive menu"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL    string `arg:"" help:"Page URL"`
	Output string `short:"o" help:"Save the result to this file"`
	Format string `enum:"markdown,html" default:"markdown" help:"Output format (markdown, html)"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL     string   `arg:"" help:"Start URL"`
	Limit   int      `short:"n" default:"10" help:"Maximum number of pages"`
	Include []string `help:"Only crawl paths matching this regex (repeatable)"`
	Exclude []string `help:"Skip paths matching this regex (repeatable)"`
	Dir     string   `short:"d" help:"Output directory (default output_dir)"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query   string `arg:"" help:"Search query"`
	Limit   int    `short:"n" default:"5" help:"Number of results"`
	Content bool   `help:"Ask the hosted search for page content"`
	Save    bool   `short:"s" help:"Fetch and save every result"`
	Dir     string `short:"d" help:"Output directory for saved results (default <output_dir>/search_results)"`
}

// MapCmd is the "map" subcommand.
type MapCmd struct {
	URL    string `arg:"" help:"Site URL"`
	Limit  int    `short:"n" default:"100" help:"Maximum number of links"`
	Search string `help:"Only list links containing this keyword"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URLs []string `arg:"" optional:"" name:"url" help:"URLs to scrape"`
	File string   `short:"f" type:"existingfile" help:"Read URLs from a file, one per line"`
	Name string   `help:"Batch name, used to resume (default derived from the URL list)"`
	Dir  string   `short:"d" help:"Output directory (default output_dir)"`
}

// ShellCmd is the "shell" subcommand.
type ShellCmd struct{}
