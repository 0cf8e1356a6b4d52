package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/firescrape"
	"github.com/fwojciec/firescrape/config"
	"github.com/fwojciec/firescrape/ddg"
	"github.com/fwojciec/firescrape/fetch"
	"github.com/fwojciec/firescrape/firecrawl"
	"github.com/fwojciec/firescrape/fs"
	"github.com/fwojciec/firescrape/goquery"
	"github.com/fwojciec/firescrape/htmltomarkdown"
	fshttp "github.com/fwojciec/firescrape/http"
	"github.com/fwojciec/firescrape/readability"
	"github.com/fwojciec/firescrape/rod"
	"github.com/fwojciec/firescrape/search"
	fsslog "github.com/fwojciec/firescrape/slog"
	"github.com/fwojciec/firescrape/trafilatura"
	"github.com/mattn/go-isatty"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx))
}

func run(ctx context.Context) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n\n%s", r, debug.Stack())
			code = 1
		}
	}()

	m := NewMain()
	defer m.Close()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Interrupted.")
			return 0
		}
		fmt.Fprintln(os.Stderr, "error:", errorText(err))
		return 1
	}
	return 0
}

// Main represents the program.
type Main struct {
	// ConfigPath overrides the --config flag. Set before calling Run().
	ConfigPath string

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var errs []error
	for _, c := range m.closers {
		errs = append(errs, c.Close())
	}
	m.closers = nil
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments. With no arguments the
// interactive shell starts.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("firescrape"),
		kong.Description("Scrape, crawl, search and map the web as Markdown. Uses the Firecrawl API when a key is configured and local extraction otherwise."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		args = []string{"shell"}
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	path := cli.Config
	if m.ConfigPath != "" {
		path = m.ConfigPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if cli.APIKey != "" {
		cfg.APIKey = cli.APIKey
	}
	if cli.Verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	deps.Config = cfg
	deps.Logger = newLogger(cfg.Log, stderr)
	deps.Spinner = isTerminal(stderr)
	if err := m.wire(deps); err != nil {
		return err
	}
	deps.SetAPIKey = func(key string) error {
		if err := m.Close(); err != nil {
			deps.Logger.Warn("closing fetchers", "err", err)
		}
		cfg.APIKey = key
		return m.wire(deps)
	}

	return kongCtx.Run(deps)
}

// wire builds the services for deps.Config. The hosted service is only
// built when a credential is configured.
func (m *Main) wire(deps *Dependencies) error {
	cfg := deps.Config
	logger := deps.Logger
	timeout := config.Duration(cfg.Fetch.Timeout)

	var pages firescrape.Fetcher = fshttp.NewFetcher(
		fshttp.WithTimeout(timeout),
		fshttp.WithRetries(cfg.Fetch.Retries, config.Duration(cfg.Fetch.RetryDelay)),
		fshttp.WithUserAgent(cfg.Fetch.UserAgent),
		fshttp.WithLogger(logger),
	)
	engine := ddg.NewEngine(fsslog.NewLoggingFetcher(pages, logger))

	if cfg.Fetch.Render {
		opts := []rod.Option{rod.WithFetchTimeout(timeout)}
		if cfg.Fetch.UserAgent != "" {
			opts = append(opts, rod.WithUserAgent(cfg.Fetch.UserAgent))
		}
		browser, err := rod.NewFetcher(opts...)
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed, or set fetch.render = false")
			return err
		}
		m.closers = append(m.closers, browser)
		pages = browser
	}
	pages = fsslog.NewLoggingFetcher(pages, logger)

	var extractor firescrape.Extractor = readability.NewExtractor()
	if cfg.Fetch.Extractor == config.ExtractorTrafilatura {
		extractor = trafilatura.NewExtractor()
	}
	local := &fetch.LocalStrategy{
		Fetcher:   pages,
		Extractor: extractor,
		Fallback:  goquery.NewBoilerplateExtractor(),
		Converter: htmltomarkdown.NewConverter(),
		Meta:      goquery.NewMetaReader(),
	}

	var client firecrawl.Client
	var hosted firescrape.ContentFetcher
	deps.Hosted = nil
	if cfg.HasCredential() {
		var opts []firecrawl.Option
		if cfg.APIURL != "" {
			opts = append(opts, firecrawl.WithBaseURL(cfg.APIURL))
		}
		client = firecrawl.NewClient(cfg.APIKey, opts...)
		deps.Hosted = fsslog.NewLoggingHostedService(firecrawl.NewService(client), logger)
		hosted = fetch.NewHostedStrategy(deps.Hosted)
	}

	deps.Pages = pages
	deps.Content = fsslog.NewLoggingContentFetcher(fetch.NewDispatcher(hosted, local, logger), logger)
	deps.Sitemaps = fsslog.NewLoggingSitemapService(fshttp.NewSitemapService(nil), logger)
	deps.NewWriter = func(dir string) firescrape.ResultWriter {
		return fs.NewWriter(dir)
	}
	deps.NewStore = func(dir string) firescrape.CheckpointStore {
		return fs.NewCheckpointStore(dir)
	}
	deps.NewSearcher = func(content bool) firescrape.Searcher {
		var hostedSearch firescrape.Searcher
		if client != nil {
			hostedSearch = firecrawl.NewService(client, firecrawl.WithSearchContent(content))
		}
		provider := search.NewProvider(hostedSearch, engine,
			search.WithAttempts(cfg.Search.Attempts, config.Duration(cfg.Search.RetryDelay)),
			search.WithMinCandidates(cfg.Search.MinCandidates),
			search.WithLogger(logger),
		)
		return fsslog.NewLoggingSearcher(provider, logger)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// errorText prefers the human message of a coded error.
func errorText(err error) string {
	var e *firescrape.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
