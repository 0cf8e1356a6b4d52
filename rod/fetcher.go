// Package rod provides a firescrape.Fetcher that renders pages in headless
// Chrome, for sites that build their content with JavaScript.
package rod

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fwojciec/firescrape"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements firescrape.Fetcher at compile time.
var _ firescrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
type Fetcher struct {
	browser   *rod.Browser
	launcher  *launcher.Launcher
	timeout   time.Duration
	userAgent string

	mu     sync.Mutex
	closed bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout for a single page load.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the browser's user agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns EDEPENDENCY if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, firescrape.Errorf(firescrape.EDEPENDENCY, "cannot launch browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, firescrape.Errorf(firescrape.EDEPENDENCY, "cannot connect to browser: %v", err)
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML, including
// open shadow roots.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f.mu.Lock()
	closed := f.closed
	f.mu.Unlock()
	if closed {
		return "", firescrape.Errorf(firescrape.EINVALID, "fetcher is closed")
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", classify(ctx, err, url)
	}
	defer page.Close()

	page = page.Context(ctx)

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", classify(ctx, err, url)
		}
	}
	if err := page.Navigate(url); err != nil {
		return "", classify(ctx, err, url)
	}
	if err := page.WaitLoad(); err != nil {
		return "", classify(ctx, err, url)
	}

	html, err := page.Eval(serializeJS)
	if err != nil {
		return "", classify(ctx, err, url)
	}
	return html.Value.Str(), nil
}

// serializeJS returns the document markup with open shadow roots inlined.
const serializeJS = `() => {
  const render = (node) => {
    if (node.nodeType !== Node.ELEMENT_NODE) return node.outerHTML ?? node.textContent;
    const clone = node.cloneNode(false);
    const children = node.shadowRoot ? [...node.shadowRoot.childNodes, ...node.childNodes] : [...node.childNodes];
    let inner = '';
    for (const child of children) {
      if (child.nodeType === Node.ELEMENT_NODE) inner += render(child);
      else if (child.nodeType === Node.TEXT_NODE) inner += child.textContent.replace(/&/g, '&amp;').replace(/</g, '&lt;');
    }
    clone.innerHTML = inner;
    return clone.outerHTML;
  };
  return '<!DOCTYPE html>' + render(document.documentElement);
}`

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true

	err := f.browser.Close()
	f.launcher.Kill()
	return err
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.launcher.PID()
}

func classify(ctx context.Context, err error, url string) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return firescrape.Errorf(firescrape.ETIMEOUT, "timed out rendering %s", url)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return firescrape.Errorf(firescrape.ECONNECTION, "cannot render %s: %v", url, err)
}
