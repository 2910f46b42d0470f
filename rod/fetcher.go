// Package rod fetches rendered pages with a headless Chrome driven by go-rod.
package rod

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/schemadoc"
)

var _ schemadoc.Fetcher = (*Fetcher)(nil)

// Default timeouts for one page.
const (
	DefaultFetchTimeout = 60 * time.Second
	DefaultWaitTimeout  = 10 * time.Second
)

// Fetcher retrieves rendered HTML using a recycled Chrome browser.
type Fetcher struct {
	manager      *BrowserManager
	managerOpts  []ManagerOption
	fetchTimeout time.Duration
	waitSelector string
	waitTimeout  time.Duration
	closed       atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds navigation and load of one page.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithWaitSelector makes Fetch wait up to d for an element matching selector
// after the page loads. The page is returned as-is when nothing matches in
// time.
func WithWaitSelector(selector string, d time.Duration) Option {
	return func(f *Fetcher) {
		f.waitSelector = selector
		f.waitTimeout = d
	}
}

// WithBrowser passes options to the underlying BrowserManager.
func WithBrowser(opts ...ManagerOption) Option {
	return func(f *Fetcher) {
		f.managerOpts = append(f.managerOpts, opts...)
	}
}

// NewFetcher launches Chrome. Close must be called when the Fetcher is no
// longer needed.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		fetchTimeout: DefaultFetchTimeout,
		waitTimeout:  DefaultWaitTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(f.managerOpts...)
	if err != nil {
		return nil, err
	}
	f.manager = manager
	return f, nil
}

// Fetch navigates to url and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", schemadoc.Errorf(schemadoc.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.manager.OpenPage()
	if err != nil {
		return "", err
	}
	defer page.Close()

	if f.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.fetchTimeout)
		defer cancel()
	}
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("loading %s: %w", url, err)
	}

	if f.waitSelector != "" {
		// A missing element is left for the caller to judge from the HTML.
		waiting := page.Timeout(f.waitTimeout)
		_, _ = waiting.Element(f.waitSelector)
		waiting.CancelTimeout()
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	return html, nil
}

// Close shuts the browser down. It is safe to call more than once.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
