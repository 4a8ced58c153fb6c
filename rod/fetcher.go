// Package rod provides a coachdir.Fetcher backed by headless Chrome for
// profile pages that render their content with JavaScript.
package rod

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/coachdir"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds one navigation including page load.
const DefaultFetchTimeout = 10 * time.Second

// DefaultRecycleAfter is how many profile pages one Chrome process serves
// before it is replaced. Chrome's memory grows over a long directory run.
const DefaultRecycleAfter = 75

// Ensure Fetcher implements coachdir.Fetcher at compile time.
var _ coachdir.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered profile HTML using Chrome browser automation.
//
// Fetcher is safe for concurrent use.
type Fetcher struct {
	timeout      time.Duration
	recycleAfter int
	userAgent    string
	logger       *slog.Logger

	mu       sync.Mutex
	chrome   *chrome
	served   int
	recycles int
	closed   atomic.Bool
}

// chrome is one running browser process and the connection to it.
type chrome struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout for one page fetch.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRecycleAfter sets how many pages are fetched before Chrome is
// restarted. Defaults to DefaultRecycleAfter.
func WithRecycleAfter(n int) Option {
	return func(f *Fetcher) {
		f.recycleAfter = n
	}
}

// WithUserAgent overrides the browser User-Agent for every page.
// Defaults to coachdir.DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithLogger sets the logger that records browser restarts.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher launches headless Chrome and returns a Fetcher using it.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		recycleAfter: DefaultRecycleAfter,
		userAgent:    coachdir.DefaultUserAgent,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}

	c, err := startChrome()
	if err != nil {
		return nil, err
	}
	f.chrome = c
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	browser, err := f.acquire()
	if err != nil {
		return "", err
	}
	defer f.release()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("opening page: %w", err)
	}
	defer page.Close()

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", fmt.Errorf("setting user agent: %w", err)
		}
	}

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("waiting for %s: %w", url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	return html, nil
}

// acquire returns the browser for the next page, restarting Chrome first
// when the current process has served its quota.
func (f *Fetcher) acquire() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed.Load() || f.chrome == nil {
		return nil, coachdir.Errorf(coachdir.EINVALID, "fetcher is closed")
	}
	if f.recycleAfter > 0 && f.served >= f.recycleAfter {
		f.recycle()
	}
	return f.chrome.browser, nil
}

// release counts a finished page against the current process.
func (f *Fetcher) release() {
	f.mu.Lock()
	f.served++
	f.mu.Unlock()
}

// recycle replaces the running Chrome. The old process stays in use if a
// new one cannot be started. Must be called with mu held.
func (f *Fetcher) recycle() {
	next, err := startChrome()
	if err != nil {
		f.logger.Warn("browser restart failed", "served", f.served, "err", err)
		return
	}
	old := f.chrome
	f.chrome = next
	f.recycles++
	f.logger.Info("browser restarted", "served", f.served, "restarts", f.recycles)
	f.served = 0
	_ = old.stop()
}

// Recycles returns how many times Chrome has been restarted.
func (f *Fetcher) Recycles() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recycles
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.chrome == nil {
		return nil
	}
	err := f.chrome.stop()
	f.chrome = nil
	return err
}

// LauncherPID returns the process ID of the running Chrome launcher, or 0
// once the Fetcher is closed.
func (f *Fetcher) LauncherPID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.chrome == nil {
		return 0
	}
	return f.chrome.launcher.PID()
}

// startChrome launches headless Chrome with flags that keep background
// pages from being throttled and connects to it.
func startChrome() (*chrome, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &chrome{browser: browser, launcher: l}, nil
}

// stop closes the connection and kills the process.
func (c *chrome) stop() error {
	err := c.browser.Close()
	c.launcher.Kill()
	return err
}
