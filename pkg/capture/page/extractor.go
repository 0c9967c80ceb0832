// Package page extracts readable text from the page the user is currently
// viewing in Aura's companion browser window.
//
// Extraction is strictly best-effort: a single attempt per invocation, no
// retries, and every failure mode (no open page, restricted URL, evaluation
// error, timeout) reports "no context available" rather than an error, so a
// chat submission can never block or fail because of it.
package page

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gobwas/glob"
	"github.com/playwright-community/playwright-go"

	"github.com/Mokshitha4/Aura/pkg/logging"
)

// DefaultExtractTimeout bounds a single extraction attempt so a slow page
// cannot hang the submission path.
const DefaultExtractTimeout = 5 * time.Second

// pageHandle is the subset of playwright.Page the extractor reads.
// Narrowing the surface keeps extraction testable without a browser.
type pageHandle interface {
	URL() string
	Content() (string, error)
}

// Extractor manages the companion browser window and reads text from
// whichever page is current in it.
type Extractor struct {
	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
	pages   []pageHandle
	denied  []glob.Glob
	timeout time.Duration
	log     *logging.Logger
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithTimeout sets the per-attempt extraction timeout.
func WithTimeout(d time.Duration) ExtractorOption {
	return func(e *Extractor) {
		e.timeout = d
	}
}

// NewExtractor creates an extractor with the given restricted-URL patterns.
// Start must be called before Extract can return content.
func NewExtractor(restrictedURLs []string, opts ...ExtractorOption) (*Extractor, error) {
	logger, _ := logging.New("page-extractor")

	e := &Extractor{
		timeout: DefaultExtractTimeout,
		log:     logger,
	}
	for _, pattern := range restrictedURLs {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("page: invalid restricted URL pattern %q: %w", pattern, err)
		}
		e.denied = append(e.denied, g)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Start launches the companion browser window and opens its first page.
// Pages the user opens afterwards are tracked automatically.
func (e *Extractor) Start() error {
	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
	if err := playwright.Install(runOpts); err != nil {
		return fmt.Errorf("page: install playwright: %w", err)
	}
	pw, err := playwright.Run(runOpts)
	if err != nil {
		return fmt.Errorf("page: start playwright: %w", err)
	}

	headless := false
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: &headless,
	})
	if err != nil {
		pw.Stop()
		return fmt.Errorf("page: launch browser: %w", err)
	}

	browserCtx, err := browser.NewContext()
	if err != nil {
		browser.Close()
		pw.Stop()
		return fmt.Errorf("page: create browser context: %w", err)
	}

	browserCtx.OnPage(func(p playwright.Page) {
		e.trackPage(p)
	})

	first, err := browserCtx.NewPage()
	if err != nil {
		browser.Close()
		pw.Stop()
		return fmt.Errorf("page: open initial page: %w", err)
	}

	e.mu.Lock()
	e.pw = pw
	e.browser = browser
	e.mu.Unlock()
	e.trackPage(first)

	e.log.Infof("companion browser started")
	return nil
}

// trackPage records a page as the new current page.
func (e *Extractor) trackPage(p pageHandle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, existing := range e.pages {
		if existing == p {
			return
		}
	}
	e.pages = append(e.pages, p)
}

// currentPage returns the most recently opened page, or nil.
func (e *Extractor) currentPage() pageHandle {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.pages) == 0 {
		return nil
	}
	return e.pages[len(e.pages)-1]
}

// restricted reports whether extraction is disallowed for the URL.
func (e *Extractor) restricted(url string) bool {
	for _, g := range e.denied {
		if g.Match(url) {
			return true
		}
	}
	return false
}

// Extract reads the readable text of the current page. The second return
// value is false whenever no context is available; callers must treat that
// as "submit without context", never as a fatal condition.
func (e *Extractor) Extract(ctx context.Context) (string, bool) {
	p := e.currentPage()
	if p == nil {
		e.log.Debugf("no current page, skipping context")
		return "", false
	}

	url := p.URL()
	if e.restricted(url) {
		e.log.Debugf("restricted page %q, skipping context", url)
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	type result struct {
		html string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		html, err := p.Content()
		ch <- result{html, err}
	}()

	var res result
	select {
	case <-ctx.Done():
		e.log.Warnf("extraction timed out on %q", url)
		return "", false
	case res = <-ch:
	}
	if res.err != nil {
		e.log.Warnf("extraction failed on %q: %v", url, res.err)
		return "", false
	}

	text, err := readableText(res.html)
	if err != nil {
		e.log.Warnf("could not parse page content from %q: %v", url, err)
		return "", false
	}
	if text == "" {
		return "", false
	}
	return text, true
}

// Close shuts down the companion browser.
func (e *Extractor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var err error
	if e.browser != nil {
		err = e.browser.Close()
		e.browser = nil
	}
	if e.pw != nil {
		if stopErr := e.pw.Stop(); err == nil {
			err = stopErr
		}
		e.pw = nil
	}
	e.pages = nil
	return err
}
