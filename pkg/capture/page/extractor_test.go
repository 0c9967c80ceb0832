package page

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakePage struct {
	url     string
	html    string
	err     error
	delay   time.Duration
	visited bool
}

func (f *fakePage) URL() string { return f.url }

func (f *fakePage) Content() (string, error) {
	f.visited = true
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.html, f.err
}

func newTestExtractor(t *testing.T, patterns []string, opts ...ExtractorOption) *Extractor {
	t.Helper()
	t.Setenv("AURA_LOG_DIR", t.TempDir())
	e, err := NewExtractor(patterns, opts...)
	if err != nil {
		t.Fatalf("NewExtractor failed: %v", err)
	}
	return e
}

func TestExtractReadsCurrentPage(t *testing.T) {
	e := newTestExtractor(t, nil)
	e.trackPage(&fakePage{url: "https://example.com/old", html: "<p>old</p>"})
	e.trackPage(&fakePage{url: "https://example.com/new", html: "<p>hello page</p>"})

	text, ok := e.Extract(context.Background())
	if !ok {
		t.Fatal("expected context to be available")
	}
	if text != "hello page" {
		t.Errorf("text = %q, want %q", text, "hello page")
	}
}

func TestExtractNoPage(t *testing.T) {
	e := newTestExtractor(t, nil)

	if _, ok := e.Extract(context.Background()); ok {
		t.Error("expected no context when no page is open")
	}
}

func TestExtractRestrictedURL(t *testing.T) {
	e := newTestExtractor(t, []string{"chrome://*", "about:*"})
	page := &fakePage{url: "chrome://settings", html: "<p>internal</p>"}
	e.trackPage(page)

	if _, ok := e.Extract(context.Background()); ok {
		t.Error("expected no context for a restricted page")
	}
	if page.visited {
		t.Error("restricted pages must not be read at all")
	}
}

func TestExtractPageError(t *testing.T) {
	e := newTestExtractor(t, nil)
	e.trackPage(&fakePage{url: "https://example.com", err: errors.New("page crashed")})

	if _, ok := e.Extract(context.Background()); ok {
		t.Error("expected no context when page evaluation fails")
	}
}

func TestExtractTimeout(t *testing.T) {
	e := newTestExtractor(t, nil, WithTimeout(20*time.Millisecond))
	e.trackPage(&fakePage{url: "https://example.com", html: "<p>slow</p>", delay: 300 * time.Millisecond})

	start := time.Now()
	if _, ok := e.Extract(context.Background()); ok {
		t.Error("expected no context when extraction times out")
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Errorf("extraction should give up quickly, took %v", elapsed)
	}
}

func TestExtractEmptyPage(t *testing.T) {
	e := newTestExtractor(t, nil)
	e.trackPage(&fakePage{url: "https://example.com", html: "<html><body></body></html>"})

	if _, ok := e.Extract(context.Background()); ok {
		t.Error("expected no context for an empty page")
	}
}

func TestNewExtractorRejectsBadPattern(t *testing.T) {
	t.Setenv("AURA_LOG_DIR", t.TempDir())
	if _, err := NewExtractor([]string{"[unclosed"}); err == nil {
		t.Error("expected error for invalid glob pattern")
	}
}
