package selection

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type recordingDispatcher struct {
	mu    sync.Mutex
	sent  []string
	err   error
	reply string
}

func (d *recordingDispatcher) Send(_ context.Context, text string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, text)
	return d.reply, d.err
}

func (d *recordingDispatcher) sentTexts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.sent...)
}

func newTestListener(t *testing.T, d Dispatcher, opts ...ListenerOption) *Listener {
	t.Helper()
	t.Setenv("AURA_LOG_DIR", t.TempDir())
	return NewListener(d, opts...)
}

func TestCaptureSendsVerbatim(t *testing.T) {
	d := &recordingDispatcher{reply: "noted"}
	l := newTestListener(t, d)

	l.Capture(context.Background(), "interesting fact")

	sent := d.sentTexts()
	if len(sent) != 1 {
		t.Fatalf("expected 1 dispatch, got %d", len(sent))
	}
	if sent[0] != "interesting fact" {
		t.Errorf("sent = %q, want verbatim %q", sent[0], "interesting fact")
	}
}

func TestCaptureSkipsEmpty(t *testing.T) {
	d := &recordingDispatcher{}
	l := newTestListener(t, d)

	l.Capture(context.Background(), "   \n\t ")

	if len(d.sentTexts()) != 0 {
		t.Error("whitespace-only selections must not be dispatched")
	}
}

func TestCaptureFailureIsSwallowed(t *testing.T) {
	d := &recordingDispatcher{err: errors.New("service down")}
	l := newTestListener(t, d)

	// Must not panic or surface anything; failure handling is log-only.
	l.Capture(context.Background(), "interesting fact")

	if len(d.sentTexts()) != 1 {
		t.Error("dispatch should still have been attempted")
	}
}

func TestRunIgnoresInitialClipboardValue(t *testing.T) {
	d := &recordingDispatcher{}
	l := newTestListener(t, d, WithPollInterval(5*time.Millisecond))

	var mu sync.Mutex
	value := "stale content"
	l.read = func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		return value, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	if len(d.sentTexts()) != 0 {
		t.Error("startup clipboard content must not be captured")
	}

	mu.Lock()
	value = "fresh selection"
	mu.Unlock()

	deadline := time.After(time.Second)
	for len(d.sentTexts()) == 0 {
		select {
		case <-deadline:
			t.Fatal("new clipboard content was never captured")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done

	sent := d.sentTexts()
	if sent[0] != "fresh selection" {
		t.Errorf("captured %q, want %q", sent[0], "fresh selection")
	}
}
