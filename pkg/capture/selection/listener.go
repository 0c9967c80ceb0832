// Package selection forwards user-selected text to the reasoning service as
// background captures.
//
// A capture is fire-and-forget: it bypasses the chat session entirely: no
// rendered turn, no pending placeholder, no history mutation. Its
// outcome is only logged. The chat UI and this listener share nothing but
// the dispatch client contract.
package selection

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/Mokshitha4/Aura/pkg/logging"
)

// DefaultPollInterval is how often the watcher samples the clipboard.
const DefaultPollInterval = 500 * time.Millisecond

// Dispatcher is the dispatch-client surface the listener needs.
type Dispatcher interface {
	Send(ctx context.Context, text string) (string, error)
}

// Listener watches for selected text and forwards it verbatim.
type Listener struct {
	dispatcher Dispatcher
	interval   time.Duration
	log        *logging.Logger

	read func() (string, error) // clipboard read, swappable for tests
}

// ListenerOption configures a Listener.
type ListenerOption func(*Listener)

// WithPollInterval sets the clipboard sampling interval.
func WithPollInterval(d time.Duration) ListenerOption {
	return func(l *Listener) {
		l.interval = d
	}
}

// NewListener creates a listener that dispatches through d.
func NewListener(d Dispatcher, opts ...ListenerOption) *Listener {
	logger, _ := logging.New("selection-capture")
	l := &Listener{
		dispatcher: d,
		interval:   DefaultPollInterval,
		log:        logger,
		read:       clipboard.ReadAll,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Capture forwards one piece of selected text. The text is sent verbatim:
// no context augmentation and no truncation. Failures are logged, never
// returned, since no UI element exists to surface them.
func (l *Listener) Capture(ctx context.Context, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	if _, err := l.dispatcher.Send(ctx, text); err != nil {
		l.log.Errorf("capture dispatch failed: %v", err)
		return
	}
	l.log.Infof("captured %d characters", len(text))
}

// Run watches the clipboard until ctx is cancelled, capturing each new
// non-empty value. The value present at startup is ignored so that stale
// clipboard content is never sent.
func (l *Listener) Run(ctx context.Context) {
	last, err := l.read()
	if err != nil {
		// Keep watching; the clipboard may become readable later.
		l.log.Warnf("initial clipboard read failed: %v", err)
	}

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.log.Infof("selection watcher started")
	for {
		select {
		case <-ctx.Done():
			l.log.Infof("selection watcher stopped")
			return
		case <-ticker.C:
			current, err := l.read()
			if err != nil {
				l.log.Debugf("clipboard read failed: %v", err)
				continue
			}
			if current == last {
				continue
			}
			last = current
			l.Capture(ctx, current)
		}
	}
}
