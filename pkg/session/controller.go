// Package session owns the conversation lifecycle between the user, the page
// context extractor, and the remote reasoning service.
//
// A Controller is created on session start and discarded on session end; it
// is the single owner of the in-memory history for its lifetime. Submissions
// are strictly sequential; a second Submit while one is in flight returns
// ErrBusy, mirroring the disabled input controls in the UI.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Mokshitha4/Aura/pkg/history"
	"github.com/Mokshitha4/Aura/pkg/logging"
	"github.com/Mokshitha4/Aura/pkg/types"
)

// ErrEmptyInput is returned when a submission is empty after trimming.
// No turn is created and no state changes.
var ErrEmptyInput = errors.New("session: empty input")

// ErrBusy is returned when a submission is already in flight.
var ErrBusy = errors.New("session: a submission is already in flight")

// State is the controller's lifecycle phase.
type State int

const (
	// StateIdle is the initial state, before history has been loaded.
	StateIdle State = iota
	// StateReady accepts submissions.
	StateReady
	// StatePending has a dispatch in flight; input is disabled.
	StatePending
)

// String returns a short name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReady:
		return "ready"
	case StatePending:
		return "pending"
	default:
		return "unknown"
	}
}

// Event is a snapshot of the controller's observable state, emitted after
// every change. The Turns slice is a copy and safe to retain.
type Event struct {
	State        State
	Turns        []types.Turn
	PromptTokens int
}

// Dispatcher is the dispatch-client surface the controller needs.
type Dispatcher interface {
	Send(ctx context.Context, text string) (string, error)
}

// ContextExtractor supplies page content for a submission. The boolean is
// false when no context is available, which is never an error.
type ContextExtractor interface {
	Extract(ctx context.Context) (string, bool)
}

// Controller drives the Idle → Ready → Pending → Ready state machine.
type Controller struct {
	store      history.Store
	dispatcher Dispatcher
	extractor  ContextExtractor
	tokens     *TokenCounter
	log        *logging.Logger

	includeContext bool
	contextBudget  int

	mu           sync.Mutex
	state        State
	turns        []types.Turn
	promptTokens int

	events chan Event
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithContextExtractor attaches a page content source. Without one,
// submissions always go out as raw text.
func WithContextExtractor(e ContextExtractor) ControllerOption {
	return func(c *Controller) {
		c.extractor = e
	}
}

// WithIncludeContext toggles page-context inclusion.
func WithIncludeContext(include bool) ControllerOption {
	return func(c *Controller) {
		c.includeContext = include
	}
}

// WithContextBudget sets the page-content character budget.
func WithContextBudget(budget int) ControllerOption {
	return func(c *Controller) {
		c.contextBudget = budget
	}
}

// WithTokenCounter enables prompt token accounting.
func WithTokenCounter(tc *TokenCounter) ControllerOption {
	return func(c *Controller) {
		c.tokens = tc
	}
}

// NewController creates a controller in StateIdle. Call Load to bring it to
// StateReady.
func NewController(store history.Store, dispatcher Dispatcher, opts ...ControllerOption) *Controller {
	logger, _ := logging.New("session")

	c := &Controller{
		store:          store,
		dispatcher:     dispatcher,
		log:            logger,
		includeContext: true,
		contextBudget:  DefaultContextBudget,
		state:          StateIdle,
		events:         make(chan Event, 64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Events returns the stream of state snapshots. The channel is buffered; if
// a consumer falls far behind, intermediate snapshots are dropped in favor
// of later ones.
func (c *Controller) Events() <-chan Event { return c.events }

// Load reads persisted history and transitions to StateReady. A failing
// store degrades to an empty in-memory session rather than blocking chat:
// the error is logged, never surfaced.
func (c *Controller) Load() {
	turns, err := c.store.Load()
	if err != nil {
		c.log.Errorf("history load failed, starting empty: %v", err)
		turns = []types.Turn{}
	}

	c.mu.Lock()
	c.turns = turns
	c.state = StateReady
	c.mu.Unlock()
	c.emit()
}

// State returns the current lifecycle phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Turns returns a snapshot of the rendered history, including any pending
// placeholder.
func (c *Controller) Turns() []types.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]types.Turn(nil), c.turns...)
}

// PromptTokens returns the token count of the last assembled prompt.
func (c *Controller) PromptTokens() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.promptTokens
}

// Submit runs one full submission cycle and blocks until the outcome is
// rendered. It returns ErrEmptyInput or ErrBusy for rejected submissions;
// dispatch failures are not returned; they surface as an agent-sender turn
// carrying the failure message.
//
// Whatever the outcome, the controller is back in StateReady when Submit
// returns, so input controls can never remain disabled.
func (c *Controller) Submit(ctx context.Context, raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ErrEmptyInput
	}

	c.mu.Lock()
	if c.state != StateReady {
		c.mu.Unlock()
		return ErrBusy
	}
	c.state = StatePending

	// The user turn is committed and persisted before any network activity,
	// so it survives even if the process dies mid-dispatch.
	c.turns = append(c.turns, types.NewUserTurn(trimmed))
	c.persistLocked()
	c.turns = append(c.turns, types.NewPendingTurn())
	c.mu.Unlock()
	c.emit()

	defer func() {
		c.mu.Lock()
		c.removePendingLocked()
		c.state = StateReady
		c.mu.Unlock()
		c.emit()
	}()

	payload := c.assemble(ctx, trimmed)

	count := c.tokens.Count(payload)
	c.mu.Lock()
	c.promptTokens = count
	c.mu.Unlock()

	reply, err := c.dispatcher.Send(ctx, payload)

	c.mu.Lock()
	c.removePendingLocked()
	if err != nil {
		c.log.Warnf("dispatch failed: %v", err)
		// Rendered, never persisted: the store must not record a reply
		// that never happened.
		c.turns = append(c.turns, types.NewErrorTurn(err.Error()))
	} else {
		c.turns = append(c.turns, types.NewAgentTurn(reply))
		c.persistLocked()
	}
	c.mu.Unlock()
	c.emit()

	return nil
}

// assemble builds the dispatch payload, attaching page context when enabled
// and available. Extraction failure falls back to the raw text; a
// submission never blocks or fails because context could not be read.
func (c *Controller) assemble(ctx context.Context, question string) string {
	req := types.CaptureRequest{RawText: question}
	if c.includeContext && c.extractor != nil {
		if content, ok := c.extractor.Extract(ctx); ok {
			req.PageContext = content
		} else {
			c.log.Debugf("no page context available, sending raw text")
		}
	}
	return BuildPrompt(req, c.contextBudget)
}

// persistLocked saves the current history. Storage failure degrades to a
// session-only history: logged, not surfaced, prior persisted turns intact.
func (c *Controller) persistLocked() {
	if err := c.store.Save(c.turns); err != nil {
		c.log.Errorf("history save failed, continuing in memory: %v", err)
	}
}

// removePendingLocked drops the pending placeholder if present. Idempotent,
// so the deferred cleanup and the outcome path cannot double-remove or
// leave a stale placeholder behind.
func (c *Controller) removePendingLocked() {
	filtered := c.turns[:0]
	for _, t := range c.turns {
		if t.Sender != types.SenderPending {
			filtered = append(filtered, t)
		}
	}
	c.turns = filtered
}

// emit publishes a snapshot, dropping the oldest queued snapshot when the
// buffer is full so emitters never block.
func (c *Controller) emit() {
	c.mu.Lock()
	ev := Event{
		State:        c.state,
		Turns:        append([]types.Turn(nil), c.turns...),
		PromptTokens: c.promptTokens,
	}
	c.mu.Unlock()

	for {
		select {
		case c.events <- ev:
			return
		default:
			select {
			case <-c.events:
			default:
			}
		}
	}
}
