// Package tui provides the terminal interface for the Aura companion,
// rendering the conversation and forwarding questions to the session
// controller.
//
// The package is split into multiple files for better organization:
// - executor.go: Executor implementation and program lifecycle
// - model.go: Core model structure and state
// - update.go: Bubble Tea Update function and message handling
// - view.go: Bubble Tea View function and rendering
// - highlight.go: Code block highlighting for agent replies
// - styles.go: Color schemes and styling
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mokshitha4/Aura/pkg/session"
)

// Executor runs the interactive chat interface on top of a session
// controller.
type Executor struct {
	controller *session.Controller
	endpoint   string
	program    *tea.Program
}

// NewExecutor creates a TUI executor for the given controller. The endpoint
// is shown in the status bar so the user can tell where questions go.
func NewExecutor(controller *session.Controller, endpoint string) *Executor {
	return &Executor{
		controller: controller,
		endpoint:   endpoint,
	}
}

// Run starts the interface and blocks until the user exits or the context
// is canceled.
func (e *Executor) Run(ctx context.Context) error {
	m := initialModel(e.controller, e.endpoint)
	e.program = tea.NewProgram(&m, tea.WithAltScreen(), tea.WithContext(ctx))

	// Forward controller events into the Bubble Tea loop so optimistic
	// turns and state changes render as they happen.
	go func() {
		for ev := range e.controller.Events() {
			e.program.Send(sessionEventMsg{event: ev})
		}
	}()

	if _, err := e.program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("tui exited: %w", err)
	}
	return nil
}
