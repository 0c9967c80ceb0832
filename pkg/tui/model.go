package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/Mokshitha4/Aura/pkg/session"
	"github.com/Mokshitha4/Aura/pkg/types"
)

// model holds all state for the chat interface.
type model struct {
	// Bubble Tea components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// Session integration
	controller *session.Controller
	endpoint   string

	// Conversation state
	turns        []types.Turn
	state        session.State
	promptTokens int

	// Window dimensions
	width  int
	height int
	ready  bool
}

// sessionEventMsg carries a controller event into the Bubble Tea loop.
type sessionEventMsg struct {
	event session.Event
}

// submitDoneMsg signals that a Submit call has returned.
type submitDoneMsg struct {
	err error
}

func initialModel(controller *session.Controller, endpoint string) model {
	ta := textarea.New()
	ta.Placeholder = "Ask Aura about this page..."
	ta.Focus()
	ta.Prompt = "┃ "
	ta.CharLimit = 0
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return model{
		textarea:   ta,
		spinner:    sp,
		controller: controller,
		endpoint:   endpoint,
		turns:      controller.Turns(),
		state:      session.StateReady,
	}
}
