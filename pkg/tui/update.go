package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mokshitha4/Aura/pkg/session"
)

// Init starts the spinner and textarea blink.
func (m *model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// Update handles all state updates for the chat interface.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	var spinnerCmd tea.Cmd
	m.spinner, spinnerCmd = m.spinner.Update(msg)

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if cmd := m.submit(); cmd != nil {
				return m, tea.Batch(tiCmd, vpCmd, spinnerCmd, cmd)
			}
		}

	case sessionEventMsg:
		m.turns = msg.event.Turns
		m.state = msg.event.State
		if msg.event.PromptTokens > 0 {
			m.promptTokens = msg.event.PromptTokens
		}
		if m.state == session.StatePending {
			m.textarea.Blur()
		} else {
			m.textarea.Focus()
		}
		m.refreshViewport()

	case submitDoneMsg:
		// Dispatch failures surface as transient turns through the
		// event channel, so only local validation errors land here.
		if msg.err != nil && !errors.Is(msg.err, session.ErrEmptyInput) && !errors.Is(msg.err, session.ErrBusy) {
			m.refreshViewport()
		}
	}

	return m, tea.Batch(tiCmd, vpCmd, spinnerCmd)
}

// submit sends the current input to the controller in the background.
// Returns nil when there is nothing to send.
func (m *model) submit() tea.Cmd {
	if m.state == session.StatePending {
		return nil
	}
	text := strings.TrimSpace(m.textarea.Value())
	if text == "" {
		return nil
	}
	m.textarea.Reset()

	controller := m.controller
	return func() tea.Msg {
		err := controller.Submit(context.Background(), text)
		return submitDoneMsg{err: err}
	}
}

// layout recomputes component sizes from the window dimensions.
func (m *model) layout() {
	headerHeight := len(strings.Split(m.headerView(), "\n"))
	inputHeight := m.textarea.Height() + 2
	statusHeight := 1
	loadingHeight := 1

	viewportHeight := m.height - headerHeight - inputHeight - statusHeight - loadingHeight
	if viewportHeight < 3 {
		viewportHeight = 3
	}

	if m.viewport.Width == 0 {
		m.viewport = newViewport(m.width, viewportHeight)
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = viewportHeight
	}
	m.textarea.SetWidth(m.width - 6)
}

// refreshViewport re-renders the conversation and scrolls to the bottom.
func (m *model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTurns())
	m.viewport.GotoBottom()
}
