package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mokshitha4/Aura/pkg/session"
	"github.com/Mokshitha4/Aura/pkg/types"
)

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.MouseWheelEnabled = true
	return vp
}

// View renders the entire interface.
func (m *model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	sections := []string{
		m.headerView(),
		m.tipsView(),
		m.viewport.View(),
	}
	if indicator := m.loadingView(); indicator != "" {
		sections = append(sections, indicator)
	}
	sections = append(sections, m.inputView(), m.statusView())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// headerView renders the Aura ASCII art header.
func (m *model) headerView() string {
	return headerStyle.Render(`
	 █████╗ ██╗   ██╗██████╗  █████╗
	██╔══██╗██║   ██║██╔══██╗██╔══██╗
	███████║██║   ██║██████╔╝███████║
	██╔══██║██║   ██║██╔══██╗██╔══██║
	██║  ██║╚██████╔╝██║  ██║██║  ██║
	╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝`)
}

// tipsView renders usage hints under the header.
func (m *model) tipsView() string {
	return tipsStyle.Render(`  Tips: Ask about the page you are viewing • Enter to send • Ctrl+C to exit`)
}

// loadingView renders the spinner while a question is in flight.
func (m *model) loadingView() string {
	if m.state != session.StatePending {
		return ""
	}
	return loadingStyle.Width(m.width - 4).Render(fmt.Sprintf("%s Waiting for Aura...", m.spinner.View()))
}

// inputView renders the question input box.
func (m *model) inputView() string {
	return inputBoxStyle.Width(m.width - 4).Render(m.textarea.View())
}

// statusView renders the bottom bar with endpoint and token usage.
func (m *model) statusView() string {
	left := fmt.Sprintf("Aura @ %s", m.endpoint)
	right := ""
	if m.promptTokens > 0 {
		right = fmt.Sprintf("◆ Prompt: %s tokens", formatTokenCount(m.promptTokens))
	}

	padding := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 2 {
		padding = 2
	}
	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", padding) + right)
}

// renderTurns renders the conversation transcript for the viewport.
func (m *model) renderTurns() string {
	if len(m.turns) == 0 {
		return emptyStyle.Render("  Ask a question to get started.")
	}

	wrapWidth := m.width - 4
	if wrapWidth <= 0 {
		wrapWidth = 80
	}

	var out strings.Builder
	for i, turn := range m.turns {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(renderTurn(turn, wrapWidth))
		out.WriteString("\n")
	}
	return out.String()
}

func renderTurn(turn types.Turn, width int) string {
	switch turn.Sender {
	case types.SenderUser:
		return userStyle.Render("❯ ") + wordWrap(turn.Text, width)
	case types.SenderPending:
		label := turn.Text
		if label == "" {
			label = "thinking..."
		}
		return pendingStyle.Render("· " + label)
	case types.SenderAgent:
		if turn.Transient {
			return errorStyle.Render("✗ " + wordWrap(turn.Text, width))
		}
		return agentStyle.Render("◆ ") + wordWrap(highlightCodeBlocks(turn.Text), width)
	default:
		return wordWrap(turn.Text, width)
	}
}

// formatTokenCount formats a token count with K/M suffixes for readability.
func formatTokenCount(count int) string {
	if count >= 1000000 {
		return fmt.Sprintf("%.1fM", float64(count)/1000000)
	}
	if count >= 1000 {
		return fmt.Sprintf("%.1fK", float64(count)/1000)
	}
	return fmt.Sprintf("%d", count)
}

// wordWrap wraps text to fit within the given width while preserving
// existing line breaks. Lines inside code blocks are left untouched.
func wordWrap(text string, width int) string {
	if width <= 0 {
		width = 80
	}

	var result strings.Builder
	first := true
	for _, line := range strings.Split(text, "\n") {
		if !first {
			result.WriteString("\n")
		}
		first = false

		if len(line) <= width || strings.HasPrefix(line, "  ") {
			result.WriteString(line)
			continue
		}

		lineLen := 0
		for j, word := range strings.Fields(line) {
			if j > 0 {
				if lineLen+1+len(word) > width {
					result.WriteString("\n")
					lineLen = 0
				} else {
					result.WriteString(" ")
					lineLen++
				}
			}
			result.WriteString(word)
			lineLen += len(word)
		}
	}
	return result.String()
}
