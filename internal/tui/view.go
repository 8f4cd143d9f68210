package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// View renders the TUI interface
func (m Model) View() string {
	body := RenderStats(m.container, m.current, m.cpuHistory, m.memoryHistory)

	status := fmt.Sprintf("ticks: %d", m.ticks)
	if m.current != nil && !m.current.Timestamp.IsZero() {
		status += " | last sample: " + m.current.Timestamp.Local().Format("15:04:05")
	}

	var footer string
	switch {
	case m.err != nil:
		footer = errorStyle.Render(fmt.Sprintf("Stats error: %v", m.err))
	case m.finished:
		footer = helpStyle.Render("Stream ended")
	default:
		footer = helpStyle.Render(status + " | q: quit")
	}

	panel := panelStyle
	if m.width > 4 {
		panel = panel.Width(m.width - 4)
	}
	return lipgloss.JoinVertical(lipgloss.Left, panel.Render(body), footer)
}
