package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// waitForMetrics creates a command that waits for the next record from the sink
func waitForMetrics(sink *Sink) tea.Cmd {
	return func() tea.Msg {
		select {
		case m := <-sink.metrics:
			return metricsMsg{metrics: m}
		case <-sink.done:
			return nil
		}
	}
}
