package tui

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancel()
			m.sink.Close()
			return m, tea.Quit
		}

	case metricsMsg:
		metrics := msg.metrics
		m.current = &metrics
		m.ticks++

		// Non-finite CPU means no signal this tick; keep it out of the graph
		cpu := metrics.CPUPercent
		if math.IsNaN(cpu) || math.IsInf(cpu, 0) {
			cpu = 0
		}
		m.cpuHistory = pushBounded(m.cpuHistory, cpu, m.maxDataPoints)
		m.memoryHistory = pushBounded(m.memoryHistory, metrics.MemMiB, m.maxDataPoints)

		return m, waitForMetrics(m.sink)

	case streamEndMsg:
		m.err = msg.err
		m.finished = true
		m.sink.Close()
		return m, tea.Quit
	}

	return m, nil
}

// pushBounded appends v and drops the oldest values beyond max
func pushBounded(data []float64, v float64, max int) []float64 {
	data = append(data, v)
	if len(data) > max {
		data = data[len(data)-max:]
	}
	return data
}
