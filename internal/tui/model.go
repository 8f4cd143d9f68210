package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rusenback/dockerstats/internal/model"
)

// Model represents the live view state
type Model struct {
	container model.Container
	sink      *Sink
	cancel    func() // Stops the stats stream

	current *model.DerivedMetrics
	ticks   int

	// Recent values for the sparklines, oldest first
	cpuHistory    []float64
	memoryHistory []float64
	maxDataPoints int

	err      error
	finished bool
	width    int
	height   int
}

// Message types for Bubbletea update loop
type metricsMsg struct {
	metrics model.DerivedMetrics
}

type streamEndMsg struct {
	err error
}

// EndMsg tells the program that the stats stream has terminated
func EndMsg(err error) tea.Msg {
	return streamEndMsg{err: err}
}

// NewModel creates a new live view model
func NewModel(container model.Container, sink *Sink, cancel func()) Model {
	if cancel == nil {
		cancel = func() {}
	}
	return Model{
		container:     container,
		sink:          sink,
		cancel:        cancel,
		maxDataPoints: 60,
	}
}

// Init starts waiting for the first record
func (m Model) Init() tea.Cmd {
	return waitForMetrics(m.sink)
}

// Err returns the stream error the view finished with, if any
func (m Model) Err() error {
	return m.err
}
