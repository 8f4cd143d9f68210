package tui

import (
	"math"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/rusenback/dockerstats/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var web = model.Container{ID: "0123456789ab", Name: "web", Image: "nginx", State: "running", Running: true}

func TestSink_WriteDeliversToView(t *testing.T) {
	sink := NewSink()
	require.NoError(t, sink.Start())

	go func() {
		_ = sink.Write(model.DerivedMetrics{CPUPercent: 42})
	}()

	msg := waitForMetrics(sink)()
	require.IsType(t, metricsMsg{}, msg)
	assert.Equal(t, 42.0, msg.(metricsMsg).metrics.CPUPercent)
}

func TestSink_Close(t *testing.T) {
	sink := NewSink()
	sink.Close()
	sink.Close()

	assert.Equal(t, ErrClosed, sink.Write(model.DerivedMetrics{}))
	assert.Nil(t, waitForMetrics(sink)())
}

func TestUpdate_Metrics(t *testing.T) {
	m := NewModel(web, NewSink(), nil)

	updated, cmd := m.Update(metricsMsg{metrics: model.DerivedMetrics{CPUPercent: 50, MemMiB: 12}})
	m = updated.(Model)
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, m.ticks)
	require.NotNil(t, m.current)
	assert.Equal(t, 50.0, m.current.CPUPercent)
	assert.Equal(t, []float64{50}, m.cpuHistory)
	assert.Equal(t, []float64{12}, m.memoryHistory)

	updated, _ = m.Update(metricsMsg{metrics: model.DerivedMetrics{CPUPercent: math.NaN()}})
	m = updated.(Model)
	assert.Equal(t, []float64{50, 0}, m.cpuHistory)
	assert.True(t, math.IsNaN(m.current.CPUPercent))
}

func TestUpdate_HistoryBounded(t *testing.T) {
	m := NewModel(web, NewSink(), nil)
	for i := 0; i < m.maxDataPoints+10; i++ {
		updated, _ := m.Update(metricsMsg{metrics: model.DerivedMetrics{CPUPercent: float64(i)}})
		m = updated.(Model)
	}

	assert.Len(t, m.cpuHistory, m.maxDataPoints)
	assert.Equal(t, float64(m.maxDataPoints+9), m.cpuHistory[len(m.cpuHistory)-1])
	assert.Equal(t, 10.0, m.cpuHistory[0])
}

func TestUpdate_QuitCancelsStream(t *testing.T) {
	cancelled := false
	sink := NewSink()
	m := NewModel(web, sink, func() { cancelled = true })

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, cancelled)
	assert.Equal(t, ErrClosed, sink.Write(model.DerivedMetrics{}))
}

func TestUpdate_StreamEnd(t *testing.T) {
	m := NewModel(web, NewSink(), nil)
	boom := errors.New("unexpected EOF")

	updated, cmd := m.Update(EndMsg(boom))
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, boom, m.Err())
	assert.Contains(t, m.View(), "unexpected EOF")
}

func TestView(t *testing.T) {
	m := NewModel(web, NewSink(), nil)
	assert.Contains(t, m.View(), "Waiting for the second sample")

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(Model)
	updated, _ = m.Update(metricsMsg{metrics: model.DerivedMetrics{
		CPUPercent: 12.5,
		MemMiB:     1.5,
		RxBytes:    1536,
		TxBytes:    -300,
		Timestamp:  time.Now(),
	}})
	m = updated.(Model)

	view := m.View()
	assert.Contains(t, view, "web")
	assert.Contains(t, view, "12.50%")
	assert.Contains(t, view, "1.5MiB")
	assert.Contains(t, view, "1.5KiB")
	assert.Contains(t, view, "-300B")
	assert.Contains(t, view, "ticks: 1")
}

func TestRenderSparkline(t *testing.T) {
	line := renderSparkline([]float64{0, 50, 100}, 10)
	assert.Equal(t, 10, utf8.RuneCountInString(line))
	assert.Equal(t, "▁▁▁▁▁▁▁▁▄█", line)

	assert.Equal(t, 5, utf8.RuneCountInString(renderSparkline(nil, 5)))
	assert.Equal(t, 3, utf8.RuneCountInString(renderSparkline([]float64{1, 2, 3, 4, 5, 6}, 3)))
}

func TestRenderBar(t *testing.T) {
	assert.Equal(t, "█████─────", renderBar(50, 10))
	assert.Equal(t, "██████████", renderBar(250, 10))
	assert.Equal(t, "──────────", renderBar(math.NaN(), 10))
	assert.Equal(t, "──────────", renderBar(-20, 10))
	assert.Equal(t, "──────────", renderBar(math.Inf(1), 10))
	assert.Equal(t, "──────────", renderBar(math.Inf(-1), 10))
	assert.Equal(t, "██████████", renderBar(1e300, 10))
}

func TestView_InfiniteCPU(t *testing.T) {
	m := NewModel(web, NewSink(), nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(Model)
	updated, _ = m.Update(metricsMsg{metrics: model.DerivedMetrics{CPUPercent: math.Inf(1), MemMiB: 1}})
	m = updated.(Model)

	var view string
	require.NotPanics(t, func() { view = m.View() })
	assert.Contains(t, view, "--")
	assert.Equal(t, []float64{0}, m.cpuHistory)
}
