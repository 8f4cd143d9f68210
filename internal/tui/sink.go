package tui

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/rusenback/dockerstats/internal/model"
)

// ErrClosed is returned by Sink.Write after the view has gone away
var ErrClosed = errors.New("live view closed")

// Sink hands derived metrics from the driver to the bubbletea program
type Sink struct {
	metrics chan model.DerivedMetrics
	done    chan struct{}
	once    sync.Once
}

func NewSink() *Sink {
	return &Sink{
		metrics: make(chan model.DerivedMetrics),
		done:    make(chan struct{}),
	}
}

// Start is a no-op; the view draws its own header
func (s *Sink) Start() error {
	return nil
}

// Write blocks until the view takes the record or is closed
func (s *Sink) Write(m model.DerivedMetrics) error {
	select {
	case s.metrics <- m:
		return nil
	case <-s.done:
		return ErrClosed
	}
}

// Close releases a blocked Write. Safe to call more than once.
func (s *Sink) Close() {
	s.once.Do(func() { close(s.done) })
}
