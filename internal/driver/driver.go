// Package driver feeds a stream of raw samples through the differencing
// engine, keeping only the most recent sample between ticks.
package driver

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"github.com/rusenback/dockerstats/internal/model"
	"github.com/rusenback/dockerstats/internal/stats"
	"github.com/sirupsen/logrus"
)

// Source produces raw samples for one container. Both channels are closed
// when the stream ends; at most one error is delivered.
type Source interface {
	StreamSamples(ctx context.Context, id string) (<-chan *model.RawSample, <-chan error, func())
}

// Sink receives derived metrics in arrival order
type Sink interface {
	// Start is called once before the stream is opened
	Start() error
	Write(m model.DerivedMetrics) error
}

// ErrTerminated is returned when Run is called on a driver that already ran
var ErrTerminated = errors.New("driver already terminated")

// State of the driver's single previous-sample slot
type State int

const (
	StateEmpty State = iota
	StateHasPrevious
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateHasPrevious:
		return "has-previous"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Driver pairs consecutive samples from a Source and writes the result to a Sink
type Driver struct {
	source Source
	sink   Sink

	state   State
	prev    *model.RawSample
	emitted int
}

func New(source Source, sink Sink) *Driver {
	return &Driver{source: source, sink: sink}
}

// State returns the current state
func (d *Driver) State() State {
	return d.state
}

// Emitted returns the number of records written so far
func (d *Driver) Emitted() int {
	return d.emitted
}

// Run streams samples for id until the source ends, fails or ctx is done.
// A source error is returned unchanged. No retry is attempted.
func (d *Driver) Run(ctx context.Context, id string) error {
	if d.state == StateTerminated {
		return ErrTerminated
	}
	defer d.terminate()

	if err := d.sink.Start(); err != nil {
		return errors.Wrap(err, "start output")
	}

	samples, errs, cancel := d.source.StreamSamples(ctx, id)
	defer cancel()

	log := logrus.WithField("container", id)

	for {
		select {
		case sample, ok := <-samples:
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				if errs == nil {
					return nil
				}
				return <-errs
			}
			if err := d.next(sample, log); err != nil {
				return err
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			return err

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (d *Driver) next(sample *model.RawSample, log *logrus.Entry) error {
	if d.state == StateEmpty {
		d.prev = sample
		d.state = StateHasPrevious
		log.Debug("first sample buffered")
		return nil
	}

	m := stats.Compute(sample, d.prev)
	d.prev = sample

	if math.IsNaN(m.CPUPercent) || math.IsInf(m.CPUPercent, 0) {
		log.WithField("cpu", m.CPUPercent).Debug("no system CPU progress between samples")
	}

	if err := d.sink.Write(m); err != nil {
		return errors.Wrap(err, "write metrics")
	}
	d.emitted++
	return nil
}

func (d *Driver) terminate() {
	d.state = StateTerminated
	d.prev = nil
}
