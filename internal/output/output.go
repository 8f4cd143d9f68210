// Package output renders derived metrics as text
package output

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	units "github.com/docker/go-units"
	"github.com/pkg/errors"
	"github.com/rusenback/dockerstats/internal/model"
)

const (
	FormatCSV    = "csv"
	FormatPretty = "pretty"
)

// CSVHeader is the first line of CSV output
const CSVHeader = "cpu,mem,rx,tx,read,write"

// ErrUnknownFormat is returned by New for an unsupported format name
var ErrUnknownFormat = errors.New("unknown output format")

// Writer is a line-oriented metrics sink
type Writer interface {
	Start() error
	Write(m model.DerivedMetrics) error
}

// New returns the writer for format
func New(format string, w io.Writer) (Writer, error) {
	switch format {
	case FormatCSV, "":
		return NewCSVWriter(w), nil
	case FormatPretty:
		return NewPrettyWriter(w), nil
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

// Valid reports whether format names a line-oriented writer
func Valid(format string) bool {
	return format == FormatCSV || format == FormatPretty
}

// CSVWriter prints one comma-separated line per record. Every line is
// flushed so output can be piped while the stream is live.
type CSVWriter struct {
	w *bufio.Writer
}

func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: bufio.NewWriter(w)}
}

func (c *CSVWriter) Start() error {
	return c.writeLine(CSVHeader)
}

func (c *CSVWriter) Write(m model.DerivedMetrics) error {
	return c.writeLine(FormatCSVLine(m))
}

func (c *CSVWriter) writeLine(line string) error {
	if _, err := c.w.WriteString(line); err != nil {
		return errors.Wrap(err, "write csv line")
	}
	if err := c.w.WriteByte('\n'); err != nil {
		return errors.Wrap(err, "write csv line")
	}
	return errors.Wrap(c.w.Flush(), "flush csv line")
}

// FormatCSVLine renders a record in header order. Floats use the shortest
// representation that round-trips.
func FormatCSVLine(m model.DerivedMetrics) string {
	buf := make([]byte, 0, 64)
	buf = strconv.AppendFloat(buf, m.CPUPercent, 'g', -1, 64)
	buf = append(buf, ',')
	buf = strconv.AppendFloat(buf, m.MemMiB, 'g', -1, 64)
	for _, v := range []int64{m.RxBytes, m.TxBytes, m.ReadBytes, m.WriteBytes} {
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, v, 10)
	}
	return string(buf)
}

// PrettyWriter prints a human-readable line per record
type PrettyWriter struct {
	w io.Writer
}

func NewPrettyWriter(w io.Writer) *PrettyWriter {
	return &PrettyWriter{w: w}
}

func (p *PrettyWriter) Start() error {
	_, err := fmt.Fprintf(p.w, "%-8s %10s %10s %10s %10s %10s\n",
		"CPU %", "MEM", "NET RX", "NET TX", "BLOCK R", "BLOCK W")
	return err
}

func (p *PrettyWriter) Write(m model.DerivedMetrics) error {
	_, err := fmt.Fprintf(p.w, "%-8s %10s %10s %10s %10s %10s\n",
		FormatPercent(m.CPUPercent),
		units.BytesSize(m.MemMiB*units.MiB),
		FormatBytes(m.RxBytes),
		FormatBytes(m.TxBytes),
		FormatBytes(m.ReadBytes),
		FormatBytes(m.WriteBytes),
	)
	return err
}

// FormatPercent renders a CPU percentage; non-finite values mean no signal
func FormatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "--"
	}
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

// FormatBytes renders a signed byte delta with binary units
func FormatBytes(b int64) string {
	if b < 0 {
		return "-" + units.BytesSize(-float64(b))
	}
	return units.BytesSize(float64(b))
}
