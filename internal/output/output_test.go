package output

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/rusenback/dockerstats/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)

	require.NoError(t, w.Start())
	require.NoError(t, w.Write(model.DerivedMetrics{
		CPUPercent: 200,
		MemMiB:     1,
		RxBytes:    210,
		TxBytes:    75,
		ReadBytes:  100,
		WriteBytes: 50,
	}))
	require.NoError(t, w.Write(model.DerivedMetrics{
		CPUPercent: 0.125,
		MemMiB:     12.3456789,
		RxBytes:    -10,
	}))

	assert.Equal(t,
		"cpu,mem,rx,tx,read,write\n"+
			"200,1,210,75,100,50\n"+
			"0.125,12.3456789,-10,0,0,0\n",
		buf.String())
}

func TestCSVWriter_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter(&buf).Start())
	assert.Equal(t, CSVHeader+"\n", buf.String())
}

func TestFormatCSVLine_NonFinite(t *testing.T) {
	assert.Equal(t, "NaN,0,0,0,0,0", FormatCSVLine(model.DerivedMetrics{CPUPercent: math.NaN()}))
	assert.Equal(t, "+Inf,0,0,0,0,0", FormatCSVLine(model.DerivedMetrics{CPUPercent: math.Inf(1)}))
	assert.Equal(t, "-Inf,0,0,0,0,0", FormatCSVLine(model.DerivedMetrics{CPUPercent: math.Inf(-1)}))
}

func TestFormatCSVLine_RoundTrip(t *testing.T) {
	m := model.DerivedMetrics{CPUPercent: 33.333333333333336, MemMiB: 1536.0 / 1048576.0}
	fields := strings.Split(FormatCSVLine(m), ",")
	require.Len(t, fields, 6)

	cpu, err := strconv.ParseFloat(fields[0], 64)
	require.NoError(t, err)
	assert.Equal(t, m.CPUPercent, cpu)

	mem, err := strconv.ParseFloat(fields[1], 64)
	require.NoError(t, err)
	assert.Equal(t, m.MemMiB, mem)
}

func TestPrettyWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewPrettyWriter(&buf)

	require.NoError(t, w.Start())
	require.NoError(t, w.Write(model.DerivedMetrics{
		CPUPercent: 12.5,
		MemMiB:     1.5,
		RxBytes:    1536,
		TxBytes:    -300,
		ReadBytes:  0,
		WriteBytes: 2 * 1024 * 1024,
	}))
	require.NoError(t, w.Write(model.DerivedMetrics{CPUPercent: math.NaN()}))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"CPU", "%", "MEM", "NET", "RX", "NET", "TX", "BLOCK", "R", "BLOCK", "W"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"12.50%", "1.5MiB", "1.5KiB", "-300B", "0B", "2MiB"}, strings.Fields(lines[1]))
	assert.Equal(t, "--", strings.Fields(lines[2])[0])
}

func TestNew(t *testing.T) {
	w, err := New(FormatCSV, &bytes.Buffer{})
	require.NoError(t, err)
	assert.IsType(t, &CSVWriter{}, w)

	w, err = New("", &bytes.Buffer{})
	require.NoError(t, err)
	assert.IsType(t, &CSVWriter{}, w)

	w, err = New(FormatPretty, &bytes.Buffer{})
	require.NoError(t, err)
	assert.IsType(t, &PrettyWriter{}, w)

	_, err = New("xml", &bytes.Buffer{})
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	assert.True(t, Valid(FormatCSV))
	assert.True(t, Valid(FormatPretty))
	assert.False(t, Valid("tui"))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0B", FormatBytes(0))
	assert.Equal(t, "210B", FormatBytes(210))
	assert.Equal(t, "-1KiB", FormatBytes(-1024))
}

type brokenPipe struct{ err error }

func (b brokenPipe) Write(p []byte) (int, error) {
	return 0, b.err
}

func TestCSVWriter_WriteError(t *testing.T) {
	epipe := errors.New("broken pipe")
	w := NewCSVWriter(brokenPipe{err: epipe})

	err := w.Start()
	require.Error(t, err)
	assert.Equal(t, epipe, errors.Cause(err))

	err = w.Write(model.DerivedMetrics{CPUPercent: 1})
	require.Error(t, err)
	assert.Equal(t, epipe, errors.Cause(err))
}
