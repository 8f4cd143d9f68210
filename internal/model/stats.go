// internal/model/stats.go
package model

import (
	"strings"
	"time"
)

// RawSample is one snapshot of a container's cumulative resource counters
type RawSample struct {
	// CPU (nanoseconds)
	CPUTotalUsage  uint64 // Time consumed by the container
	CPUSystemUsage uint64 // Time consumed by the whole host
	CPUCount       int    // CPUs visible to the container

	// Memory (bytes)
	MemUsage        uint64
	MemInactiveFile uint64 // Page cache that can be reclaimed

	// Network, keyed by interface name
	Networks map[string]NetworkCounters

	// Block I/O, possibly several entries per op (one per device)
	Blkio []BlkioEntry

	// When the runtime took the sample
	Read time.Time
}

// NetworkCounters holds cumulative bytes for one interface
type NetworkCounters struct {
	RxBytes uint64
	TxBytes uint64
}

// BlkioOp is the operation tag of a block I/O entry
type BlkioOp int

const (
	BlkioOther BlkioOp = iota
	BlkioRead
	BlkioWrite
)

func (o BlkioOp) String() string {
	switch o {
	case BlkioRead:
		return "Read"
	case BlkioWrite:
		return "Write"
	default:
		return "Other"
	}
}

// ParseBlkioOp maps a runtime op string to a BlkioOp.
// cgroup v1 reports "Read"/"Write", cgroup v2 reports "read"/"write".
func ParseBlkioOp(op string) BlkioOp {
	switch strings.ToLower(op) {
	case "read":
		return BlkioRead
	case "write":
		return BlkioWrite
	default:
		return BlkioOther
	}
}

// BlkioEntry is a cumulative byte count for one op on one device
type BlkioEntry struct {
	Op    BlkioOp
	Value uint64
}

// DerivedMetrics is the per-interval result of differencing two samples.
// Byte deltas are signed: a counter reset shows up as a negative value.
type DerivedMetrics struct {
	CPUPercent float64
	MemMiB     float64

	RxBytes int64
	TxBytes int64

	ReadBytes  int64
	WriteBytes int64

	// Timestamp of the newer sample
	Timestamp time.Time
}
