// Package stats turns two consecutive raw samples into per-interval metrics,
// following the conventions of `docker stats`.
//
// Every function here is pure. Counter differences are taken in a signed or
// floating domain, so a counter reset yields a negative value and a zero
// system-CPU delta yields NaN or Inf. Neither is treated as an error.
package stats

import "github.com/rusenback/dockerstats/internal/model"

const bytesPerMiB = 1 << 20

// Compute derives all metrics for the interval between prev and cur
func Compute(cur, prev *model.RawSample) model.DerivedMetrics {
	rx, tx := NetDelta(cur, prev)
	read, write := DiskDelta(cur, prev)

	return model.DerivedMetrics{
		CPUPercent: CPUPercent(cur, prev),
		MemMiB:     MemMiB(cur),
		RxBytes:    rx,
		TxBytes:    tx,
		ReadBytes:  read,
		WriteBytes: write,
		Timestamp:  cur.Read,
	}
}

// CPUPercent returns the container's share of host CPU time over the
// interval, scaled by the number of CPUs it can use. One saturated core
// reads as ~100 regardless of host size.
func CPUPercent(cur, prev *model.RawSample) float64 {
	cpuDelta := float64(cur.CPUTotalUsage) - float64(prev.CPUTotalUsage)
	systemDelta := float64(cur.CPUSystemUsage) - float64(prev.CPUSystemUsage)

	return (cpuDelta / systemDelta) * float64(cur.CPUCount) * 100.0
}

// MemMiB returns resident memory without reclaimable page cache, in MiB.
// The inactive-file figure is ignored when it is not below usage.
func MemMiB(cur *model.RawSample) float64 {
	used := cur.MemUsage
	if cur.MemInactiveFile < cur.MemUsage {
		used -= cur.MemInactiveFile
	}
	return float64(used) * (1.0 / bytesPerMiB)
}

// NetTotals sums received and transmitted bytes over all interfaces
func NetTotals(s *model.RawSample) (rx, tx uint64) {
	for _, n := range s.Networks {
		rx += n.RxBytes
		tx += n.TxBytes
	}
	return rx, tx
}

// NetDelta returns bytes received and transmitted during the interval.
// Interfaces present in only one sample count only toward that sample's total.
func NetDelta(cur, prev *model.RawSample) (rx, tx int64) {
	curRx, curTx := NetTotals(cur)
	prevRx, prevTx := NetTotals(prev)
	return counterDelta(curRx, prevRx), counterDelta(curTx, prevTx)
}

// DiskTotals sums read and written bytes over all block I/O entries
func DiskTotals(s *model.RawSample) (read, write uint64) {
	for _, e := range s.Blkio {
		switch e.Op {
		case model.BlkioRead:
			read += e.Value
		case model.BlkioWrite:
			write += e.Value
		}
	}
	return read, write
}

// DiskDelta returns bytes read and written during the interval
func DiskDelta(cur, prev *model.RawSample) (read, write int64) {
	curRead, curWrite := DiskTotals(cur)
	prevRead, prevWrite := DiskTotals(prev)
	return counterDelta(curRead, prevRead), counterDelta(curWrite, prevWrite)
}

// counterDelta relies on wrapping unsigned subtraction; the int64 conversion
// is exact whenever the true difference fits in an int64.
func counterDelta(cur, prev uint64) int64 {
	return int64(cur - prev)
}
