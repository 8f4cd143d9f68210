// internal/docker/stats.go
package docker

import (
	"context"
	"encoding/json"
	"io"

	"github.com/docker/docker/api/types"
	"github.com/pkg/errors"
	"github.com/rusenback/dockerstats/internal/model"
	"github.com/sirupsen/logrus"
)

// StreamSamples streams raw samples for a container until the stream ends,
// fails or is cancelled. At most one error is sent, after which both
// channels are closed.
func (c *Client) StreamSamples(ctx context.Context, id string) (<-chan *model.RawSample, <-chan error, func()) {
	samplesChan := make(chan *model.RawSample)
	errChan := make(chan error, 1)
	ctx, cancel := context.WithCancel(ctx)

	go func() {
		defer close(samplesChan)
		defer close(errChan)

		resp, err := c.cli.ContainerStats(ctx, id, true) // stream: true
		if err != nil {
			if ctx.Err() == nil {
				errChan <- errors.Wrapf(err, "stats for %s", id)
			}
			return
		}
		defer resp.Body.Close()

		log := logrus.WithFields(logrus.Fields{"container": id, "os_type": resp.OSType})
		log.Debug("stats stream opened")

		decoder := json.NewDecoder(resp.Body)
		for {
			var stats types.StatsJSON
			if err := decoder.Decode(&stats); err != nil {
				if err == io.EOF || errors.Is(err, context.Canceled) || ctx.Err() != nil {
					log.Debug("stats stream closed")
					return
				}
				errChan <- errors.Wrapf(err, "decode stats for %s", id)
				return
			}

			select {
			case samplesChan <- ToRawSample(&stats):
			case <-ctx.Done():
				return
			}
		}
	}()

	return samplesChan, errChan, cancel
}

// ToRawSample extracts the counters the differencing engine needs
func ToRawSample(stats *types.StatsJSON) *model.RawSample {
	cpuCount := len(stats.CPUStats.CPUUsage.PercpuUsage)
	if cpuCount == 0 {
		// cgroup v2 has no per-CPU breakdown
		cpuCount = int(stats.CPUStats.OnlineCPUs)
	}

	sample := &model.RawSample{
		CPUTotalUsage:   stats.CPUStats.CPUUsage.TotalUsage,
		CPUSystemUsage:  stats.CPUStats.SystemUsage,
		CPUCount:        cpuCount,
		MemUsage:        stats.MemoryStats.Usage,
		MemInactiveFile: inactiveFile(stats.MemoryStats),
		Networks:        make(map[string]model.NetworkCounters, len(stats.Networks)),
		Blkio:           make([]model.BlkioEntry, 0, len(stats.BlkioStats.IoServiceBytesRecursive)),
		Read:            stats.Read,
	}

	for name, network := range stats.Networks {
		sample.Networks[name] = model.NetworkCounters{
			RxBytes: network.RxBytes,
			TxBytes: network.TxBytes,
		}
	}

	for _, entry := range stats.BlkioStats.IoServiceBytesRecursive {
		sample.Blkio = append(sample.Blkio, model.BlkioEntry{
			Op:    model.ParseBlkioOp(entry.Op),
			Value: entry.Value,
		})
	}

	return sample
}

// inactiveFile prefers the cgroup v1 hierarchical counter over the v2 one
func inactiveFile(mem types.MemoryStats) uint64 {
	if v, ok := mem.Stats["total_inactive_file"]; ok {
		return v
	}
	return mem.Stats["inactive_file"]
}
