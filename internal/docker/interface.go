// internal/docker/interface.go
package docker

import (
	"context"

	"github.com/rusenback/dockerstats/internal/model"
)

// SampleSource allows mocking the Docker client in tests
type SampleSource interface {
	ResolveContainer(ctx context.Context, id string) (model.Container, error)
	StreamSamples(ctx context.Context, id string) (<-chan *model.RawSample, <-chan error, func())
	Close() error
}

// Make sure Client implements the interface
var _ SampleSource = (*Client)(nil)
