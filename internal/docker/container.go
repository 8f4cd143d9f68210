// internal/docker/container.go
package docker

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rusenback/dockerstats/internal/model"
)

// ErrNotRunning is returned when the target container exists but is not running
var ErrNotRunning = errors.New("container is not running")

// ResolveContainer looks up a container by name or ID
func (c *Client) ResolveContainer(ctx context.Context, id string) (model.Container, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	info, err := c.cli.ContainerInspect(ctx, id)
	if err != nil {
		return model.Container{}, errors.Wrapf(err, "inspect container %s", id)
	}
	if info.ContainerJSONBase == nil {
		return model.Container{}, errors.Errorf("inspect container %s: empty response", id)
	}

	result := model.Container{
		ID:   info.ID,
		Name: strings.TrimPrefix(info.Name, "/"),
	}
	if len(result.ID) > 12 {
		result.ID = result.ID[:12] // Short ID
	}
	if info.Config != nil {
		result.Image = info.Config.Image
	}
	if info.State != nil {
		result.State = info.State.Status
		result.Running = info.State.Running
	}

	if !result.Running {
		return result, errors.Wrapf(ErrNotRunning, "%s is %s", result.Name, result.State)
	}
	return result, nil
}
