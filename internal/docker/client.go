package docker

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Config holds the Docker client configuration
type Config struct {
	Host      string // Empty means use DOCKER_HOST and friends
	TLSVerify bool
	CertPath  string
	Timeout   time.Duration
}

func DefaultConfig() Config {
	return Config{
		Host:    "",
		Timeout: 30 * time.Second,
	}
}

// engineAPI is the part of the Engine API the client uses
type engineAPI interface {
	Ping(ctx context.Context) (types.Ping, error)
	ContainerInspect(ctx context.Context, containerID string) (types.ContainerJSON, error)
	ContainerStats(ctx context.Context, containerID string, stream bool) (types.ContainerStats, error)
	io.Closer
}

// Client wraps the Docker API client
type Client struct {
	cli     engineAPI
	timeout time.Duration
}

// NewClient connects to the daemon and verifies it answers a ping
func NewClient(cfg Config) (*Client, error) {
	cli, err := newAPIClient(cfg)
	if err != nil {
		return nil, err
	}

	c := newClient(cli, cfg.Timeout)
	if err := c.ping(); err != nil {
		cli.Close()
		return nil, err
	}

	return c, nil
}

// newAPIClient builds the Engine API client without contacting the daemon
func newAPIClient(cfg Config) (*client.Client, error) {
	opts := []client.Opt{
		client.WithAPIVersionNegotiation(),
	}

	if cfg.Host == "" {
		opts = append(opts, client.FromEnv)
	} else {
		opts = append(opts, client.WithHost(cfg.Host))
	}

	if cfg.TLSVerify {
		opts = append(opts, client.WithTLSClientConfig(
			filepath.Join(cfg.CertPath, "ca.pem"),
			filepath.Join(cfg.CertPath, "cert.pem"),
			filepath.Join(cfg.CertPath, "key.pem"),
		))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create docker client")
	}
	return cli, nil
}

func newClient(cli engineAPI, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	return &Client{cli: cli, timeout: timeout}
}

func (c *Client) ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	p, err := c.cli.Ping(ctx)
	if err != nil {
		return errors.Wrap(err, "ping docker daemon")
	}

	logrus.WithFields(logrus.Fields{
		"api_version": p.APIVersion,
		"os_type":     p.OSType,
	}).Debug("connected to docker daemon")
	return nil
}

// Close closes the connection
func (c *Client) Close() error {
	if c.cli != nil {
		return c.cli.Close()
	}
	return nil
}
