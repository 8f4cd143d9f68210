package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/rusenback/dockerstats/internal/config"
	"github.com/rusenback/dockerstats/internal/docker"
	"github.com/rusenback/dockerstats/internal/driver"
	"github.com/rusenback/dockerstats/internal/model"
	"github.com/rusenback/dockerstats/internal/output"
	"github.com/rusenback/dockerstats/internal/tui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// tuiOptions configures the live view terminal; replaced in tests
var tuiOptions = func(stdout io.Writer) []tea.ProgramOption {
	return []tea.ProgramOption{tea.WithAltScreen(), tea.WithOutput(stdout)}
}

// newSource connects to the container runtime; replaced in tests
var newSource = func(cfg docker.Config) (docker.SampleSource, error) {
	return docker.NewClient(cfg)
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var cfgFile string
	v := viper.New()
	config.SetDefaults(v)

	cmd := &cobra.Command{
		Use:   "dockerstats [flags] <container>",
		Short: "Stream derived resource usage for one running container",
		Long: `dockerstats follows the Docker stats stream of a single container and
prints, for every new sample, the CPU percentage, memory in MiB and the
network and block I/O bytes transferred since the previous sample.

The default CSV output starts with the header cpu,mem,rx,tx,read,write.`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Past argument parsing, errors are runtime errors
			cmd.SilenceUsage = true

			if err := config.ReadInConfig(v, cfgFile); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			logrus.SetOutput(cmd.ErrOrStderr())
			logrus.SetLevel(cfg.LogLevel)

			return run(cmd.Context(), cfg, args[0], stdout)
		},
	}

	d := docker.DefaultConfig()
	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.dockerstats.yaml)")
	flags.String(config.KeyHost, d.Host, "Docker daemon address, empty to use DOCKER_HOST")
	flags.Bool(config.KeyTLSVerify, d.TLSVerify, "use TLS and verify the daemon certificate")
	flags.String(config.KeyCertPath, d.CertPath, "directory holding ca.pem, cert.pem and key.pem")
	flags.Duration(config.KeyTimeout, d.Timeout, "timeout for connecting to the daemon")
	flags.StringP(config.KeyFormat, "f", output.FormatCSV, "output format: csv, pretty or tui")
	flags.String(config.KeyLogLevel, "info", "log level (debug, info, warn, error)")
	flags.BoolP(config.KeyDebug, "d", false, "enable debug logging")

	for _, key := range []string{
		config.KeyHost, config.KeyTLSVerify, config.KeyCertPath, config.KeyTimeout,
		config.KeyFormat, config.KeyLogLevel, config.KeyDebug,
	} {
		_ = v.BindPFlag(key, flags.Lookup(key))
	}

	return cmd
}

// run streams derived metrics for id until the stream ends or ctx is cancelled
func run(ctx context.Context, cfg config.Config, id string, stdout io.Writer) error {
	source, err := newSource(cfg.Docker)
	if err != nil {
		return errors.Wrap(err, "connect to docker")
	}
	defer source.Close()

	container, err := source.ResolveContainer(ctx, id)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"container": container.Name,
		"id":        container.ID,
		"format":    cfg.Format,
	}).Info("streaming stats")

	if cfg.Format == config.FormatTUI {
		err = runTUI(ctx, source, container, stdout)
	} else {
		var w output.Writer
		w, err = output.New(cfg.Format, stdout)
		if err != nil {
			return err
		}
		err = driver.New(source, w).Run(ctx, container.ID)
	}

	if errors.Is(err, context.Canceled) {
		logrus.Debug("interrupted")
		return nil
	}
	return err
}

// runTUI drives the stream into a full-screen live view
func runTUI(ctx context.Context, source driver.Source, container model.Container, stdout io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sink := tui.NewSink()
	defer sink.Close()

	opts := append(tuiOptions(stdout), tea.WithContext(ctx))
	p := tea.NewProgram(tui.NewModel(container, sink, cancel), opts...)

	errc := make(chan error, 1)
	go func() {
		err := driver.New(source, sink).Run(ctx, container.ID)
		p.Send(tui.EndMsg(err))
		errc <- err
	}()

	_, err := p.Run()
	cancel()
	sink.Close()
	return tuiExitError(err, <-errc)
}

// tuiExitError folds the program and stream results into the command
// result. Leaving the view or interrupting it is a clean exit.
func tuiExitError(runErr, streamErr error) error {
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return errors.Wrap(runErr, "live view")
	}
	if errors.Is(streamErr, tui.ErrClosed) || errors.Is(streamErr, context.Canceled) {
		return nil
	}
	return streamErr
}
