// Package config loads dockerstats settings from flags, environment and an
// optional YAML file.
package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rusenback/dockerstats/internal/docker"
	"github.com/rusenback/dockerstats/internal/output"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Keys, shared by flags, env (DOCKERSTATS_ prefix, dashes as underscores) and the config file
const (
	KeyHost      = "host"
	KeyTLSVerify = "tls-verify"
	KeyCertPath  = "cert-path"
	KeyTimeout   = "timeout"
	KeyFormat    = "format"
	KeyLogLevel  = "log-level"
	KeyDebug     = "debug"
)

const (
	EnvPrefix  = "DOCKERSTATS"
	FileName   = ".dockerstats"
	FormatTUI  = "tui"
	defaultLog = "info"
)

// Config is the resolved runtime configuration
type Config struct {
	Docker   docker.Config
	Format   string
	LogLevel logrus.Level
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	d := docker.DefaultConfig()
	v.SetDefault(KeyHost, d.Host)
	v.SetDefault(KeyTLSVerify, d.TLSVerify)
	v.SetDefault(KeyCertPath, d.CertPath)
	v.SetDefault(KeyTimeout, d.Timeout)
	v.SetDefault(KeyFormat, output.FormatCSV)
	v.SetDefault(KeyLogLevel, defaultLog)
}

// Load reads and validates the configuration held by v
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Docker: docker.Config{
			Host:      v.GetString(KeyHost),
			TLSVerify: v.GetBool(KeyTLSVerify),
			CertPath:  v.GetString(KeyCertPath),
			Timeout:   v.GetDuration(KeyTimeout),
		},
		Format: v.GetString(KeyFormat),
	}

	if cfg.Docker.Timeout <= 0 {
		return Config{}, errors.Errorf("%s must be positive, got %s", KeyTimeout, cfg.Docker.Timeout)
	}
	if cfg.Docker.TLSVerify && cfg.Docker.CertPath == "" {
		return Config{}, errors.Errorf("%s requires %s", KeyTLSVerify, KeyCertPath)
	}
	if !output.Valid(cfg.Format) && cfg.Format != FormatTUI {
		return Config{}, errors.Wrapf(output.ErrUnknownFormat, "%q (want csv, pretty or tui)", cfg.Format)
	}

	level, err := logrus.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return Config{}, errors.Wrap(err, KeyLogLevel)
	}
	if v.GetBool(KeyDebug) {
		level = logrus.DebugLevel
	}
	cfg.LogLevel = level

	return cfg, nil
}

// ReadInConfig wires the environment and a YAML config file into v.
// Without an explicit file, $HOME/.dockerstats.yaml and ./.dockerstats.yaml
// are tried and their absence is not an error.
func ReadInConfig(v *viper.Viper, file string) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(FileName)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && file == "" {
			return nil
		}
		return errors.Wrap(err, "read config")
	}

	logrus.WithField("file", v.ConfigFileUsed()).Debug("using config file")
	return nil
}
