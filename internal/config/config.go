// Package config loads the simulator settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bietkhonhungvandi212/pagesim/internal/driver"
	"github.com/bietkhonhungvandi212/pagesim/internal/telemetry"
	util "github.com/bietkhonhungvandi212/pagesim/internal/utils"
	"github.com/bietkhonhungvandi212/pagesim/pkg/logger"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Simulator util.Options     `yaml:"simulator"`
	Driver    driver.Config    `yaml:"driver"`
	Log       logger.Config    `yaml:"log"`
	Telemetry telemetry.Config `yaml:"telemetry"`
}

func Default() Config {
	return Config{
		Simulator: util.DefaultOptions(),
		Driver:    driver.DefaultConfig(),
		Log:       logger.DefaultConfig(),
		Telemetry: telemetry.DefaultConfig(),
	}
}

// Load reads path over the defaults. Keys missing from the file keep their default value.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(raw)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Parse(raw []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section and normalizes the algorithm name.
func (c *Config) Validate() error {
	if err := c.Simulator.Validate(); err != nil {
		return fmt.Errorf("simulator: %w", err)
	}
	if err := c.Driver.Validate(); err != nil {
		return fmt.Errorf("driver: %w", err)
	}
	if c.Telemetry.Enabled && (c.Telemetry.PrometheusPort < 0 || c.Telemetry.PrometheusPort > 65535) {
		return fmt.Errorf("telemetry: prometheus port %d out of range", c.Telemetry.PrometheusPort)
	}
	return nil
}
