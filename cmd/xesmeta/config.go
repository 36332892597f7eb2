package main

import (
	"fmt"

	"github.com/kbukum/xesmeta/config"
	"github.com/kbukum/xesmeta/observability"
	"github.com/kbukum/xesmeta/store"
	"github.com/kbukum/xesmeta/validation"
)

const serviceName = "xesmeta"

// AppConfig is the configuration of the xesmeta CLI.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Store   store.Config               `yaml:"store" mapstructure:"store"`
	Tracing observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics observability.MeterConfig  `yaml:"metrics" mapstructure:"metrics"`
}

// ApplyDefaults fills unset fields.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Store.ApplyDefaults()
}

// Validate checks every section.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(c.Tracing); err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	if err := validation.Validate(c.Metrics); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	return nil
}

// Telemetry implements bootstrap.TelemetryConfig.
func (c *AppConfig) Telemetry() (observability.TracerConfig, observability.MeterConfig) {
	return c.Tracing, c.Metrics
}
