package store

import (
	"fmt"

	"github.com/kbukum/xesmeta/database"
	"github.com/kbukum/xesmeta/redis"
	"github.com/kbukum/xesmeta/validation"
)

// Backend names.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendDatabase = "database"
)

// Config selects and configures the attribute store backend.
type Config struct {
	Backend  string          `yaml:"backend" mapstructure:"backend" validate:"required"`
	Redis    redis.Config    `yaml:"redis" mapstructure:"redis"`
	Database database.Config `yaml:"database" mapstructure:"database"`
}

// ApplyDefaults fills the backend name and the selected backend's section.
func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendMemory
	}
	switch c.Backend {
	case BackendRedis:
		c.Redis.ApplyDefaults()
	case BackendDatabase:
		c.Database.ApplyDefaults()
	}
}

// Validate checks the backend name and the selected backend's section only.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	switch c.Backend {
	case BackendRedis:
		if err := c.Redis.Validate(); err != nil {
			return fmt.Errorf("store.redis: %w", err)
		}
	case BackendDatabase:
		if err := c.Database.Validate(); err != nil {
			return fmt.Errorf("store.database: %w", err)
		}
	}
	return nil
}
