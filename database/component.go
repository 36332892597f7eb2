package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/xesmeta/component"
	"github.com/kbukum/xesmeta/logger"
)

// Component owns a DB and the Repository built on it.
type Component struct {
	cfg  Config
	log  *logger.Logger
	mu   sync.RWMutex
	db   *DB
	repo *Repository
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates a database component for use with the component registry.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Nop()
	}
	return &Component{cfg: cfg, log: log.WithComponent("database")}
}

// Name returns the component name.
func (c *Component) Name() string { return "database" }

// DB returns the underlying *DB, or nil if not started.
func (c *Component) DB() *DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// Repository returns the attribute store, or nil if not started.
func (c *Component) Repository() *Repository {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.repo
}

// Start connects and migrates the step_attributes table.
func (c *Component) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return nil
	}
	db, err := Open(ctx, c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("database start: %w", err)
	}
	if err := db.AutoMigrate(&StepAttribute{}); err != nil {
		_ = db.Close()
		return fmt.Errorf("database auto-migrate: %w", err)
	}

	c.db = db
	c.repo = NewRepository(db)
	c.log.Info("Database component started", logger.Fields("driver", c.cfg.Driver))
	return nil
}

// Stop closes the connection pool.
func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db, c.repo = nil, nil
	return err
}

// Health pings the database and reports pool usage.
func (c *Component) Health(ctx context.Context) component.Health {
	db := c.DB()
	if db == nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: "database not initialized",
		}
	}

	start := time.Now()
	if err := db.PingContext(ctx); err != nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: fmt.Sprintf("ping failed: %v", err),
		}
	}
	msg := fmt.Sprintf("latency=%s", time.Since(start).Round(time.Microsecond))
	if sqlDB, err := db.GormDB.DB(); err == nil {
		stats := sqlDB.Stats()
		msg += fmt.Sprintf(" open=%d in_use=%d idle=%d", stats.OpenConnections, stats.InUse, stats.Idle)
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy, Message: msg}
}

// Describe implements component.Describable.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    "Database",
		Type:    "database",
		Details: fmt.Sprintf("driver=%s pool=%d/%d", c.cfg.Driver, c.cfg.MaxOpenConns, c.cfg.MaxIdleConns),
	}
}
