package testutil

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kbukum/xesmeta/component"
	"github.com/kbukum/xesmeta/testutil"
)

// Component is a test database component backed by in-memory SQLite.
type Component struct {
	db      *gorm.DB
	models  []interface{}
	started bool
	mu      sync.RWMutex
}

var (
	_ component.Component    = (*Component)(nil)
	_ testutil.TestComponent = (*Component)(nil)
)

// Snapshot is the value returned by Component.Snapshot: rows per table.
type Snapshot map[string][]map[string]interface{}

// NewComponent creates a new test database component.
func NewComponent() *Component {
	return &Component{}
}

// WithModels registers models for auto-migration on Start.
func (c *Component) WithModels(models ...interface{}) *Component {
	c.models = append(c.models, models...)
	return c
}

// DB returns the underlying *gorm.DB, or nil if not started.
func (c *Component) DB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// Name returns the component name.
func (c *Component) Name() string { return "database-test" }

// Start opens the in-memory database and migrates registered models.
func (c *Component) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return fmt.Errorf("component already started")
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open test database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to open test database: %w", err)
	}
	// A second connection would see a different, empty database.
	sqlDB.SetMaxOpenConns(1)

	if len(c.models) > 0 {
		if err := db.AutoMigrate(c.models...); err != nil {
			_ = sqlDB.Close()
			return fmt.Errorf("auto-migrate failed: %w", err)
		}
	}

	c.db = db
	c.started = true
	return nil
}

// Stop closes the database.
func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return nil
	}
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	c.started = false
	c.db = nil
	return sqlDB.Close()
}

// Health pings the database.
func (c *Component) Health(ctx context.Context) component.Health {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.started {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: "database not started",
		}
	}
	sqlDB, err := c.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: fmt.Sprintf("ping failed: %v", err),
		}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Reset deletes every row of every table, keeping the schema.
func (c *Component) Reset(_ context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.started {
		return fmt.Errorf("component not started")
	}
	return TruncateAllTables(c.db)
}

// Snapshot captures all rows of all tables.
func (c *Component) Snapshot(_ context.Context) (interface{}, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.started {
		return nil, fmt.Errorf("component not started")
	}

	tables, err := GetTableNames(c.db)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	snap := make(Snapshot, len(tables))
	for _, table := range tables {
		var rows []map[string]interface{}
		if err := c.db.Table(table).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to snapshot table %s: %w", table, err)
		}
		snap[table] = rows
	}
	return snap, nil
}

// Restore replaces all rows with a previous Snapshot.
func (c *Component) Restore(_ context.Context, snap interface{}) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.started {
		return fmt.Errorf("component not started")
	}
	snapshot, ok := snap.(Snapshot)
	if !ok {
		return fmt.Errorf("invalid snapshot type: expected Snapshot, got %T", snap)
	}

	if err := TruncateAllTables(c.db); err != nil {
		return fmt.Errorf("failed to reset before restore: %w", err)
	}
	for table, rows := range snapshot {
		if err := LoadFixture(c.db, table, rows); err != nil {
			return err
		}
	}
	return nil
}
