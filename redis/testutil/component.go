package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/xesmeta/component"
	"github.com/kbukum/xesmeta/testutil"
)

// Component is a test Redis component backed by miniredis.
type Component struct {
	mini    *miniredis.Miniredis
	client  *goredis.Client
	started bool
	mu      sync.RWMutex
}

var (
	_ component.Component    = (*Component)(nil)
	_ testutil.TestComponent = (*Component)(nil)
)

// keyState is the captured content of one key.
type keyState struct {
	kind   string
	value  string
	hash   map[string]string
	member []string
}

// Snapshot is the value returned by Component.Snapshot.
type Snapshot map[string]keyState

// NewComponent creates a new in-memory Redis test component.
func NewComponent() *Component {
	return &Component{}
}

// Client returns the go-redis client, or nil if not started.
func (c *Component) Client() *goredis.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client
}

// Addr returns the server address, or "" if not started.
func (c *Component) Addr() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.mini == nil {
		return ""
	}
	return c.mini.Addr()
}

// Server returns the miniredis instance for direct inspection.
func (c *Component) Server() *miniredis.Miniredis {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mini
}

// Name returns the component name.
func (c *Component) Name() string { return "redis-test" }

// Start launches the in-memory Redis server.
func (c *Component) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return fmt.Errorf("component already started")
	}

	mini, err := miniredis.Run()
	if err != nil {
		return fmt.Errorf("failed to start miniredis: %w", err)
	}

	c.mini = mini
	c.client = goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	c.started = true
	return nil
}

// Stop shuts down the in-memory Redis server.
func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return nil
	}
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.mini != nil {
		c.mini.Close()
	}
	c.client, c.mini = nil, nil
	c.started = false
	return nil
}

// Health returns the health status.
func (c *Component) Health(_ context.Context) component.Health {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.started {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: "not started",
		}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Reset flushes all keys.
func (c *Component) Reset(_ context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.started {
		return fmt.Errorf("component not started")
	}
	c.mini.FlushAll()
	return nil
}

// Snapshot captures every string, hash and set key.
func (c *Component) Snapshot(_ context.Context) (interface{}, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.started {
		return nil, fmt.Errorf("component not started")
	}

	snap := make(Snapshot)
	for _, key := range c.mini.Keys() {
		st := keyState{kind: c.mini.Type(key)}
		switch st.kind {
		case "string":
			v, err := c.mini.Get(key)
			if err != nil {
				return nil, fmt.Errorf("snapshot %q: %w", key, err)
			}
			st.value = v
		case "hash":
			fields, err := c.mini.HKeys(key)
			if err != nil {
				return nil, fmt.Errorf("snapshot %q: %w", key, err)
			}
			st.hash = make(map[string]string, len(fields))
			for _, f := range fields {
				st.hash[f] = c.mini.HGet(key, f)
			}
		case "set":
			members, err := c.mini.Members(key)
			if err != nil {
				return nil, fmt.Errorf("snapshot %q: %w", key, err)
			}
			st.member = members
		default:
			return nil, fmt.Errorf("snapshot %q: unsupported type %s", key, st.kind)
		}
		snap[key] = st
	}
	return snap, nil
}

// Restore replaces the server content with a previous Snapshot.
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

	c.mini.FlushAll()
	for key, st := range snapshot {
		switch st.kind {
		case "string":
			if err := c.mini.Set(key, st.value); err != nil {
				return fmt.Errorf("failed to restore key %q: %w", key, err)
			}
		case "hash":
			for f, v := range st.hash {
				c.mini.HSet(key, f, v)
			}
		case "set":
			if _, err := c.mini.SetAdd(key, st.member...); err != nil {
				return fmt.Errorf("failed to restore key %q: %w", key, err)
			}
		}
	}
	return nil
}
