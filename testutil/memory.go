package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/xesmeta/component"
	"github.com/kbukum/xesmeta/repository"
)

// MemoryStore is a TestComponent around repository.Memory.
type MemoryStore struct {
	mu      sync.RWMutex
	store   *repository.Memory
	started bool
}

var _ TestComponent = (*MemoryStore)(nil)

// NewMemoryStore returns a stopped MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{store: repository.NewMemory()}
}

// Store returns the underlying store. It is usable even before Start.
func (m *MemoryStore) Store() *repository.Memory {
	return m.store
}

func (m *MemoryStore) Name() string { return "memory-store" }

func (m *MemoryStore) Start(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
	return nil
}

func (m *MemoryStore) Stop(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = false
	return nil
}

func (m *MemoryStore) Health(_ context.Context) component.Health {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.started {
		return component.Health{Name: m.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: m.Name(), Status: component.StatusHealthy}
}

func (m *MemoryStore) Reset(_ context.Context) error {
	m.store.Reset()
	return nil
}

func (m *MemoryStore) Snapshot(_ context.Context) (interface{}, error) {
	return m.store.Snapshot(), nil
}

func (m *MemoryStore) Restore(_ context.Context, snap interface{}) error {
	s, ok := snap.(repository.MemorySnapshot)
	if !ok {
		return fmt.Errorf("invalid snapshot type: expected repository.MemorySnapshot, got %T", snap)
	}
	m.store.Restore(s)
	return nil
}
