package store

import (
	"context"
	"fmt"

	"github.com/kbukum/xesmeta/component"
	"github.com/kbukum/xesmeta/repository"
)

// MemoryBackend serves a repository.Memory. It has nothing to start.
type MemoryBackend struct {
	mem *repository.Memory
}

var (
	_ Backend               = (*MemoryBackend)(nil)
	_ component.Describable = (*MemoryBackend)(nil)
)

// NewMemoryBackend wraps mem.
func NewMemoryBackend(mem *repository.Memory) *MemoryBackend {
	return &MemoryBackend{mem: mem}
}

func (b *MemoryBackend) Name() string                 { return BackendMemory }
func (b *MemoryBackend) Start(context.Context) error  { return nil }
func (b *MemoryBackend) Stop(context.Context) error   { return nil }
func (b *MemoryBackend) Store() repository.Repository { return b.mem }
func (b *MemoryBackend) Memory() *repository.Memory   { return b.mem }

func (b *MemoryBackend) Health(context.Context) component.Health {
	return component.Health{
		Name:    b.Name(),
		Status:  component.StatusHealthy,
		Message: fmt.Sprintf("writes=%d", b.mem.Writes()),
	}
}

func (b *MemoryBackend) Describe() component.Description {
	return component.Description{Name: "Memory store", Type: BackendMemory, Details: "in-process, not persisted"}
}
