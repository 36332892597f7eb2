package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kbukum/xesmeta/component"
	"github.com/kbukum/xesmeta/database"
	"github.com/kbukum/xesmeta/logger"
	"github.com/kbukum/xesmeta/redis"
	"github.com/kbukum/xesmeta/repository"
)

// Backend is a startable attribute store. Store must only be called after a
// successful Start.
type Backend interface {
	component.Component
	Store() repository.Repository
}

// Factory builds an unstarted backend from the store configuration.
type Factory func(cfg Config, log *logger.Logger) (Backend, error)

// Registry maps backend names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Create builds the backend named by cfg.Backend.
func (r *Registry) Create(cfg Config, log *logger.Logger) (Backend, error) {
	r.mu.RLock()
	f, ok := r.factories[cfg.Backend]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("store backend %q not registered (have %v)", cfg.Backend, r.Names())
	}
	return f(cfg, log)
}

// Names returns the registered backend names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry holds the built-in backends.
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.Register(BackendMemory, func(Config, *logger.Logger) (Backend, error) {
		return NewMemoryBackend(repository.NewMemory()), nil
	})
	DefaultRegistry.Register(BackendRedis, func(cfg Config, log *logger.Logger) (Backend, error) {
		return redisBackend{redis.NewComponent(cfg.Redis, log)}, nil
	})
	DefaultRegistry.Register(BackendDatabase, func(cfg Config, log *logger.Logger) (Backend, error) {
		return databaseBackend{database.NewComponent(cfg.Database, log)}, nil
	})
}

type redisBackend struct{ *redis.Component }

func (b redisBackend) Store() repository.Repository { return b.Repository() }

type databaseBackend struct{ *database.Component }

func (b databaseBackend) Store() repository.Repository { return b.Repository() }
