package store

import (
	"context"
	"sync"

	"github.com/kbukum/xesmeta/component"
	apperrors "github.com/kbukum/xesmeta/errors"
	"github.com/kbukum/xesmeta/logger"
	"github.com/kbukum/xesmeta/observability"
	"github.com/kbukum/xesmeta/repository"
)

// Store is the configured backend behind an instrumented repository.
type Store struct {
	cfg     Config
	backend Backend
	metrics *observability.Metrics
	log     *logger.Logger

	mu   sync.RWMutex
	repo *repository.Instrumented
}

var (
	_ component.Component   = (*Store)(nil)
	_ component.Describable = (*Store)(nil)
)

// Option configures New.
type Option func(*options)

type options struct {
	registry *Registry
	metrics  *observability.Metrics
}

// WithRegistry builds the backend from r instead of DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithMetrics records store operations on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// New validates cfg and builds the backend without connecting.
func New(cfg Config, log *logger.Logger, opts ...Option) (*Store, error) {
	o := options{registry: DefaultRegistry}
	for _, opt := range opts {
		opt(&o)
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	backend, err := o.registry.Create(cfg, log)
	if err != nil {
		return nil, apperrors.InvalidInput("store.backend", err.Error()).WithCause(err)
	}
	return &Store{
		cfg:     cfg,
		backend: backend,
		metrics: o.metrics,
		log:     log.WithComponent("store"),
	}, nil
}

// Open is New followed by Start.
func Open(ctx context.Context, cfg Config, log *logger.Logger, opts ...Option) (*Store, error) {
	s, err := New(cfg, log, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Start(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Name implements component.Component.
func (s *Store) Name() string { return "store" }

// Backend returns the configured backend name.
func (s *Store) Backend() string { return s.cfg.Backend }

// Start connects the backend. Calling it again is a no-op.
func (s *Store) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo != nil {
		return nil
	}
	if err := s.backend.Start(ctx); err != nil {
		s.log.Error("Store backend failed to start", logger.Fields(
			logger.FieldBackend, s.cfg.Backend,
			logger.FieldError, err.Error(),
		))
		return apperrors.ConnectionFailed(s.cfg.Backend).WithCause(err)
	}
	s.repo = repository.Instrument(s.backend.Store(), s.cfg.Backend, s.metrics, s.log)
	s.log.Info("Store opened", logger.Fields(logger.FieldBackend, s.cfg.Backend))
	return nil
}

// Stop disconnects the backend.
func (s *Store) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo == nil {
		return nil
	}
	s.repo = nil
	return s.backend.Stop(ctx)
}

// Health reports the backend's health under the store's name.
func (s *Store) Health(ctx context.Context) component.Health {
	h := s.backend.Health(ctx)
	h.Name = s.Name() + "/" + s.cfg.Backend
	return h
}

// Describe implements component.Describable.
func (s *Store) Describe() component.Description {
	d := component.Description{Name: "Attribute store", Type: s.cfg.Backend}
	if inner, ok := s.backend.(component.Describable); ok {
		d.Details = inner.Describe().Details
	}
	return d
}

// Repository returns the instrumented attribute store, or nil before Start.
func (s *Store) Repository() repository.Repository {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.repo == nil {
		return nil
	}
	return s.repo
}

// StepsOf lists a pipeline's steps when the backend supports it.
func (s *Store) StepsOf(ctx context.Context, pipelineID repository.ObjectID) ([]repository.ObjectID, error) {
	s.mu.RLock()
	repo := s.repo
	s.mu.RUnlock()
	if repo == nil {
		return nil, apperrors.ConnectionFailed(s.cfg.Backend)
	}
	return repo.StepsOf(ctx, pipelineID)
}
