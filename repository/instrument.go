package repository

import (
	"context"
	"errors"
	"time"

	"github.com/kbukum/xesmeta/logger"
	"github.com/kbukum/xesmeta/observability"
)

// ErrListUnsupported is returned by Instrumented.StepsOf when the wrapped
// store cannot enumerate steps.
var ErrListUnsupported = errors.New("repository: backend cannot list steps")

// Instrumented wraps a Repository with tracing, metrics and debug logging.
type Instrumented struct {
	next    Repository
	backend string
	metrics *observability.Metrics
	log     *logger.Logger
}

var (
	_ Repository = (*Instrumented)(nil)
	_ StepLister = (*Instrumented)(nil)
)

// Instrument wraps next. metrics and log may be nil.
func Instrument(next Repository, backend string, metrics *observability.Metrics, log *logger.Logger) *Instrumented {
	if log == nil {
		log = logger.Nop()
	}
	return &Instrumented{
		next:    next,
		backend: backend,
		metrics: metrics,
		log:     log.WithComponent("store").WithFields(logger.Fields(logger.FieldBackend, backend)),
	}
}

// Unwrap returns the wrapped store.
func (r *Instrumented) Unwrap() Repository { return r.next }

// SaveStepAttribute implements Repository.
func (r *Instrumented) SaveStepAttribute(ctx context.Context, pipelineID, stepID ObjectID, name, value string) error {
	ctx, span := observability.StartSpan(ctx, observability.SpanStoreSave)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrBackend, r.backend)
	observability.SetSpanAttribute(ctx, observability.AttrPipelineID, pipelineID.String())
	observability.SetSpanAttribute(ctx, observability.AttrStepID, stepID.String())
	observability.SetSpanAttribute(ctx, observability.AttrAttribute, name)

	start := time.Now()
	err := r.next.SaveStepAttribute(ctx, pipelineID, stepID, name, value)
	r.record(ctx, "save", err, true, time.Since(start))
	if err != nil {
		observability.SetSpanError(span, err)
		r.log.Debug("Attribute save failed", logger.Fields(
			logger.FieldStepID, stepID.String(),
			logger.FieldParameter, name,
			logger.FieldError, err.Error(),
		))
	}
	return err
}

// GetStepAttributeString implements Repository.
func (r *Instrumented) GetStepAttributeString(ctx context.Context, stepID ObjectID, name string) (string, bool, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanStoreGet)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrBackend, r.backend)
	observability.SetSpanAttribute(ctx, observability.AttrStepID, stepID.String())
	observability.SetSpanAttribute(ctx, observability.AttrAttribute, name)

	start := time.Now()
	v, ok, err := r.next.GetStepAttributeString(ctx, stepID, name)
	r.record(ctx, "get", err, ok, time.Since(start))
	if err != nil {
		observability.SetSpanError(span, err)
		r.log.Debug("Attribute read failed", logger.Fields(
			logger.FieldStepID, stepID.String(),
			logger.FieldParameter, name,
			logger.FieldError, err.Error(),
		))
		return "", false, err
	}
	observability.SetSpanAttribute(ctx, observability.AttrFound, ok)
	return v, ok, nil
}

// StepsOf implements StepLister when the wrapped store does.
func (r *Instrumented) StepsOf(ctx context.Context, pipelineID ObjectID) ([]ObjectID, error) {
	lister, ok := r.next.(StepLister)
	if !ok {
		return nil, ErrListUnsupported
	}
	start := time.Now()
	steps, err := lister.StepsOf(ctx, pipelineID)
	r.record(ctx, "list", err, true, time.Since(start))
	return steps, err
}

func (r *Instrumented) record(ctx context.Context, op string, err error, found bool, d time.Duration) {
	status := observability.StatusOK
	switch {
	case err != nil:
		status = observability.StatusError
	case !found:
		status = observability.StatusMissing
	}
	r.metrics.RecordStoreOp(ctx, r.backend, op, status, d)
}
