package xesstep

import (
	"context"

	apperrors "github.com/kbukum/xesmeta/errors"
	"github.com/kbukum/xesmeta/logger"
	"github.com/kbukum/xesmeta/observability"
	"github.com/kbukum/xesmeta/params"
	"github.com/kbukum/xesmeta/repository"
)

// SaveRep writes every present parameter as an attribute of stepID.
//
// OutputPath must be present; when it is absent nothing is written and
// MISSING_REQUIRED_PARAMETER is returned. An empty OutputPath is not
// written. The first store failure stops the save with
// REPOSITORY_SAVE_ERROR; attributes written before it stay written.
func (m *Meta) SaveRep(ctx context.Context, repo repository.Repository, pipelineID, stepID repository.ObjectID) (err error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanStepSave)
	defer func() {
		observability.SetSpanError(span, err)
		span.End()
	}()
	observability.SetSpanAttribute(ctx, observability.AttrPipelineID, pipelineID.String())
	observability.SetSpanAttribute(ctx, observability.AttrStepID, stepID.String())

	outputPath, ok := m.params.Get(params.OutputPath)
	if !ok {
		return apperrors.MissingParameter(params.OutputPath.String())
	}

	written := 0
	for _, name := range params.Names() {
		value, present := m.params.Get(name)
		if !present {
			continue
		}
		if name == params.OutputPath && outputPath == "" {
			continue
		}
		if err := repo.SaveStepAttribute(ctx, pipelineID, stepID, name.String(), value); err != nil {
			m.log.Warn("Step save failed", logger.Fields(
				logger.FieldStepID, stepID.String(),
				logger.FieldParameter, name.String(),
				logger.FieldError, err.Error(),
			))
			return apperrors.RepositorySave(stepID.String(), err).WithDetail("parameter", name.String())
		}
		written++
	}

	m.log.Debug(m.msgs.Get("XESStep.Log.Saved", stepID), logger.Fields(
		logger.FieldPipelineID, pipelineID.String(),
		logger.FieldStepID, stepID.String(),
		logger.FieldCount, written,
	))
	return nil
}

// ReadRep reads every parameter stored for stepID. A parameter with no
// stored value keeps its current value. Nothing changes unless every read
// succeeds; a store failure is reported as REPOSITORY_LOAD_ERROR.
func (m *Meta) ReadRep(ctx context.Context, repo repository.Repository, stepID repository.ObjectID) (err error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanStepRead)
	defer func() {
		observability.SetSpanError(span, err)
		span.End()
	}()
	observability.SetSpanAttribute(ctx, observability.AttrStepID, stepID.String())

	loaded := m.params.Clone()
	for _, name := range params.Names() {
		value, ok, err := repo.GetStepAttributeString(ctx, stepID, name.String())
		if err != nil {
			m.log.Warn("Step load failed", logger.Fields(
				logger.FieldStepID, stepID.String(),
				logger.FieldParameter, name.String(),
				logger.FieldError, err.Error(),
			))
			return apperrors.RepositoryLoad(stepID.String(), err).WithDetail("parameter", name.String())
		}
		if !ok {
			continue
		}
		if err := loaded.Set(name, value); err != nil {
			return apperrors.RepositoryLoad(stepID.String(), err)
		}
	}
	m.params = loaded

	m.log.Debug(m.msgs.Get("XESStep.Log.Loaded", stepID), logger.Fields(
		logger.FieldStepID, stepID.String(),
		logger.FieldCount, loaded.Len(),
	))
	return nil
}
