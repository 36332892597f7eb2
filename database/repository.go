package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kbukum/xesmeta/repository"
)

const attributeResource = "step attribute"

// Repository is a repository.Repository backed by the step_attributes table.
type Repository struct {
	db *DB
}

var (
	_ repository.Repository = (*Repository)(nil)
	_ repository.StepLister = (*Repository)(nil)
)

// NewRepository returns a store on db. The table must already exist; see
// DB.AutoMigrate.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// SaveStepAttribute implements repository.Repository.
func (r *Repository) SaveStepAttribute(ctx context.Context, pipelineID, stepID repository.ObjectID, name, value string) error {
	if !pipelineID.Valid() || !stepID.Valid() {
		return repository.ErrInvalidID
	}
	row := StepAttribute{
		PipelineID: pipelineID.String(),
		StepID:     stepID.String(),
		Name:       name,
		Value:      value,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "step_id"}, {Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":       value,
			"pipeline_id": row.PipelineID,
			"updated_at":  time.Now(),
		}),
	}).Create(&row).Error
	if err != nil {
		return FromDatabase(err, attributeResource)
	}
	return nil
}

// GetStepAttributeString implements repository.Repository.
func (r *Repository) GetStepAttributeString(ctx context.Context, stepID repository.ObjectID, name string) (string, bool, error) {
	if !stepID.Valid() {
		return "", false, repository.ErrInvalidID
	}
	var row StepAttribute
	err := r.db.WithContext(ctx).
		Where("step_id = ? AND name = ?", stepID.String(), name).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, FromDatabase(err, attributeResource)
	}
	return row.Value, true, nil
}

// StepsOf implements repository.StepLister. Steps are returned sorted.
func (r *Repository) StepsOf(ctx context.Context, pipelineID repository.ObjectID) ([]repository.ObjectID, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&StepAttribute{}).
		Distinct().
		Where("pipeline_id = ?", pipelineID.String()).
		Order("step_id").
		Pluck("step_id", &ids).Error
	if err != nil {
		return nil, FromDatabase(err, attributeResource)
	}
	out := make([]repository.ObjectID, len(ids))
	for i, id := range ids {
		out[i] = repository.ObjectID(id)
	}
	return out, nil
}

// Attributes returns every attribute stored for a step.
func (r *Repository) Attributes(ctx context.Context, stepID repository.ObjectID) (map[string]string, error) {
	var rows []StepAttribute
	if err := r.db.WithContext(ctx).Where("step_id = ?", stepID.String()).Find(&rows).Error; err != nil {
		return nil, FromDatabase(err, attributeResource)
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Name] = row.Value
	}
	return out, nil
}
