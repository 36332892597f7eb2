package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StepAttribute is one stored attribute of one step.
type StepAttribute struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	PipelineID string    `gorm:"size:64;not null;index"`
	StepID     string    `gorm:"size:64;not null;uniqueIndex:idx_step_attribute"`
	Name       string    `gorm:"size:128;not null;uniqueIndex:idx_step_attribute"`
	Value      string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// TableName pins the table name.
func (StepAttribute) TableName() string { return "step_attributes" }

// BeforeCreate generates a UUID if not already set.
func (a *StepAttribute) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
