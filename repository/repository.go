// Package repository defines the attribute store that step configurations
// are persisted to.
//
// A store is a flat key/value facility: every step owns a set of named
// string attributes, and every write also records which pipeline the step
// belongs to. Backends live in their own packages (redis, database); Memory
// is the in-process implementation used by tests and dry runs.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ObjectID is an opaque identifier of a pipeline or a step.
type ObjectID string

// NewObjectID returns a fresh random identifier.
func NewObjectID() ObjectID {
	return ObjectID(uuid.NewString())
}

// Valid reports whether id is non-empty.
func (id ObjectID) Valid() bool { return id != "" }

func (id ObjectID) String() string { return string(id) }

// ErrInvalidID is returned by stores when called with an empty identifier.
var ErrInvalidID = errors.New("repository: empty object id")

// Repository is the attribute store contract consumed by step configurations.
type Repository interface {
	// SaveStepAttribute stores value under name for the step, recording the
	// step as part of the pipeline. An existing value is overwritten.
	SaveStepAttribute(ctx context.Context, pipelineID, stepID ObjectID, name, value string) error

	// GetStepAttributeString returns the value stored under name for the step.
	// ok is false when nothing is stored; that is not an error.
	GetStepAttributeString(ctx context.Context, stepID ObjectID, name string) (value string, ok bool, err error)
}

// StepLister is implemented by stores that can enumerate a pipeline's steps.
type StepLister interface {
	StepsOf(ctx context.Context, pipelineID ObjectID) ([]ObjectID, error)
}

func checkIDs(ids ...ObjectID) error {
	for _, id := range ids {
		if !id.Valid() {
			return ErrInvalidID
		}
	}
	return nil
}
