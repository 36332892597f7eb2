package repository

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// Op names a Memory operation for failure injection.
type Op string

const (
	OpSave Op = "save"
	OpGet  Op = "get"
)

type failKey struct {
	op   Op
	name string
}

// Memory is an in-process Repository.
type Memory struct {
	mu        sync.RWMutex
	steps     map[ObjectID]map[string]string
	pipelines map[ObjectID]map[ObjectID]struct{}
	failures  map[failKey]error
	writes    int
}

var (
	_ Repository = (*Memory)(nil)
	_ StepLister = (*Memory)(nil)
)

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		steps:     make(map[ObjectID]map[string]string),
		pipelines: make(map[ObjectID]map[ObjectID]struct{}),
		failures:  make(map[failKey]error),
	}
}

// FailOn makes every op on attribute name return err. A nil err clears it.
func (m *Memory) FailOn(op Op, name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := failKey{op: op, name: name}
	if err == nil {
		delete(m.failures, k)
		return
	}
	m.failures[k] = err
}

// SaveStepAttribute implements Repository.
func (m *Memory) SaveStepAttribute(ctx context.Context, pipelineID, stepID ObjectID, name, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkIDs(pipelineID, stepID); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failures[failKey{op: OpSave, name: name}]; err != nil {
		return err
	}
	attrs, ok := m.steps[stepID]
	if !ok {
		attrs = make(map[string]string)
		m.steps[stepID] = attrs
	}
	attrs[name] = value

	members, ok := m.pipelines[pipelineID]
	if !ok {
		members = make(map[ObjectID]struct{})
		m.pipelines[pipelineID] = members
	}
	members[stepID] = struct{}{}
	m.writes++
	return nil
}

// GetStepAttributeString implements Repository.
func (m *Memory) GetStepAttributeString(ctx context.Context, stepID ObjectID, name string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if err := checkIDs(stepID); err != nil {
		return "", false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.failures[failKey{op: OpGet, name: name}]; err != nil {
		return "", false, err
	}
	v, ok := m.steps[stepID][name]
	return v, ok, nil
}

// StepsOf implements StepLister. Steps are returned sorted.
func (m *Memory) StepsOf(ctx context.Context, pipelineID ObjectID) ([]ObjectID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.pipelines[pipelineID])), nil
}

// Attributes returns a copy of everything stored for a step.
func (m *Memory) Attributes(stepID ObjectID) map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.steps[stepID])
}

// Writes returns how many attribute writes succeeded.
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// MemorySnapshot is a deep copy of a Memory store's content.
type MemorySnapshot struct {
	Steps     map[ObjectID]map[string]string
	Pipelines map[ObjectID][]ObjectID
}

// Snapshot copies the stored data. Injected failures are not included.
func (m *Memory) Snapshot() MemorySnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := MemorySnapshot{
		Steps:     make(map[ObjectID]map[string]string, len(m.steps)),
		Pipelines: make(map[ObjectID][]ObjectID, len(m.pipelines)),
	}
	for id, attrs := range m.steps {
		snap.Steps[id] = maps.Clone(attrs)
	}
	for id, members := range m.pipelines {
		snap.Pipelines[id] = slices.Sorted(maps.Keys(members))
	}
	return snap
}

// Restore replaces the stored data with snap.
func (m *Memory) Restore(snap MemorySnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.steps = make(map[ObjectID]map[string]string, len(snap.Steps))
	for id, attrs := range snap.Steps {
		m.steps[id] = maps.Clone(attrs)
	}
	m.pipelines = make(map[ObjectID]map[ObjectID]struct{}, len(snap.Pipelines))
	for id, members := range snap.Pipelines {
		set := make(map[ObjectID]struct{}, len(members))
		for _, step := range members {
			set[step] = struct{}{}
		}
		m.pipelines[id] = set
	}
}

// Reset drops all stored data and injected failures.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps = make(map[ObjectID]map[string]string)
	m.pipelines = make(map[ObjectID]map[ObjectID]struct{})
	m.failures = make(map[failKey]error)
	m.writes = 0
}
