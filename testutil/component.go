package testutil

import (
	"context"

	"github.com/kbukum/xesmeta/component"
)

// TestComponent is a step store backend that a test can rewind. MemoryStore,
// redis/testutil.Component and database/testutil.Component implement it, so
// one Manager can start them together and reset the saved step
// configurations between cases.
type TestComponent interface {
	component.Component

	// Reset drops every stored step parameter and pipeline membership.
	Reset(ctx context.Context) error

	// Snapshot copies the stored step configurations. The value is opaque and
	// only meaningful to Restore on the same component.
	Snapshot(ctx context.Context) (interface{}, error)

	// Restore puts back the configurations captured by Snapshot. A snapshot
	// taken from a different backend is rejected.
	Restore(ctx context.Context, snapshot interface{}) error
}
