// Package testutil extends the component lifecycle with test hooks.
//
// A TestComponent can be reset between cases and snapshotted so a test can
// roll back to a known state. T wires start and stop into testing.T:
//
//	func TestSave(t *testing.T) {
//	    store := testutil.NewMemoryStore()
//	    testutil.T(t).Setup(store)
//	    ...
//	}
//
// Backend-specific test components live next to their backends, in
// redis/testutil and database/testutil.
package testutil
