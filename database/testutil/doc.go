// Package testutil provides an in-memory SQLite database for tests.
//
//	db := testutil.NewComponent().WithModels(&database.StepAttribute{})
//	roottestutil.T(t).Setup(db)
//	repo := database.NewRepository(database.Wrap(db.DB(), nil))
//
// Reset empties every table, Snapshot and Restore copy table rows, and the
// fixture helpers load and count rows directly.
package testutil
