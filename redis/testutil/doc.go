// Package testutil provides an in-memory Redis for tests, backed by
// miniredis.
//
//	mini := testutil.NewComponent()
//	roottestutil.T(t).Setup(mini)
//	repo := redis.NewRepository(redis.Wrap(mini.Client(), nil), "")
//
// Snapshot and Restore cover string, hash and set keys, which is
// everything the attribute store writes.
package testutil
