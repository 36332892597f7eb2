// Package store opens the attribute store that step configurations are saved
// to, choosing the backend from configuration.
//
// Three backends are registered by default: "memory" (in-process, lost on
// exit), "redis" and "database" (SQLite or PostgreSQL through GORM). Every
// backend is wrapped by repository.Instrument, so store calls are traced and
// counted the same way whatever sits underneath.
//
//	st, err := store.Open(ctx, cfg, log, metrics)
//	if err != nil {
//	    return err
//	}
//	defer st.Stop(ctx)
//	err = meta.SaveRep(ctx, st.Repository(), pipelineID, stepID)
//
// Store is itself a component.Component and can be handed to a
// component.Registry instead of being started directly.
package store
