// Package bootstrap runs a finite task with the service infrastructure
// around it: validated configuration, the logger, OpenTelemetry providers
// and a component registry that is started before the task and stopped
// after it.
//
//	app, err := bootstrap.NewApp(ctx, &cfg)
//	if err != nil {
//	    return err
//	}
//	st, _ := store.New(cfg.Store, app.Logger, store.WithMetrics(app.Metrics))
//	_ = app.RegisterComponent(st)
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return meta.SaveRep(ctx, st.Repository(), pipelineID, stepID)
//	})
//
// SIGINT and SIGTERM cancel the task's context; shutdown still runs.
package bootstrap
