package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/xesmeta/component"
	"github.com/kbukum/xesmeta/logger"
	"github.com/kbukum/xesmeta/observability"
)

// App holds the infrastructure of one CLI invocation.
type App[C Config] struct {
	Name       string
	Version    string
	Cfg        C
	Components *component.Registry
	Logger     *logger.Logger
	Metrics    *observability.Metrics

	tracer          *sdktrace.TracerProvider
	meter           *sdkmetric.MeterProvider
	gracefulTimeout time.Duration
	onStart         []Hook
	onStop          []Hook
}

// NewApp applies defaults, validates the config, initializes the logger and,
// when cfg implements TelemetryConfig, the tracer and meter providers.
func NewApp[C Config](ctx context.Context, cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	base := cfg.GetServiceConfig()
	o := resolveOptions(opts)

	log := o.logger
	if log == nil {
		logger.Init(&base.Logging)
		log = logger.GetGlobalLogger()
	}

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		Components:      component.NewRegistry(log),
		Logger:          log,
		gracefulTimeout: o.gracefulTimeout,
	}
	if err := app.initTelemetry(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

func (a *App[C]) initTelemetry(ctx context.Context) error {
	if tc, ok := any(a.Cfg).(TelemetryConfig); ok {
		base := a.Cfg.GetServiceConfig()
		tcfg, mcfg := tc.Telemetry()
		fillService(&tcfg.ServiceName, &tcfg.ServiceVersion, &tcfg.Environment, base.Name, a.Version, base.Environment)
		fillService(&mcfg.ServiceName, &mcfg.ServiceVersion, &mcfg.Environment, base.Name, a.Version, base.Environment)

		tp, err := observability.InitTracer(ctx, tcfg, a.Logger)
		if err != nil {
			return fmt.Errorf("tracing: %w", err)
		}
		mp, err := observability.InitMeter(ctx, mcfg, a.Logger)
		if err != nil {
			if tp != nil {
				_ = tp.Shutdown(ctx)
			}
			return fmt.Errorf("metrics: %w", err)
		}
		a.tracer, a.meter = tp, mp
	}

	metrics, err := observability.NewMetrics(nil)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	a.Metrics = metrics
	return nil
}

func fillService(name, version, env *string, baseName, baseVersion, baseEnv string) {
	if *name == "" {
		*name = baseName
	}
	if *version == "" {
		*version = baseVersion
	}
	if *env == "" {
		*env = baseEnv
	}
}

// RegisterComponent adds a component to the application's registry.
func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// ReadyCheck verifies that all registered components are healthy.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	var unhealthy []string
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Healthy() {
			continue
		}
		detail := h.Name + "=" + string(h.Status)
		if h.Message != "" {
			detail += "(" + h.Message + ")"
		}
		unhealthy = append(unhealthy, detail)
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("unhealthy components: %v", unhealthy)
	}
	return nil
}

// RunTask starts the components, runs the OnStart hooks and then task, and
// always shuts down afterwards. SIGINT and SIGTERM cancel the task's
// context. The task's error wins over a shutdown error.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	taskCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	taskErr := a.startup(taskCtx)
	if taskErr == nil {
		taskErr = task(taskCtx)
	}

	if stopErr := a.Shutdown(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

func (a *App[C]) startup(ctx context.Context) error {
	start := time.Now()
	a.Logger.Debug("Starting", logger.Fields("name", a.Name, "version", a.Version))

	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("failed to start components: %w", err)
	}
	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}
	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", logger.Fields(logger.FieldError, err.Error()))
	}

	for _, d := range a.Components.Describe() {
		a.Logger.Debug("Component ready", logger.Fields(
			logger.FieldComponent, d.Name,
			"type", d.Type,
			"details", d.Details,
		))
	}
	a.Logger.Debug("Started", logger.Fields(logger.FieldDuration, time.Since(start).Milliseconds()))
	return nil
}

// Shutdown runs the OnStop hooks, stops the components in reverse order and
// flushes the telemetry providers, all within the graceful timeout.
func (a *App[C]) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var errs []error
	if err := runHooks(ctx, a.onStop); err != nil {
		errs = append(errs, err)
	}
	if err := a.Components.StopAll(ctx); err != nil {
		errs = append(errs, err)
	}
	if a.meter != nil {
		if err := a.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
		a.meter = nil
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
		a.tracer = nil
	}

	err := errors.Join(errs...)
	if err != nil {
		a.Logger.Error("Shutdown completed with errors", logger.Fields(logger.FieldError, err.Error()))
	}
	return err
}
