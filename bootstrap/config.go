package bootstrap

import (
	"github.com/kbukum/xesmeta/config"
	"github.com/kbukum/xesmeta/observability"
)

// Config is satisfied by any struct embedding config.ServiceConfig.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}

// TelemetryConfig is implemented by configs that carry tracing and metrics
// sections. Without it telemetry stays disabled.
type TelemetryConfig interface {
	Telemetry() (observability.TracerConfig, observability.MeterConfig)
}
