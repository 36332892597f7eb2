package component

import "context"

// HealthStatus is the coarse state reported by Health.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health is one component's answer to a readiness check.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Healthy reports whether the status is StatusHealthy.
func (h Health) Healthy() bool { return h.Status == StatusHealthy }

// Component is a piece of infrastructure the Registry starts in
// registration order and stops in reverse.
type Component interface {
	// Name identifies the component in the registry and in health output.
	Name() string

	// Start connects or allocates. A component that fails Start is not stopped.
	Start(ctx context.Context) error

	// Stop releases what Start acquired.
	Stop(ctx context.Context) error

	// Health checks the component without changing its state.
	Health(ctx context.Context) Health
}

// Description summarises a component for startup logs, for example
// {Name: "store", Type: "redis", Details: "localhost:6379 db=0"}.
type Description struct {
	Name    string
	Type    string
	Details string
}

// Describable is implemented by components that can summarise their
// configuration.
type Describable interface {
	Describe() Description
}
