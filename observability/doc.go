// Package observability wires OpenTelemetry tracing and metrics for
// attribute store traffic.
//
// InitTracer and InitMeter install global providers exporting over OTLP
// HTTP. Without them, StartSpan and Metrics fall back to the no-op
// providers, so instrumented code never has to check whether telemetry
// is enabled.
package observability
