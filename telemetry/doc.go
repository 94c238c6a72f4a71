// Package telemetry wires the navigation scheduler's events into
// OpenTelemetry tracing and Prometheus metrics, both fully optional: a nil
// Tracer or nil Metrics disables the corresponding instrumentation with no
// behavioral change to the pipeline itself.
package telemetry
