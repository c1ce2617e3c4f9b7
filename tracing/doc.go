// Package tracing wraps OpenTelemetry so that simulation runs, pipeline
// workers and scheduling passes can be traced without the rest of the code
// base importing the upstream packages directly. Until Init is called spans
// are no-ops.
package tracing
