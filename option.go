package schedsim

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/viant/afs"
	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/service/event"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures the Service.
type Option func(s *Service)

// WithConfig sets the configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithLogger sets the logger; otherwise one is built from Config.Logging
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = &logger
	}
}

// WithWriter sets where reports are written (stdout by default)
func WithWriter(w io.Writer) Option {
	return func(s *Service) {
		s.writer = w
	}
}

// WithFileSystem sets the afs service used for configs, workloads and report
// uploads
func WithFileSystem(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithListeners registers listeners for pipeline and scheduling events
func WithListeners(listeners ...event.Listener[model.Process]) Option {
	return func(s *Service) {
		s.listeners = append(s.listeners, listeners...)
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile is empty the
// traces are written to stdout.
func WithTracing(outputFile string) Option {
	return func(s *Service) {
		s.tracing = &TracingConfig{Enabled: true, OutputFile: outputFile}
	}
}

// WithTracingExporter configures OpenTelemetry tracing with a custom exporter.
func WithTracingExporter(exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		s.tracingExporter = exporter
	}
}
