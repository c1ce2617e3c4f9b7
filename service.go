package schedsim

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/viant/afs"
	"github.com/viant/schedsim/internal/logging"
	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/service/dao/workload"
	"github.com/viant/schedsim/service/event"
	"github.com/viant/schedsim/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Name and Version identify the simulator in traces.
const (
	Name    = "schedsim"
	Version = "0.1.0"
)

// Service represents the simulator service
type Service struct {
	config          *Config
	logger          *zerolog.Logger
	writer          io.Writer
	fs              afs.Service
	listeners       []event.Listener[model.Process]
	tracing         *TracingConfig
	tracingExporter sdktrace.SpanExporter
	runtime         *Runtime
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if s.logger == nil {
		logger, err := logging.New(s.config.Logging, os.Stderr)
		if err != nil {
			return err
		}
		s.logger = &logger
	}
	if s.writer == nil {
		s.writer = os.Stdout
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	if err := s.initTracing(); err != nil {
		return fmt.Errorf("failed to initialise tracing: %w", err)
	}
	s.runtime = &Runtime{
		config:    s.config,
		logger:    *s.logger,
		writer:    s.writer,
		fs:        s.fs,
		workloads: workload.New(s.fs),
		listeners: s.listeners,
	}
	return nil
}

func (s *Service) initTracing() error {
	if s.tracingExporter != nil {
		return tracing.InitWithExporter(Name, Version, s.tracingExporter)
	}
	config := s.tracing
	if config == nil {
		config = &s.config.Tracing
	}
	if !config.Enabled {
		return nil
	}
	return tracing.Init(Name, Version, config.OutputFile)
}

// Config returns the effective configuration
func (s *Service) Config() *Config {
	return s.config
}

// Runtime returns the simulator runtime
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// New creates a simulator service
func New(options ...Option) (*Service, error) {
	ret := &Service{}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}
