package pipeline

import (
	"github.com/rs/zerolog"
	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/service/event"
)

// Option configures the pipeline service.
type Option func(*Service)

// WithConfig sets the pipeline configuration
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithGenerator sets the descriptor generator
func WithGenerator(generator *Generator) Option {
	return func(s *Service) {
		s.generator = generator
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithListeners registers listeners notified about produced and registered
// descriptors.
func WithListeners(listeners ...event.Listener[model.Process]) Option {
	return func(s *Service) {
		for _, l := range listeners {
			s.publisher.Subscribe(l)
		}
	}
}
