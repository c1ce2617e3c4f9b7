package scheduler

import (
	"github.com/rs/zerolog"
	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/policy"
	"github.com/viant/schedsim/service/event"
	"github.com/viant/schedsim/service/ledger"
)

// Option configures the scheduler.
type Option func(*Service)

// WithLedger sets the resource ledger gating every dispatch
func WithLedger(l *ledger.Service) Option {
	return func(s *Service) {
		s.ledger = l
	}
}

// WithPolicy sets the default policy; a policy embedded in the Execute
// context takes precedence.
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithListeners registers listeners notified about dispatch, block,
// completion and forced termination.
func WithListeners(listeners ...event.Listener[model.Process]) Option {
	return func(s *Service) {
		for _, l := range listeners {
			s.publisher.Subscribe(l)
		}
	}
}
