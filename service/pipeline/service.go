package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/viant/schedsim/internal/idgen"
	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/service/event"
	"github.com/viant/schedsim/service/messaging/memory"
	"github.com/viant/schedsim/tracing"
	"golang.org/x/sync/errgroup"
)

// Registrar admits consumed descriptors.
type Registrar interface {
	Add(ctx context.Context, p *model.Process) error
}

// Service runs producers and the consumer
type Service struct {
	config    Config
	generator *Generator
	logger    zerolog.Logger
	publisher *event.Publisher[model.Process]
}

// New creates a pipeline service
func New(options ...Option) (*Service, error) {
	s := &Service{
		config:    DefaultConfig(),
		logger:    zerolog.Nop(),
		publisher: event.NewPublisher[model.Process](),
	}
	for _, opt := range options {
		opt(s)
	}
	s.config.Normalize(s.logger)
	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline config: %w", err)
	}
	if s.generator == nil {
		s.generator = NewGenerator(s.config.Generator, 0)
	}
	return s, nil
}

// Config returns the effective configuration.
func (s *Service) Config() Config {
	return s.config
}

// Run generates TotalProcesses descriptors on the configured producers and
// registers every one of them with registrar. It returns once all workers
// have joined; the first worker error is returned.
func (s *Service) Run(ctx context.Context, registrar Registrar) (err error) {
	if registrar == nil {
		return fmt.Errorf("registrar is required")
	}
	ctx, span := tracing.StartSpan(ctx, "pipeline.Run", tracing.KindInternal)
	defer func() { tracing.EndSpan(span, err) }()

	coordinator := NewCoordinator(idgen.New(), memory.NewQueue[model.Process](memory.Config{Capacity: s.config.BufferSize}))
	span.WithAttributes(map[string]string{"run.id": coordinator.RunID}).
		WithInt("producers", s.config.Producers).
		WithInt("total", s.config.TotalProcesses)
	logger := s.logger.With().Str("run", coordinator.RunID).Logger()
	logger.Info().
		Int("producers", s.config.Producers).
		Int("bufferSize", s.config.BufferSize).
		Int("total", s.config.TotalProcesses).
		Msg("pipeline started")

	group, gctx := errgroup.WithContext(ctx)
	for i := 0; i < s.config.Producers; i++ {
		w := &producer{id: i + 1, count: s.config.share(i), service: s, coordinator: coordinator, logger: logger}
		group.Go(func() error { return w.run(gctx) })
	}
	c := &consumer{count: s.config.TotalProcesses, service: s, coordinator: coordinator, registrar: registrar, logger: logger}
	group.Go(func() error { return c.run(gctx) })

	err = group.Wait()
	coordinator.Finish()
	if err != nil {
		logger.Error().Err(err).Msg("pipeline failed")
		return err
	}
	logger.Info().Msg("all producers and consumer finished")
	return nil
}

// sleep pauses for a random duration within r unless ctx is done first.
func (s *Service) sleep(ctx context.Context, r DelayRange) error {
	d := s.generator.Delay(r)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
