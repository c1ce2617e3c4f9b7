package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/viant/schedsim/progress"
	"github.com/viant/schedsim/service/event"
	"github.com/viant/schedsim/tracing"
)

type producer struct {
	id          int
	count       int
	service     *Service
	coordinator *Coordinator
	logger      zerolog.Logger
}

func (w *producer) run(ctx context.Context) (err error) {
	ctx, span := tracing.StartSpan(ctx, fmt.Sprintf("pipeline.producer %d", w.id), tracing.KindProducer)
	defer func() { tracing.EndSpan(span, err) }()
	span.WithInt("count", w.count)

	w.logger.Debug().Int("producer", w.id).Int("count", w.count).Msg("producer started")
	for i := 0; i < w.count; i++ {
		p := w.service.generator.Next(w.coordinator.NextID())
		if err = w.service.sleep(ctx, w.service.config.ProducerDelay); err != nil {
			return err
		}
		// p belongs to the consumer once published
		w.service.publisher.Emit(ctx, event.TypeProduced, p.ID, p.ArrivalTime, *p.Clone())
		w.logger.Debug().
			Int("producer", w.id).
			Int("process", p.ID).
			Int("burst", p.BurstTime).
			Int("priority", p.Priority).
			Str("maxDemand", p.MaxDemand.String()).
			Msg("process produced")
		if err = w.coordinator.Queue().Publish(ctx, p); err != nil {
			return fmt.Errorf("producer %d: failed to publish process: %w", w.id, err)
		}
		progress.UpdateCtx(ctx, progress.Delta{Produced: 1})
	}
	w.logger.Debug().Int("producer", w.id).Msg("producer finished")
	return nil
}

type consumer struct {
	count       int
	service     *Service
	coordinator *Coordinator
	registrar   Registrar
	logger      zerolog.Logger
}

func (w *consumer) run(ctx context.Context) (err error) {
	ctx, span := tracing.StartSpan(ctx, "pipeline.consumer", tracing.KindConsumer)
	defer func() { tracing.EndSpan(span, err) }()

	for i := 0; i < w.count; i++ {
		p, cErr := w.coordinator.Queue().Consume(ctx)
		if cErr != nil {
			return fmt.Errorf("consumer: failed to consume: %w", cErr)
		}
		progress.UpdateCtx(ctx, progress.Delta{Consumed: 1})
		if err = w.registrar.Add(ctx, p); err != nil {
			return fmt.Errorf("consumer: failed to register process %d: %w", p.ID, err)
		}
		w.logger.Debug().Int("process", p.ID).Int("remaining", w.count-i-1).Msg("process registered")
		if err = w.service.sleep(ctx, w.service.config.ConsumerDelay); err != nil {
			return err
		}
	}
	return nil
}
