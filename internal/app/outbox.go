package app

import (
	"context"

	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/infrastructure/logger"
	"github.com/saradorri/casino/internal/infrastructure/outbox"
	"github.com/saradorri/casino/internal/infrastructure/publisher"
	"go.uber.org/fx"
)

// InitPublisher builds the event publisher selected by events.driver
func (a *application) InitPublisher(lc fx.Lifecycle, log *logger.Logger) (domain.EventPublisher, error) {
	pub, err := publisher.New(a.config.Events, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return pub.Close()
		},
	})
	return pub, nil
}

func (a *application) InitOutboxProcessor(
	outboxRepo domain.OutboxRepository,
	pub domain.EventPublisher,
	logger *logger.Logger,
) domain.OutboxProcessor {
	return outbox.NewProcessor(outboxRepo, pub, logger, outbox.Config{
		Interval:   a.config.Outbox.Interval,
		BatchSize:  a.config.Outbox.BatchSize,
		MaxRetries: a.config.Outbox.MaxRetries,
	})
}

// RegisterOutboxHooks ties the processor loop to the fx lifecycle
func (a *application) RegisterOutboxHooks(lc fx.Lifecycle, processor domain.OutboxProcessor) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			processor.StartBackgroundProcessing()
			return nil
		},
		OnStop: func(context.Context) error {
			processor.StopBackgroundProcessing()
			return nil
		},
	})
}
