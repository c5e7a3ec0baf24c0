package outbox

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Config tunes the processor loop
type Config struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// Processor implements domain.OutboxProcessor
type Processor struct {
	outboxRepo domain.OutboxRepository
	publisher  domain.EventPublisher
	logger     *logger.Logger
	interval   time.Duration
	batchSize  int
	maxRetries int

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.RWMutex
	isRunning bool
}

// NewProcessor creates a new outbox processor
func NewProcessor(
	outboxRepo domain.OutboxRepository,
	publisher domain.EventPublisher,
	logger *logger.Logger,
	cfg Config,
) *Processor {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Processor{
		outboxRepo: outboxRepo,
		publisher:  publisher,
		logger:     logger,
		interval:   cfg.Interval,
		batchSize:  cfg.BatchSize,
		maxRetries: cfg.MaxRetries,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// ProcessEvents processes all pending events
func (p *Processor) ProcessEvents() error {
	if err := p.checkCancellation(); err != nil {
		return err
	}

	events, err := p.outboxRepo.GetPendingEvents(p.ctx, p.batchSize)
	if err != nil {
		p.logger.Error("Failed to get pending events", zap.Error(err))
		return err
	}

	for _, event := range events {
		if err := p.checkCancellation(); err != nil {
			return err
		}

		if err := p.ProcessEvent(event); err != nil {
			p.logger.Error("Failed to process event",
				zap.String("eventID", event.ID),
				zap.String("eventType", event.Type),
				zap.Int("retryCount", event.RetryCount),
				zap.Error(err))

			if event.RetryCount+1 < p.maxRetries {
				if retryErr := p.outboxRepo.IncrementRetryCount(p.ctx, event.ID); retryErr != nil {
					p.logger.Error("Failed to increment retry count", zap.Error(retryErr))
				}
			} else {
				if failErr := p.outboxRepo.MarkAsFailed(p.ctx, event.ID, err.Error()); failErr != nil {
					p.logger.Error("Failed to mark event as failed", zap.Error(failErr))
				}
			}
		}
	}

	return nil
}

// ProcessEvent publishes a single outbox event and marks it processed
func (p *Processor) ProcessEvent(event *domain.OutboxEvent) error {
	p.logger.Debug("Processing outbox event",
		zap.String("eventID", event.ID),
		zap.String("eventType", event.Type))

	switch event.Type {
	case domain.EventTypeRoundSettled, domain.EventTypeBlackjackHandFinished:
	default:
		p.logger.Warn("Unknown event type",
			zap.String("eventID", event.ID),
			zap.String("eventType", event.Type))
		return fmt.Errorf("unknown event type: %s", event.Type)
	}

	if err := p.publisher.Publish(p.ctx, event); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return p.outboxRepo.MarkAsProcessed(p.ctx, event.ID)
}

// checkCancellation checks if the processor has been cancelled
func (p *Processor) checkCancellation() error {
	select {
	case <-p.ctx.Done():
		return fmt.Errorf("processor cancelled")
	default:
		return nil
	}
}

// StartBackgroundProcessing starts the background processing loop
func (p *Processor) StartBackgroundProcessing() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isRunning {
		p.logger.Warn("Outbox processor is already running")
		return
	}

	p.isRunning = true
	p.wg.Add(1)

	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.logger.Info("Outbox background processing started", zap.Duration("interval", p.interval))

		for {
			select {
			case <-p.ctx.Done():
				return
			case <-ticker.C:
				if err := p.ProcessEvents(); err != nil {
					p.logger.Error("Background processing failed", zap.Error(err))
				}
			}
		}
	}()
}

// StopBackgroundProcessing stops the background processing loop
func (p *Processor) StopBackgroundProcessing() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isRunning {
		p.logger.Warn("Outbox processor is not running")
		return
	}

	p.logger.Info("Stopping outbox background processing...")
	p.cancel()
	p.wg.Wait()
	p.isRunning = false
	p.logger.Info("Outbox background processing stopped")
}
