package publisher

import (
	"context"

	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// LogPublisher writes events to the application log
type LogPublisher struct {
	logger *logger.Logger
}

// NewLogPublisher creates a log publisher
func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{logger: log}
}

// Publish logs the event
func (p *LogPublisher) Publish(_ context.Context, event *domain.OutboxEvent) error {
	p.logger.Info("Event published",
		zap.String("eventID", event.ID),
		zap.String("eventType", event.Type),
		zap.Any("data", event.Data))
	return nil
}

// Close is a no-op
func (p *LogPublisher) Close() error {
	return nil
}
