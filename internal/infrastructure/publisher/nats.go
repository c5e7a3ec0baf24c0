package publisher

import (
	"context"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// NatsPublisher publishes events on <subject>.<event type>
type NatsPublisher struct {
	conn    *nats.Conn
	subject string
	logger  *logger.Logger
}

// NewNatsPublisher connects to the NATS server
func NewNatsPublisher(url, token, subject string, log *logger.Logger) (*NatsPublisher, error) {
	if url == "" {
		url = nats.DefaultURL
	}
	if subject == "" {
		subject = "casino.events"
	}

	opts := []nats.Option{
		nats.Name("casino-outbox"),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	log.Info("Connected to NATS", zap.String("url", url), zap.String("subject", subject))

	return &NatsPublisher{conn: conn, subject: subject, logger: log}, nil
}

// Publish sends the event and flushes so the server has it before we mark it processed
func (p *NatsPublisher) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	body, err := encode(event)
	if err != nil {
		return err
	}

	subject := p.subject + "." + strings.ToLower(event.Type)
	if err := p.conn.Publish(subject, body); err != nil {
		return fmt.Errorf("failed to publish event %s to nats: %w", event.ID, err)
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush nats connection: %w", err)
	}
	return nil
}

// Close drains and closes the connection
func (p *NatsPublisher) Close() error {
	return p.conn.Drain()
}
