// Package publisher delivers outbox events to the configured channel.
package publisher

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/saradorri/casino/internal/config"
	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/infrastructure/logger"
)

// Supported event drivers
const (
	DriverLog     = "log"
	DriverWebhook = "webhook"
	DriverKafka   = "kafka"
	DriverNats    = "nats"
)

// Envelope is the wire form of an outbox event on every channel
type Envelope struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func encode(event *domain.OutboxEvent) ([]byte, error) {
	body, err := json.Marshal(Envelope{
		ID:         event.ID,
		Type:       event.Type,
		Data:       event.Data,
		OccurredAt: event.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode event %s: %w", event.ID, err)
	}
	return body, nil
}

// New builds the publisher selected by cfg.Driver
func New(cfg config.EventsConfig, log *logger.Logger) (domain.EventPublisher, error) {
	switch cfg.Driver {
	case "", DriverLog:
		return NewLogPublisher(log), nil
	case DriverWebhook:
		if cfg.WebhookURL == "" {
			return nil, fmt.Errorf("events.webhookURL is required for the webhook driver")
		}
		return NewWebhookPublisher(cfg.WebhookURL, log), nil
	case DriverKafka:
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
	case DriverNats:
		return NewNatsPublisher(cfg.NatsURL, cfg.NatsToken, cfg.NatsSubject, log)
	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.Driver)
	}
}
