// Package messaging defines how relayed outbox rows leave the process.
package messaging

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Message is one outbox row on its way out. Payload is the stored JSON document.
type Message struct {
	ID          string
	AggregateID string
	EventType   string
	Payload     string
	CreatedAt   time.Time
}

type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// LoggingPublisher writes each message to the log. It is the default when no broker is configured.
type LoggingPublisher struct {
	log *zap.Logger
}

func NewLoggingPublisher(log *zap.Logger) *LoggingPublisher {
	return &LoggingPublisher{log: log}
}

func (p *LoggingPublisher) Publish(_ context.Context, msg Message) error {
	p.log.Info("Outbox event published",
		zap.String("event_id", msg.ID),
		zap.String("event_type", msg.EventType),
		zap.String("aggregate_id", msg.AggregateID),
		zap.String("payload", msg.Payload),
	)
	return nil
}

var _ Publisher = (*LoggingPublisher)(nil)
