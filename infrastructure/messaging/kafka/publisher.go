// Package kafka relays outbox messages to a Kafka topic.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meusmedicamentos/config"
	"meusmedicamentos/infrastructure/messaging"

	jsoniter "github.com/json-iterator/go"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigFastest

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher keys messages by aggregate id so the events of one medication keep their order.
type Publisher struct {
	writer MessageWriter
	topic  string
	log    *zap.Logger
}

func NewPublisher(cfg config.KafkaConfig, log *zap.Logger) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka: topic is required")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
		Transport:    &kafka.Transport{ClientID: cfg.ClientID},
	}
	return NewPublisherWithWriter(writer, cfg.Topic, log), nil
}

func NewPublisherWithWriter(writer MessageWriter, topic string, log *zap.Logger) *Publisher {
	return &Publisher{writer: writer, topic: topic, log: log}
}

// Publish refuses payloads that are not valid JSON; the outbox marks them failed.
func (p *Publisher) Publish(ctx context.Context, msg messaging.Message) error {
	if !json.Valid([]byte(msg.Payload)) {
		return fmt.Errorf("kafka: payload of event %s is not valid JSON", msg.ID)
	}

	err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.AggregateID),
		Value: []byte(msg.Payload),
		Time:  msg.CreatedAt,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(msg.ID)},
			{Key: "event_type", Value: []byte(msg.EventType)},
		},
	})
	if err != nil {
		return fmt.Errorf("kafka: publish %s: %w", msg.EventType, err)
	}

	p.log.Debug("Event published to kafka",
		zap.String("topic", p.topic),
		zap.String("event_id", msg.ID),
		zap.String("event_type", msg.EventType),
	)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

var _ messaging.Publisher = (*Publisher)(nil)
