package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"meusmedicamentos/config"
	"meusmedicamentos/infrastructure/messaging"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := NewPublisherWithWriter(w, "medicamentos.eventos", zaptest.NewLogger(t))

	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	err := p.Publish(context.Background(), messaging.Message{
		ID:          "evt-1",
		AggregateID: "7",
		EventType:   "medicamento.estoque_baixo",
		Payload:     `{"medicamento_id":7}`,
		CreatedAt:   created,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "7", string(msg.Key))
	assert.JSONEq(t, `{"medicamento_id":7}`, string(msg.Value))
	assert.Equal(t, created, msg.Time)
	assert.Equal(t, []kafka.Header{
		{Key: "event_id", Value: []byte("evt-1")},
		{Key: "event_type", Value: []byte("medicamento.estoque_baixo")},
	}, msg.Headers)
}

func TestPublisher_RejectsInvalidPayload(t *testing.T) {
	w := &fakeWriter{}
	p := NewPublisherWithWriter(w, "t", zaptest.NewLogger(t))

	err := p.Publish(context.Background(), messaging.Message{ID: "x", Payload: "{not json"})
	assert.Error(t, err)
	assert.Empty(t, w.msgs)
}

func TestPublisher_WrapsWriterError(t *testing.T) {
	boom := errors.New("broker down")
	p := NewPublisherWithWriter(&fakeWriter{err: boom}, "t", zaptest.NewLogger(t))

	err := p.Publish(context.Background(), messaging.Message{ID: "x", EventType: "e", Payload: "{}"})
	assert.ErrorIs(t, err, boom)
}

func TestNewPublisher_RequiresBrokersAndTopic(t *testing.T) {
	_, err := NewPublisher(config.KafkaConfig{Topic: "t"}, zaptest.NewLogger(t))
	assert.Error(t, err)

	_, err = NewPublisher(config.KafkaConfig{Brokers: []string{"localhost:9092"}}, zaptest.NewLogger(t))
	assert.Error(t, err)

	p, err := NewPublisher(config.KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "t"}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}
