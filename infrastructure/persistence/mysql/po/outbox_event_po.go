package po

import (
	"time"

	"meusmedicamentos/domain/shared"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigFastest

// OutboxEventPO is one row of the transactional outbox. The row id is the event id,
// so a replayed save of the same event fails on the primary key instead of duplicating it.
type OutboxEventPO struct {
	ID          string    `gorm:"primaryKey;size:64"`
	AggregateID string    `gorm:"size:64;index;not null"`
	EventType   string    `gorm:"size:100;index;not null"`
	Payload     string    `gorm:"type:text;not null"`
	Status      string    `gorm:"size:20;default:PENDING;not null;index"`
	RetryCount  int       `gorm:"default:0;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (OutboxEventPO) TableName() string {
	return "outbox_events"
}

type EventStatus string

const (
	EventStatusPending    EventStatus = "PENDING"
	EventStatusProcessing EventStatus = "PROCESSING"
	EventStatusPublished  EventStatus = "PUBLISHED"
	EventStatusFailed     EventStatus = "FAILED"
)

// payloader is implemented by every medication event.
type payloader interface {
	Payload() map[string]any
}

func FromDomainEvent(event shared.DomainEvent) (*OutboxEventPO, error) {
	payload, err := serializeEvent(event)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &OutboxEventPO{
		ID:          event.EventID(),
		AggregateID: event.GetAggregateID(),
		EventType:   event.EventName(),
		Payload:     payload,
		Status:      string(EventStatusPending),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// serializeEvent writes the envelope fields next to the event's own payload.
func serializeEvent(event shared.DomainEvent) (string, error) {
	data := map[string]any{}
	if p, ok := event.(payloader); ok {
		for k, v := range p.Payload() {
			data[k] = v
		}
	}
	data["event_id"] = event.EventID()
	data["event_name"] = event.EventName()
	data["aggregate_id"] = event.GetAggregateID()
	data["occurred_on"] = event.OccurredOn().Format(time.RFC3339Nano)

	out, err := json.MarshalToString(data)
	if err != nil {
		return "", err
	}
	return out, nil
}

// ToEventData decodes the stored payload.
func (po *OutboxEventPO) ToEventData() (map[string]any, error) {
	var data map[string]any
	if err := json.UnmarshalFromString(po.Payload, &data); err != nil {
		return nil, err
	}
	return data, nil
}
