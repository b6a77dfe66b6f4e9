package shared

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is an immutable fact recorded by an aggregate.
type DomainEvent interface {
	EventID() string
	EventName() string
	OccurredOn() time.Time
	GetAggregateID() string
}

// EventMeta is embedded by every event: a generated id and a timestamp fixed at construction.
type EventMeta struct {
	id         string
	occurredOn time.Time
}

func NewEventMeta() EventMeta {
	return EventMeta{
		id:         uuid.NewString(),
		occurredOn: time.Now().UTC(),
	}
}

func (m EventMeta) EventID() string       { return m.id }
func (m EventMeta) OccurredOn() time.Time { return m.occurredOn }

func ValidateEvent(event DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.EventName() == "" {
		return fmt.Errorf("event name cannot be empty")
	}
	if event.EventID() == "" {
		return fmt.Errorf("event id cannot be empty")
	}
	if event.GetAggregateID() == "" {
		return fmt.Errorf("aggregate ID cannot be empty")
	}
	if event.OccurredOn().IsZero() {
		return fmt.Errorf("occurred on time cannot be zero")
	}
	return nil
}

// ============================================================================
// EventRecorder - pending events owned by an entity
// ============================================================================

// EventRecorder is an append-only buffer of pending events.
// It is not safe for concurrent use; an aggregate lives inside one request.
type EventRecorder struct {
	events []DomainEvent
}

// Record appends an event.
func (r *EventRecorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

// Events returns a read-only copy of the pending events.
func (r *EventRecorder) Events() []DomainEvent {
	out := make([]DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

// MapEvents replaces every pending event with fn's result, keeping the order.
func (r *EventRecorder) MapEvents(fn func(DomainEvent) DomainEvent) {
	for i, e := range r.events {
		r.events[i] = fn(e)
	}
}

// PullEvents copies the pending events out and clears the buffer.
func (r *EventRecorder) PullEvents() []DomainEvent {
	out := r.events
	r.events = nil
	return out
}

// ============================================================================
// EventBus - in-process dispatch of drained events
// ============================================================================

// AllEvents subscribes a handler to every event name.
const AllEvents = "*"

type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	Name() string
}

type EventPublishResult struct {
	EventName   string    `json:"event_name"`
	Success     bool      `json:"success"`
	Message     string    `json:"message,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

const maxHistory = 1000

type EventBus struct {
	handlers  map[string][]EventHandler
	mu        sync.RWMutex
	history   []EventPublishResult
	muHistory sync.Mutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[string][]EventHandler),
	}
}

func (bus *EventBus) Publish(ctx context.Context, event DomainEvent) error {
	if err := ValidateEvent(event); err != nil {
		return err
	}

	bus.mu.RLock()
	handlers := append([]EventHandler{}, bus.handlers[event.EventName()]...)
	handlers = append(handlers, bus.handlers[AllEvents]...)
	bus.mu.RUnlock()

	result := EventPublishResult{
		EventName:   event.EventName(),
		Success:     true,
		PublishedAt: time.Now(),
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler.Handle(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("handler %s: %w", handler.Name(), err))
		}
	}

	switch {
	case len(errs) > 0:
		result.Success = false
		result.Message = fmt.Sprintf("%d handlers failed", len(errs))
	case len(handlers) == 0:
		result.Message = "no handlers registered for this event"
	}
	bus.record(result)

	if len(errs) > 0 {
		return fmt.Errorf("event %s: %d handlers failed: %v", event.EventName(), len(errs), errs)
	}
	return nil
}

func (bus *EventBus) record(result EventPublishResult) {
	bus.muHistory.Lock()
	defer bus.muHistory.Unlock()
	bus.history = append(bus.history, result)
	if len(bus.history) > maxHistory {
		bus.history = bus.history[len(bus.history)-maxHistory:]
	}
}

func (bus *EventBus) Subscribe(eventName string, handler EventHandler) error {
	if eventName == "" {
		return fmt.Errorf("event name cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()

	for _, h := range bus.handlers[eventName] {
		if h.Name() == handler.Name() {
			return fmt.Errorf("handler %s already subscribed to %s", handler.Name(), eventName)
		}
	}
	bus.handlers[eventName] = append(bus.handlers[eventName], handler)
	return nil
}

func (bus *EventBus) Unsubscribe(eventName string, handler EventHandler) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	handlers := bus.handlers[eventName]
	for i, h := range handlers {
		if h.Name() == handler.Name() {
			bus.handlers[eventName] = append(handlers[:i], handlers[i+1:]...)
			return
		}
	}
}

func (bus *EventBus) GetPublishHistory() []EventPublishResult {
	bus.muHistory.Lock()
	defer bus.muHistory.Unlock()

	history := make([]EventPublishResult, len(bus.history))
	copy(history, bus.history)
	return history
}

type FuncHandler struct {
	name string
	fn   func(context.Context, DomainEvent) error
}

func NewFuncHandler(name string, fn func(context.Context, DomainEvent) error) *FuncHandler {
	if name == "" {
		name = fmt.Sprintf("func-handler-%d", time.Now().UnixNano())
	}
	return &FuncHandler{name: name, fn: fn}
}

func (h *FuncHandler) Handle(ctx context.Context, event DomainEvent) error {
	return h.fn(ctx, event)
}

func (h *FuncHandler) Name() string {
	return h.name
}
