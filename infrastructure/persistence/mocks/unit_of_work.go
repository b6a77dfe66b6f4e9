package mocks

import (
	"context"
	"sync"

	"meusmedicamentos/domain/shared"
)

// UnitOfWork runs without a transaction. After fn succeeds it drains the registered
// aggregates and dispatches their events to the bus, when one is set.
type UnitOfWork struct {
	bus        *shared.EventBus
	aggregates []shared.AggregateRoot
	sink       *eventSink
}

// Execute drops the registrations of a failed run; their events stay pending.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	u.aggregates = nil

	if err := fn(ctx); err != nil {
		u.aggregates = nil
		return err
	}

	for _, agg := range u.aggregates {
		for _, event := range agg.PullEvents() {
			u.sink.add(event)
			if u.bus != nil {
				if err := u.bus.Publish(ctx, event); err != nil {
					return err
				}
			}
		}
	}
	u.aggregates = nil
	return nil
}

func (u *UnitOfWork) RegisterNew(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

func (u *UnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

func (u *UnitOfWork) RegisterRemoved(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// UnitOfWorkFactory hands out mock units sharing one bus and one record of dispatched events.
type UnitOfWorkFactory struct {
	bus  *shared.EventBus
	sink *eventSink
}

// NewUnitOfWorkFactory accepts a nil bus.
func NewUnitOfWorkFactory(bus *shared.EventBus) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{bus: bus, sink: &eventSink{}}
}

func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	return &UnitOfWork{bus: f.bus, sink: f.sink}
}

// Dispatched lists every drained event, in order.
func (f *UnitOfWorkFactory) Dispatched() []shared.DomainEvent {
	return f.sink.all()
}

// DispatchedNames is Dispatched reduced to event names.
func (f *UnitOfWorkFactory) DispatchedNames() []string {
	events := f.sink.all()
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.EventName()
	}
	return names
}

type eventSink struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (s *eventSink) add(e shared.DomainEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *eventSink) all() []shared.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]shared.DomainEvent, len(s.events))
	copy(out, s.events)
	return out
}

var (
	_ shared.UnitOfWork        = (*UnitOfWork)(nil)
	_ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
)
