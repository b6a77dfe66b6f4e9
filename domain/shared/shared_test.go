package shared

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	EventMeta
	name        string
	aggregateID string
}

func newTestEvent(name, aggregateID string) *testEvent {
	return &testEvent{EventMeta: NewEventMeta(), name: name, aggregateID: aggregateID}
}

func (e *testEvent) EventName() string      { return e.name }
func (e *testEvent) GetAggregateID() string { return e.aggregateID }

type ponto struct{ x, y int }

func (p ponto) Components() []any { return []any{p.x, p.y} }

type outroPonto struct{ x, y int }

func (p outroPonto) Components() []any { return []any{p.x, p.y} }

func TestStructuralEquality(t *testing.T) {
	assert.True(t, StructurallyEqual(ponto{1, 2}, ponto{1, 2}))
	assert.False(t, StructurallyEqual(ponto{1, 2}, ponto{2, 1}))
	assert.False(t, StructurallyEqual(ponto{1, 2}, outroPonto{1, 2}), "different types never compare equal")
	assert.False(t, StructurallyEqual(ponto{}, nil))
	assert.True(t, StructurallyEqual(nil, nil))
	assert.Equal(t, StructuralHash(ponto{3, 4}), StructuralHash(ponto{3, 4}))
	assert.NotEqual(t, StructuralHash(ponto{3, 4}), StructuralHash(ponto{4, 3}))
}

func TestEventRecorder(t *testing.T) {
	var r EventRecorder
	r.Record(newTestEvent("a", "1"))
	r.Record(newTestEvent("b", "1"))

	view := r.Events()
	view[0] = nil
	assert.NotNil(t, r.Events()[0], "Events returns a copy")

	r.MapEvents(func(e DomainEvent) DomainEvent { return newTestEvent(e.EventName()+"!", "2") })
	drained := r.PullEvents()
	require.Len(t, drained, 2)
	assert.Equal(t, "a!", drained[0].EventName())
	assert.Equal(t, "b!", drained[1].EventName())
	assert.Empty(t, r.PullEvents())
}

func TestEventMetaIsFixedAtConstruction(t *testing.T) {
	e := newTestEvent("x", "1")
	assert.NotEmpty(t, e.EventID())
	assert.Equal(t, e.OccurredOn(), e.OccurredOn())
	assert.NotEqual(t, e.EventID(), newTestEvent("x", "1").EventID())
}

func TestEventBusPublish(t *testing.T) {
	bus := NewEventBus()
	ctx := context.Background()

	var got []string
	require.NoError(t, bus.Subscribe("estoque", NewFuncHandler("specific", func(_ context.Context, e DomainEvent) error {
		got = append(got, "specific:"+e.EventName())
		return nil
	})))
	require.NoError(t, bus.Subscribe(AllEvents, NewFuncHandler("audit", func(_ context.Context, e DomainEvent) error {
		got = append(got, "audit:"+e.EventName())
		return nil
	})))

	require.NoError(t, bus.Publish(ctx, newTestEvent("estoque", "1")))
	require.NoError(t, bus.Publish(ctx, newTestEvent("local", "1")))
	assert.Equal(t, []string{"specific:estoque", "audit:estoque", "audit:local"}, got)

	err := bus.Subscribe("estoque", NewFuncHandler("specific", nil))
	assert.Error(t, err, "duplicate handler names are rejected")

	assert.Error(t, bus.Publish(ctx, newTestEvent("", "1")))
	assert.Len(t, bus.GetPublishHistory(), 2)
}

func TestEventBusHandlerFailure(t *testing.T) {
	bus := NewEventBus()
	h := NewFuncHandler("falha", func(context.Context, DomainEvent) error { return errors.New("boom") })
	require.NoError(t, bus.Subscribe("x", h))

	err := bus.Publish(context.Background(), newTestEvent("x", "1"))
	require.Error(t, err)
	history := bus.GetPublishHistory()
	require.Len(t, history, 1)
	assert.False(t, history[0].Success)

	bus.Unsubscribe("x", h)
	assert.NoError(t, bus.Publish(context.Background(), newTestEvent("x", "1")))
}

func TestDomainRuleError(t *testing.T) {
	err := NewDomainRuleError("quantidade", "valor", "Quantidade não pode ser negativa")
	assert.True(t, IsDomainRule(err))
	assert.Equal(t, "Quantidade não pode ser negativa", err.Error())
	assert.False(t, errors.Is(err, ErrInvalidInput))

	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "valor", de.Field)
	assert.NotEmpty(t, de.Stack())
}

type pares struct{}

func (pares) IsSatisfiedBy(_ context.Context, n int) bool { return n%2 == 0 }

type maiorQue struct{ n int }

func (s maiorQue) IsSatisfiedBy(_ context.Context, n int) bool { return n > s.n }

func TestSpecificationComposition(t *testing.T) {
	ctx := context.Background()
	nums := []int{1, 2, 3, 4, 5, 6}

	assert.Equal(t, []int{4, 6}, Filter(ctx, nums, And[int](pares{}, maiorQue{3})))
	assert.Equal(t, []int{2, 4, 5, 6}, Filter(ctx, nums, Or[int](pares{}, maiorQue{4})))
	assert.Equal(t, []int{1, 3, 5}, Filter(ctx, nums, Not[int](pares{})))
	assert.Equal(t, nums, Filter(ctx, nums, AllOf[int]()))
	assert.Equal(t, []int{6}, Filter(ctx, nums, AllOf[int](nil, pares{}, maiorQue{5})))
}
