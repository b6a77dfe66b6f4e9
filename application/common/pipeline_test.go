package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type ping struct {
	Texto string
}

func (ping) RequestName() string { return "Ping" }

type spyHandler struct {
	calls int
	err   error
}

func (h *spyHandler) Handle(_ context.Context, req ping) (ResultOf[string], error) {
	h.calls++
	if h.err != nil {
		return ResultOf[string]{}, h.err
	}
	return From("pong:" + req.Texto), nil
}

func reporting(msg string) Validator[ping] {
	return ValidatorFunc[ping](func(context.Context, ping) []ValidationFailure {
		return []ValidationFailure{{Field: "texto", Message: msg}}
	})
}

func TestValidationAggregatesAllValidators(t *testing.T) {
	spy := &spyHandler{}
	p := NewStandardPipeline[ping, ResultOf[string]](zap.NewNop(), spy, reporting("A"), reporting("B"))

	res, err := p.Send(context.Background(), ping{})
	require.NoError(t, err)
	assert.True(t, res.Failed())
	assert.Equal(t, []string{"A", "B"}, res.Errors())
	assert.Equal(t, 0, spy.calls, "handler must not run when validation fails")
}

func TestValidationBlankMessagesStillFail(t *testing.T) {
	spy := &spyHandler{}
	anonima := ValidatorFunc[ping](func(context.Context, ping) []ValidationFailure {
		return []ValidationFailure{{Field: "", Message: "  "}}
	})
	p := NewStandardPipeline[ping, ResultOf[string]](zap.NewNop(), spy, reporting(""), anonima)

	var (
		res ResultOf[string]
		err error
	)
	require.NotPanics(t, func() { res, err = p.Send(context.Background(), ping{}) })
	require.NoError(t, err)
	assert.True(t, res.Failed())
	assert.Equal(t, []string{"texto inválido", "Requisição inválida"}, res.Errors())
	assert.Equal(t, 0, spy.calls)
}

func TestValidationPassesThrough(t *testing.T) {
	spy := &spyHandler{}
	ok := ValidatorFunc[ping](func(context.Context, ping) []ValidationFailure { return nil })
	p := NewStandardPipeline[ping, ResultOf[string]](zap.NewNop(), spy, ok)

	res, err := p.Send(context.Background(), ping{Texto: "x"})
	require.NoError(t, err)
	assert.Equal(t, "pong:x", res.Value())
	assert.Equal(t, 1, spy.calls)

	noValidators := NewStandardPipeline[ping, ResultOf[string]](zap.NewNop(), spy)
	_, err = noValidators.Send(context.Background(), ping{})
	require.NoError(t, err)
	assert.Equal(t, 2, spy.calls)
}

func TestValidationWithPlainResult(t *testing.T) {
	calls := 0
	h := HandlerFunc[ping, Result](func(context.Context, ping) (Result, error) {
		calls++
		return Success(), nil
	})
	v := ValidatorFunc[ping](func(_ context.Context, req ping) []ValidationFailure {
		var rs RuleSet
		rs.Required("texto", req.Texto, "Texto é obrigatório").
			MaxLength("texto", req.Texto, 3, "Texto muito longo")
		return rs.Failures()
	})
	p := NewStandardPipeline[ping, Result](zap.NewNop(), h, v)

	res, err := p.Send(context.Background(), ping{})
	require.NoError(t, err)
	assert.Equal(t, "Texto é obrigatório", res.ErrorMessage())

	res, err = p.Send(context.Background(), ping{Texto: "abcd"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Texto muito longo"}, res.Errors())
	assert.Equal(t, 0, calls)
}

func TestLoggingBehaviour(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	spy := &spyHandler{}
	p := NewStandardPipeline[ping, ResultOf[string]](zap.New(core), spy)

	_, err := p.Send(context.Background(), ping{})
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Iniciando request Ping", entries[0].Message)
	assert.Equal(t, "Request Ping concluído", entries[1].Message)
	assert.Contains(t, entries[1].ContextMap(), "elapsed_ms")
	assert.Equal(t, true, entries[1].ContextMap()["succeeded"])
}

func TestLoggingBehaviourReturnsErrorUnchanged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	boom := errors.New("boom")
	p := NewStandardPipeline[ping, ResultOf[string]](zap.New(core), &spyHandler{err: boom})

	_, err := p.Send(context.Background(), ping{})
	assert.Same(t, boom, err)

	failed := logs.FilterMessage("Erro no request Ping").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.ErrorLevel, failed[0].Level)
}

func TestBehaviourOrder(t *testing.T) {
	var trail []string
	mark := func(name string) Behaviour[ping, Result] {
		return func(ctx context.Context, req ping, next Next[Result]) (Result, error) {
			trail = append(trail, name+">")
			res, err := next(ctx)
			trail = append(trail, "<"+name)
			return res, err
		}
	}
	h := HandlerFunc[ping, Result](func(context.Context, ping) (Result, error) {
		trail = append(trail, "handler")
		return Success(), nil
	})

	_, err := NewPipeline[ping, Result](h, mark("outer"), mark("inner")).Send(context.Background(), ping{})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer>", "inner>", "handler", "<inner", "<outer"}, trail)
}

func TestSendStopsOnCancelledContext(t *testing.T) {
	spy := &spyHandler{}
	p := NewStandardPipeline[ping, ResultOf[string]](zap.NewNop(), spy)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := p.Send(ctx, ping{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, spy.calls)
	// zero value: not a success, carries no messages; only err is meaningful
	assert.False(t, res.Succeeded())
	assert.Empty(t, res.Errors())
}

func TestExpiryWindowRule(t *testing.T) {
	today := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	var rs RuleSet
	rs.ExpiryWindow("dataValidade", today.AddDate(-3, 0, 0), today, 2, 10).
		ExpiryWindow("dataValidade", today.AddDate(11, 0, 0), today, 2, 10).
		ExpiryWindow("dataValidade", time.Time{}, today, 2, 10).
		ExpiryWindow("dataValidade", today.AddDate(1, 0, 0), today, 2, 10)

	require.Len(t, rs.Failures(), 3)
	assert.Equal(t, "Data de validade deve estar entre 2 anos atrás e 10 anos no futuro", rs.Failures()[0].Message)
	assert.Equal(t, rs.Failures()[0], rs.Failures()[1])
	assert.Equal(t, "Data de validade é obrigatória", rs.Failures()[2].Message)
}
