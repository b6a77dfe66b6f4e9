package common

import (
	"context"

	"go.uber.org/zap"
)

// Next invokes the rest of the pipeline.
type Next[Res any] func(ctx context.Context) (Res, error)

// Behaviour intercepts a request. It may call next or short-circuit.
type Behaviour[Req Request, Res any] func(ctx context.Context, req Req, next Next[Res]) (Res, error)

// FailureFactory builds the failure variant of Res from a non-empty message list.
type FailureFactory[Res any] func(errs []string) Res

// FailuresOf is the factory for any Outcome type, resolved at compile time.
func FailuresOf[Res Outcome[Res]]() FailureFactory[Res] {
	return func(errs []string) Res {
		var zero Res
		return zero.WithFailures(errs)
	}
}

// Pipeline dispatches one request type. Behaviours run in registration order,
// the first one outermost.
type Pipeline[Req Request, Res any] struct {
	handler    Handler[Req, Res]
	behaviours []Behaviour[Req, Res]
}

func NewPipeline[Req Request, Res any](handler Handler[Req, Res], behaviours ...Behaviour[Req, Res]) *Pipeline[Req, Res] {
	return &Pipeline[Req, Res]{handler: handler, behaviours: behaviours}
}

// NewStandardPipeline is logging, then validation, then the handler.
func NewStandardPipeline[Req Request, Res Outcome[Res]](
	logger *zap.Logger,
	handler Handler[Req, Res],
	validators ...Validator[Req],
) *Pipeline[Req, Res] {
	return NewPipeline(handler,
		LoggingBehaviour[Req, Res](logger),
		ValidationBehaviour[Req, Res](FailuresOf[Res](), validators...),
	)
}

// Send returns ctx.Err() without running anything when ctx is already done.
// Whenever err is non-nil the returned Res is its zero value and must be ignored.
func (p *Pipeline[Req, Res]) Send(ctx context.Context, req Req) (Res, error) {
	if err := ctx.Err(); err != nil {
		var zero Res
		return zero, err
	}

	next := func(ctx context.Context) (Res, error) {
		return p.handler.Handle(ctx, req)
	}
	for i := len(p.behaviours) - 1; i >= 0; i-- {
		b, inner := p.behaviours[i], next
		next = func(ctx context.Context) (Res, error) {
			return b(ctx, req, inner)
		}
	}
	return next(ctx)
}
