package common

import "context"

// Request is a command or query. The name identifies it in logs.
type Request interface {
	RequestName() string
}

type Handler[Req Request, Res any] interface {
	Handle(ctx context.Context, req Req) (Res, error)
}

type HandlerFunc[Req Request, Res any] func(ctx context.Context, req Req) (Res, error)

func (f HandlerFunc[Req, Res]) Handle(ctx context.Context, req Req) (Res, error) {
	return f(ctx, req)
}

// ValidationFailure is one violated rule.
type ValidationFailure struct {
	Field   string
	Message string
}

// Validator reports zero or more failures. Several validators may be registered for one request type.
type Validator[Req any] interface {
	Validate(ctx context.Context, req Req) []ValidationFailure
}

type ValidatorFunc[Req any] func(ctx context.Context, req Req) []ValidationFailure

func (f ValidatorFunc[Req]) Validate(ctx context.Context, req Req) []ValidationFailure {
	return f(ctx, req)
}
