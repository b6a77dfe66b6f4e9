/*
Package common holds the request pipeline every command and query goes through.

A request is dispatched by a Pipeline: LoggingBehaviour wraps ValidationBehaviour,
which wraps the handler. Recoverable input problems come back as a failed Result;
only unexpected errors (storage, invariant violations) travel on the error return.
*/
package common

import (
	"strings"

	"meusmedicamentos/domain/shared"
)

const (
	msgSucessoComErro = "Resultado de sucesso não pode ter erro"
	msgFalhaSemErro   = "Resultado de falha deve ter erro"
	separadorErros    = "; "
)

// Outcome is implemented by Result and ResultOf. The pipeline builds a typed
// failure from the zero value of the declared response type.
type Outcome[Res any] interface {
	Succeeded() bool
	Errors() []string
	WithFailures(errs []string) Res
}

// ============================================================================
// Result
// ============================================================================

// Result is a success, or a failure carrying at least one message.
// The zero value is neither: it is what a call returns next to a non-nil error,
// and only that error is meaningful.
type Result struct {
	succeeded bool
	errors    []string
}

// NewResult enforces the invariant: a success has no error, a failure has at least one.
// Blank messages are ignored.
func NewResult(succeeded bool, errs []string) (Result, error) {
	clean := naoVazios(errs)
	if succeeded && len(clean) > 0 {
		return Result{}, shared.NewDomainRuleError("result", "error", msgSucessoComErro)
	}
	if !succeeded && len(clean) == 0 {
		return Result{}, shared.NewDomainRuleError("result", "error", msgFalhaSemErro)
	}
	return Result{succeeded: succeeded, errors: clean}, nil
}

func Success() Result { return Result{succeeded: true} }

// Failure panics when every message is blank; use NewResult for untrusted input.
func Failure(msg string, more ...string) Result {
	r, err := NewResult(false, append([]string{msg}, more...))
	if err != nil {
		panic(err)
	}
	return r
}

func (r Result) Succeeded() bool { return r.succeeded }
func (r Result) Failed() bool    { return !r.succeeded }

// ErrorMessage joins every message with "; ". It is empty on success.
func (r Result) ErrorMessage() string { return strings.Join(r.errors, separadorErros) }

func (r Result) Errors() []string {
	out := make([]string, len(r.errors))
	copy(out, r.errors)
	return out
}

func (r Result) WithFailures(errs []string) Result {
	out, err := NewResult(false, errs)
	if err != nil {
		panic(err)
	}
	return out
}

// ============================================================================
// ResultOf
// ============================================================================

// ResultOf carries a value that is only meaningful on success.
// Like Result, its zero value only accompanies a non-nil error.
type ResultOf[T any] struct {
	Result
	value T
}

// NewResultOf applies the Result invariant; the value is dropped on failure.
func NewResultOf[T any](succeeded bool, value T, errs []string) (ResultOf[T], error) {
	r, err := NewResult(succeeded, errs)
	if err != nil {
		return ResultOf[T]{}, err
	}
	if !succeeded {
		var zero T
		value = zero
	}
	return ResultOf[T]{Result: r, value: value}, nil
}

func SuccessOf[T any](value T) ResultOf[T] {
	return ResultOf[T]{Result: Success(), value: value}
}

// From wraps a bare value as a success.
func From[T any](value T) ResultOf[T] { return SuccessOf(value) }

func FailureOf[T any](msg string, more ...string) ResultOf[T] {
	return ResultOf[T]{Result: Failure(msg, more...)}
}

// Value is the zero value on failure.
func (r ResultOf[T]) Value() T { return r.value }

func (r ResultOf[T]) WithFailures(errs []string) ResultOf[T] {
	return ResultOf[T]{Result: r.Result.WithFailures(errs)}
}

func naoVazios(errs []string) []string {
	var out []string
	for _, e := range errs {
		if strings.TrimSpace(e) != "" {
			out = append(out, e)
		}
	}
	return out
}

var (
	_ Outcome[Result]        = Result{}
	_ Outcome[ResultOf[int]] = ResultOf[int]{}
)
