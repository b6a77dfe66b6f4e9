package common

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ValidationBehaviour runs every validator, without stopping at the first failure, and merges
// their messages in registration order. Any failure short-circuits: the handler is not called.
func ValidationBehaviour[Req Request, Res any](fail FailureFactory[Res], validators ...Validator[Req]) Behaviour[Req, Res] {
	return func(ctx context.Context, req Req, next Next[Res]) (Res, error) {
		if len(validators) == 0 {
			return next(ctx)
		}

		var msgs []string
		for _, v := range validators {
			for _, f := range v.Validate(ctx, req) {
				msgs = append(msgs, f.message())
			}
		}
		if len(msgs) > 0 {
			return fail(msgs), nil
		}
		return next(ctx)
	}
}

const msgRequisicaoInvalida = "Requisição inválida"

// message never returns blank: a failure without text still has to fail the request.
func (f ValidationFailure) message() string {
	if strings.TrimSpace(f.Message) != "" {
		return f.Message
	}
	if strings.TrimSpace(f.Field) != "" {
		return f.Field + " inválido"
	}
	return msgRequisicaoInvalida
}

// ============================================================================
// RuleSet - small helpers validators are written with
// ============================================================================

// RuleSet accumulates failures in the order the rules are checked.
type RuleSet struct {
	failures []ValidationFailure
}

func (r *RuleSet) Add(field, message string) *RuleSet {
	r.failures = append(r.failures, ValidationFailure{Field: field, Message: message})
	return r
}

// Check adds message when ok is false.
func (r *RuleSet) Check(ok bool, field, message string) *RuleSet {
	if !ok {
		r.Add(field, message)
	}
	return r
}

func (r *RuleSet) Required(field, value, message string) *RuleSet {
	return r.Check(strings.TrimSpace(value) != "", field, message)
}

func (r *RuleSet) MaxLength(field, value string, limit int, message string) *RuleSet {
	return r.Check(utf8.RuneCountInString(value) <= limit, field, message)
}

// OptionalMaxLength skips empty values.
func (r *RuleSet) OptionalMaxLength(field, value string, limit int, message string) *RuleSet {
	return r.Check(value == "" || utf8.RuneCountInString(value) <= limit, field, message)
}

func (r *RuleSet) PositiveID(field string, id int, message string) *RuleSet {
	return r.Check(id > 0, field, message)
}

func (r *RuleSet) NonNegative(field string, value int, message string) *RuleSet {
	return r.Check(value >= 0, field, message)
}

func (r *RuleSet) Between(field string, value, lo, hi int, message string) *RuleSet {
	return r.Check(value >= lo && value <= hi, field, message)
}

// ExpiryWindow requires a date whose calendar day lies within [today-minYears, today+maxYears].
func (r *RuleSet) ExpiryWindow(field string, value, today time.Time, minYears, maxYears int) *RuleSet {
	if value.IsZero() {
		return r.Add(field, "Data de validade é obrigatória")
	}
	day, today := truncateDay(value), truncateDay(today)
	inWindow := !day.Before(today.AddDate(-minYears, 0, 0)) && !day.After(today.AddDate(maxYears, 0, 0))
	return r.Check(inWindow, field,
		fmt.Sprintf("Data de validade deve estar entre %d anos atrás e %d anos no futuro", minYears, maxYears))
}

func (r *RuleSet) Failures() []ValidationFailure { return r.failures }

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
