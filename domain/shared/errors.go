/*
Package shared - blocos comuns a todos os subdomínios, incluindo os erros de domínio

Princípios:
1. Erros sentinela (sentinel errors) servem para errors.Is()
2. DomainError captura a pilha na criação e só a formata sob demanda
3. Nada de conceitos de transporte (status HTTP) nesta camada

Violações de invariante (value object inválido, pré-condição de agregado quebrada)
envolvem ErrDomainRule: abortam a mutação na hora e nunca são repetidas.
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ============================================================================
// Erros sentinela (Sentinel Errors)
// Usados com errors.Is(), não carregam detalhes
// ============================================================================

var (
	// ErrNotFound recurso inexistente
	ErrNotFound = errors.New("not found")

	// ErrConflict conflito (unicidade ou modificação concorrente)
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput entrada inválida
	ErrInvalidInput = errors.New("invalid input")

	// ErrDomainRule invariante de negócio violada
	ErrDomainRule = errors.New("domain rule violated")
)

// ============================================================================
// DomainError
// ============================================================================

// DomainError carries business context plus the stack of the point where it was raised.
type DomainError struct {
	// Err is the sentinel used by errors.Is()
	Err error

	// Entity that raised the error ("medicamento", "categoria", "dosagem", ...)
	Entity string

	// Message is human readable
	Message string

	// Field is optional
	Field string

	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured frames on demand.
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// ============================================================================
// Pilha (Stack helpers)
// ============================================================================

// CaptureStack captures the current call stack.
// skip is usually 3: runtime.Callers, CaptureStack, NewXxxError.
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders at most ten non-runtime frames.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// ============================================================================
// Construtores (Constructors)
// ============================================================================

// NewNotFoundError entidade não encontrada
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewConflictError conflito na entidade
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewValidationError erro de entrada recuperável
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewDomainRuleError violação de invariante vinda de value objects e entidades
func NewDomainRuleError(entity, field, message string) error {
	return &DomainError{
		Err:     ErrDomainRule,
		Entity:  entity,
		Field:   field,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// IsDomainRule reports whether err is an invariant violation.
func IsDomainRule(err error) bool {
	return errors.Is(err, ErrDomainRule)
}

// Stacker is implemented by errors that carry a stack, used by the API layer for logging.
type Stacker interface {
	Stack() []string
}
