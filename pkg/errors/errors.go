// Package errors holds the transport-facing error: a code the API maps to an HTTP status.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"meusmedicamentos/domain/categoria"
	"meusmedicamentos/domain/medicamento"
	"meusmedicamentos/domain/shared"
)

// ErrorCode is the machine-readable part of an error response.
type ErrorCode string

const (
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"
	CodeDomainRule     ErrorCode = "DOMAIN_RULE_VIOLATED"
	CodeTimeout        ErrorCode = "TIMEOUT"

	CodeMedicamentoNotFound    ErrorCode = "MEDICAMENTO_NOT_FOUND"
	CodeCategoriaNotFound      ErrorCode = "CATEGORIA_NOT_FOUND"
	CodeCategoriaEmUso         ErrorCode = "CATEGORIA_EM_USO"
	CodeCodigoBarrasDuplicado  ErrorCode = "CODIGO_BARRAS_DUPLICADO"
	CodeNomeCategoriaDuplicado ErrorCode = "NOME_CATEGORIA_DUPLICADO"
	CodeEstoqueInsuficiente    ErrorCode = "ESTOQUE_INSUFICIENTE"
	CodeConcurrentModification ErrorCode = "CONCURRENT_MODIFICATION"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details []string  `json:"details,omitempty"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound, CodeMedicamentoNotFound, CodeCategoriaNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeCategoriaEmUso, CodeCodigoBarrasDuplicado, CodeNomeCategoriaDuplicado, CodeConcurrentModification:
		return http.StatusConflict
	case CodeDomainRule, CodeEstoqueInsuficiente:
		return http.StatusUnprocessableEntity
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

// Validation carries every failure message of a failed result.
func Validation(messages []string) *AppError {
	msg := "Dados inválidos"
	if len(messages) == 1 {
		msg = messages[0]
	}
	return &AppError{Code: CodeValidation, Message: msg, Details: messages}
}

func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// AsAppError wraps anything unknown as an internal error.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeInternal, "internal server error")
}

// FromDomainError maps domain errors by sentinel, most specific first.
// The domain message is kept: it is written for the end user.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	specific := []struct {
		sentinel error
		code     ErrorCode
	}{
		{medicamento.ErrMedicamentoNotFound, CodeMedicamentoNotFound},
		{categoria.ErrCategoriaNotFound, CodeCategoriaNotFound},
		{categoria.ErrCategoriaEmUso, CodeCategoriaEmUso},
		{medicamento.ErrCodigoBarrasDuplicado, CodeCodigoBarrasDuplicado},
		{categoria.ErrNomeDuplicado, CodeNomeCategoriaDuplicado},
		{medicamento.ErrEstoqueInsuficiente, CodeEstoqueInsuficiente},
		{medicamento.ErrConcurrentModification, CodeConcurrentModification},
		{categoria.ErrConcurrentModification, CodeConcurrentModification},
	}
	for _, s := range specific {
		if errors.Is(err, s.sentinel) {
			return Wrap(err, s.code, err.Error())
		}
	}

	switch {
	case errors.Is(err, shared.ErrDomainRule):
		return Wrap(err, CodeDomainRule, domainMessage(err))
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, domainMessage(err))
	case errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, domainMessage(err))
	case errors.Is(err, shared.ErrInvalidInput):
		return Wrap(err, CodeValidation, domainMessage(err))
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(err, CodeTimeout, "request timed out")
	default:
		return Wrap(err, CodeInternal, "internal server error")
	}
}

// domainMessage prefers the bare message of a shared.DomainError over its formatted Error().
func domainMessage(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return err.Error()
}
