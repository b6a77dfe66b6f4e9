package medicamento

import (
	"errors"
	"strconv"

	"meusmedicamentos/domain/shared"
)

// ============================================================================
// Sentinel errors
// ============================================================================

var (
	// ErrMedicamentoNotFound medication does not exist
	ErrMedicamentoNotFound = errors.New("medicamento not found")

	// ErrConcurrentModification optimistic lock lost, caller may retry
	ErrConcurrentModification = errors.New("medicamento was modified by another transaction, please retry")

	// ErrCodigoBarrasDuplicado another medication already carries this barcode
	ErrCodigoBarrasDuplicado = errors.New("codigo de barras already registered")

	// ErrEstoqueInsuficiente consumption larger than the available stock
	ErrEstoqueInsuficiente = errors.New("estoque insuficiente")
)

// ============================================================================
// Constructors
// ============================================================================

// NewMedicamentoNotFoundError supports errors.Is with ErrMedicamentoNotFound and shared.ErrNotFound.
func NewMedicamentoNotFoundError(id ID) error {
	return &medicamentoDomainError{
		sentinel: ErrMedicamentoNotFound,
		message:  "Medicamento não encontrado: " + id.String(),
		stack:    shared.CaptureStack(3),
	}
}

func NewConcurrentModificationError(id ID) error {
	return &medicamentoDomainError{
		sentinel: ErrConcurrentModification,
		message:  "medicamento " + id.String() + " was modified by another transaction",
		stack:    shared.CaptureStack(3),
	}
}

func NewCodigoBarrasDuplicadoError(codigo string) error {
	return &medicamentoDomainError{
		sentinel: ErrCodigoBarrasDuplicado,
		field:    "codigoBarras",
		message:  "Já existe um medicamento com o código de barras " + codigo,
		stack:    shared.CaptureStack(3),
	}
}

// NewEstoqueInsuficienteError is an invariant violation: it matches both
// ErrEstoqueInsuficiente and shared.ErrDomainRule.
func NewEstoqueInsuficienteError(disponivel int) error {
	return &medicamentoDomainError{
		sentinel: ErrEstoqueInsuficiente,
		field:    "quantidade",
		message:  "Estoque insuficiente. Disponível: " + strconv.Itoa(disponivel),
		stack:    shared.CaptureStack(3),
	}
}

// IsNotFound matches every not-found error, not only medication ones.
func IsNotFound(err error) bool { return errors.Is(err, shared.ErrNotFound) }

type medicamentoDomainError struct {
	sentinel error
	field    string
	message  string
	stack    []uintptr
}

func (e *medicamentoDomainError) Error() string { return e.message }

func (e *medicamentoDomainError) Unwrap() []error {
	switch e.sentinel {
	case ErrMedicamentoNotFound:
		return []error{e.sentinel, shared.ErrNotFound}
	case ErrEstoqueInsuficiente:
		return []error{e.sentinel, shared.ErrDomainRule}
	}
	return []error{e.sentinel, shared.ErrConflict}
}

func (e *medicamentoDomainError) Field() string { return e.field }

func (e *medicamentoDomainError) Stack() []string {
	return shared.FormatStack(e.stack)
}
