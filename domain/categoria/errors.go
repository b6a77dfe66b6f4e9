package categoria

import (
	"errors"

	"meusmedicamentos/domain/shared"
)

var (
	// ErrCategoriaNotFound categoria does not exist
	ErrCategoriaNotFound = errors.New("categoria not found")

	// ErrCategoriaEmUso categoria still referenced by medications
	ErrCategoriaEmUso = errors.New("categoria has medications")

	// ErrNomeDuplicado another categoria already uses this name
	ErrNomeDuplicado = errors.New("categoria name already exists")

	// ErrConcurrentModification optimistic lock lost, caller may retry
	ErrConcurrentModification = errors.New("categoria was modified by another transaction, please retry")
)

func NewCategoriaNotFoundError(id ID) error {
	return &categoriaDomainError{
		sentinel: ErrCategoriaNotFound,
		message:  "categoria not found: " + id.String(),
		stack:    shared.CaptureStack(3),
	}
}

func NewConcurrentModificationError(id ID) error {
	return &categoriaDomainError{
		sentinel: ErrConcurrentModification,
		message:  "categoria " + id.String() + " was modified by another transaction",
		stack:    shared.CaptureStack(3),
	}
}

func NewCategoriaEmUsoError(id ID) error {
	return &categoriaDomainError{
		sentinel: ErrCategoriaEmUso,
		message:  "Categoria " + id.String() + " possui medicamentos vinculados",
		stack:    shared.CaptureStack(3),
	}
}

func NewNomeDuplicadoError(nome string) error {
	return &categoriaDomainError{
		sentinel: ErrNomeDuplicado,
		field:    "nome",
		message:  "Já existe uma categoria com o nome " + nome,
		stack:    shared.CaptureStack(3),
	}
}

type categoriaDomainError struct {
	sentinel error
	field    string
	message  string
	stack    []uintptr
}

func (e *categoriaDomainError) Error() string { return e.message }

// Unwrap exposes both the specific sentinel and the shared category.
func (e *categoriaDomainError) Unwrap() []error {
	switch e.sentinel {
	case ErrCategoriaNotFound:
		return []error{e.sentinel, shared.ErrNotFound}
	default:
		return []error{e.sentinel, shared.ErrConflict}
	}
}

func (e *categoriaDomainError) Stack() []string {
	return shared.FormatStack(e.stack)
}
