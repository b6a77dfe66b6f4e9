package categoria

import (
	"context"

	"meusmedicamentos/domain/shared"
)

type Repository interface {
	shared.Repository[*Categoria, ID]

	// BuscarPorNome matches the exact name, case-insensitively. Returns nil when absent.
	BuscarPorNome(ctx context.Context, nome string) (*Categoria, error)
	ListarAtivas(ctx context.Context) ([]*Categoria, error)
	TemMedicamentos(ctx context.Context, id ID) (bool, error)
}
