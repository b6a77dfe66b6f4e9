package shared

import "context"

// Repository is the collection-like contract every aggregate repository offers.
// Writes join the transaction carried by ctx when running inside UnitOfWork.Execute.
type Repository[T AggregateRoot, ID comparable] interface {
	// BuscarPorID returns a not-found error when nothing matches.
	BuscarPorID(ctx context.Context, id ID) (T, error)
	Listar(ctx context.Context) ([]T, error)
	// Adicionar persists a new aggregate and assigns its surrogate id.
	Adicionar(ctx context.Context, aggregate T) error
	Atualizar(ctx context.Context, aggregate T) error
	Remover(ctx context.Context, aggregate T) error
	Existe(ctx context.Context, id ID) (bool, error)
}
