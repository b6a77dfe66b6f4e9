package medicamento

import (
	"context"
	"slices"
	"strings"

	"meusmedicamentos/domain/categoria"
	"meusmedicamentos/domain/shared"
)

// Repository is the medication collection. Searches return active and inactive
// items alike unless the criteria say otherwise.
type Repository interface {
	shared.Repository[*Medicamento, ID]

	BuscarPorNome(ctx context.Context, termo string) ([]*Medicamento, error)
	BuscarPorPrincipioAtivo(ctx context.Context, termo string) ([]*Medicamento, error)
	// BuscarPorCodigoBarras returns a not-found error when nothing matches.
	BuscarPorCodigoBarras(ctx context.Context, codigo string) (*Medicamento, error)
	BuscarPorCategoria(ctx context.Context, categoriaID categoria.ID) ([]*Medicamento, error)
	BuscarPorLocal(ctx context.Context, termo string) ([]*Medicamento, error)
	BuscarVencendoEm(ctx context.Context, dias int) ([]*Medicamento, error)
	BuscarVencidos(ctx context.Context) ([]*Medicamento, error)
	BuscarComEstoqueBaixo(ctx context.Context) ([]*Medicamento, error)

	// BuscarComFiltros applies the combined filter and returns one page plus the total match count.
	BuscarComFiltros(ctx context.Context, filtro Filtro) ([]*Medicamento, int, error)

	// BuscarPorEspecificacao evaluates an arbitrary specification.
	BuscarPorEspecificacao(ctx context.Context, spec shared.Specification[*Medicamento]) ([]*Medicamento, error)

	Contar(ctx context.Context) (int, error)
	ContarPorStatusVencimento(ctx context.Context) (map[StatusVencimento]int, error)
}

// ============================================================================
// Filtro
// ============================================================================

type Ordenacao string

const (
	OrdenarPorNome            Ordenacao = "nome"
	OrdenarPorDataValidade    Ordenacao = "dataValidade"
	OrdenarPorQuantidadeAtual Ordenacao = "quantidadeAtual"
)

const (
	PaginaPadrao         = 1
	ItensPorPaginaPadrao = 20
	ItensPorPaginaMaximo = 100
)

// Filtro is the combined search. Empty strings and nil pointers are ignored.
type Filtro struct {
	Nome                   string
	PrincipioAtivo         string
	Forma                  *FormaFarmaceutica
	Fabricante             string
	CategoriaID            *categoria.ID
	LocalArmazenamento     string
	ApenasAtivos           bool
	ApenasVencendoEm30Dias bool
	ApenasComEstoqueBaixo  bool
	ApenasVencidos         bool

	Pagina           int
	ItensPorPagina   int
	OrdenarPor       Ordenacao
	OrdemDecrescente bool
}

// NovoFiltro returns the defaults: active only, first page of 20, ordered by name.
func NovoFiltro() Filtro {
	return Filtro{
		ApenasAtivos:   true,
		Pagina:         PaginaPadrao,
		ItensPorPagina: ItensPorPaginaPadrao,
		OrdenarPor:     OrdenarPorNome,
	}
}

// Normalizado clamps the paging fields and falls back to ordering by name.
func (f Filtro) Normalizado() Filtro {
	if f.Pagina < 1 {
		f.Pagina = PaginaPadrao
	}
	if f.ItensPorPagina < 1 {
		f.ItensPorPagina = ItensPorPaginaPadrao
	}
	if f.ItensPorPagina > ItensPorPaginaMaximo {
		f.ItensPorPagina = ItensPorPaginaMaximo
	}
	switch f.OrdenarPor {
	case OrdenarPorNome, OrdenarPorDataValidade, OrdenarPorQuantidadeAtual:
	default:
		f.OrdenarPor = OrdenarPorNome
	}
	return f
}

func (f Filtro) Offset() int { return (f.Pagina - 1) * f.ItensPorPagina }

// Specification folds the criteria into one specification; nil means "everything".
func (f Filtro) Specification() shared.Specification[*Medicamento] {
	var specs []shared.Specification[*Medicamento]
	if strings.TrimSpace(f.Nome) != "" {
		specs = append(specs, PorNomeSpecification{Termo: f.Nome})
	}
	if strings.TrimSpace(f.PrincipioAtivo) != "" {
		specs = append(specs, PorPrincipioAtivoSpecification{Termo: f.PrincipioAtivo})
	}
	if f.Forma != nil {
		specs = append(specs, PorFormaSpecification{Forma: *f.Forma})
	}
	if strings.TrimSpace(f.Fabricante) != "" {
		specs = append(specs, PorFabricanteSpecification{Termo: f.Fabricante})
	}
	if f.CategoriaID != nil {
		specs = append(specs, PorCategoriaSpecification{CategoriaID: *f.CategoriaID})
	}
	if strings.TrimSpace(f.LocalArmazenamento) != "" {
		specs = append(specs, PorLocalSpecification{Termo: f.LocalArmazenamento})
	}
	if f.ApenasAtivos {
		specs = append(specs, AtivosSpecification{})
	}
	if f.ApenasVencendoEm30Dias {
		specs = append(specs, VenceEmSpecification{Dias: 30})
	}
	if f.ApenasComEstoqueBaixo {
		specs = append(specs, ComEstoqueBaixoSpecification{})
	}
	if f.ApenasVencidos {
		specs = append(specs, VencidosSpecification{})
	}
	return shared.AllOf(specs...)
}

// Ordenar sorts in place, stable, by the requested field.
func Ordenar(items []*Medicamento, por Ordenacao, decrescente bool) {
	cmp := func(a, b *Medicamento) int {
		switch por {
		case OrdenarPorDataValidade:
			return a.DataValidade().Valor().Compare(b.DataValidade().Valor())
		case OrdenarPorQuantidadeAtual:
			return a.QuantidadeAtual().Compare(b.QuantidadeAtual())
		default:
			return strings.Compare(strings.ToLower(a.Nome()), strings.ToLower(b.Nome()))
		}
	}
	slices.SortStableFunc(items, func(a, b *Medicamento) int {
		if decrescente {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
}

// Paginar returns the page described by f from an already ordered slice.
func Paginar(items []*Medicamento, f Filtro) []*Medicamento {
	inicio := f.Offset()
	if inicio >= len(items) {
		return []*Medicamento{}
	}
	fim := min(inicio+f.ItensPorPagina, len(items))
	return items[inicio:fim]
}
