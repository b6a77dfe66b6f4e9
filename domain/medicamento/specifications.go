package medicamento

import (
	"context"
	"strings"
	"time"

	"meusmedicamentos/domain/categoria"
	"meusmedicamentos/domain/shared"
)

// AtivosSpecification keeps medications that were not soft-deleted.
type AtivosSpecification struct{}

func (AtivosSpecification) IsSatisfiedBy(_ context.Context, m *Medicamento) bool {
	return m.Ativo()
}

// VenceEmSpecification keeps items expiring between Referencia and Referencia+Dias, both inclusive.
// A zero Referencia means today.
type VenceEmSpecification struct {
	Dias       int
	Referencia time.Time
}

func (spec VenceEmSpecification) IsSatisfiedBy(_ context.Context, m *Medicamento) bool {
	ok, err := m.DataValidade().VenceEmAPartirDe(referencia(spec.Referencia), spec.Dias)
	return err == nil && ok
}

// VencidosSpecification keeps items whose date is before Referencia (today when zero).
type VencidosSpecification struct {
	Referencia time.Time
}

func (spec VencidosSpecification) IsSatisfiedBy(_ context.Context, m *Medicamento) bool {
	return m.DataValidade().EstaVencidoEm(referencia(spec.Referencia))
}

type ComEstoqueBaixoSpecification struct{}

func (ComEstoqueBaixoSpecification) IsSatisfiedBy(_ context.Context, m *Medicamento) bool {
	return m.EstoqueEstaAbaixoDoMinimo()
}

// PorLocalSpecification matches a case-insensitive substring of the storage location.
type PorLocalSpecification struct {
	Termo string
}

func (spec PorLocalSpecification) IsSatisfiedBy(_ context.Context, m *Medicamento) bool {
	return contemIgnorandoCaixa(m.LocalArmazenamento().Descricao(), spec.Termo)
}

// PorNomeSpecification matches a case-insensitive substring of nome or principio ativo.
type PorNomeSpecification struct {
	Termo string
}

func (spec PorNomeSpecification) IsSatisfiedBy(_ context.Context, m *Medicamento) bool {
	return contemIgnorandoCaixa(m.Nome(), spec.Termo) || contemIgnorandoCaixa(m.PrincipioAtivo(), spec.Termo)
}

type PorPrincipioAtivoSpecification struct {
	Termo string
}

func (spec PorPrincipioAtivoSpecification) IsSatisfiedBy(_ context.Context, m *Medicamento) bool {
	return contemIgnorandoCaixa(m.PrincipioAtivo(), spec.Termo)
}

type PorFabricanteSpecification struct {
	Termo string
}

func (spec PorFabricanteSpecification) IsSatisfiedBy(_ context.Context, m *Medicamento) bool {
	return contemIgnorandoCaixa(m.Fabricante(), spec.Termo)
}

type PorFormaSpecification struct {
	Forma FormaFarmaceutica
}

func (spec PorFormaSpecification) IsSatisfiedBy(_ context.Context, m *Medicamento) bool {
	return m.Forma() == spec.Forma
}

type PorCategoriaSpecification struct {
	CategoriaID categoria.ID
}

func (spec PorCategoriaSpecification) IsSatisfiedBy(_ context.Context, m *Medicamento) bool {
	return m.CategoriaID() == spec.CategoriaID
}

// PorCodigoBarrasSpecification is an exact match.
type PorCodigoBarrasSpecification struct {
	Codigo string
}

func (spec PorCodigoBarrasSpecification) IsSatisfiedBy(_ context.Context, m *Medicamento) bool {
	return spec.Codigo != "" && m.CodigoBarras() == spec.Codigo
}

func contemIgnorandoCaixa(valor, termo string) bool {
	return strings.Contains(strings.ToLower(valor), strings.ToLower(strings.TrimSpace(termo)))
}

func referencia(t time.Time) time.Time {
	if t.IsZero() {
		return Hoje()
	}
	return Dia(t)
}

// Helper constructors

func Ativos() shared.Specification[*Medicamento] { return AtivosSpecification{} }

func VencendoEm(dias int) shared.Specification[*Medicamento] {
	return VenceEmSpecification{Dias: dias}
}

func Vencidos() shared.Specification[*Medicamento] { return VencidosSpecification{} }

func ComEstoqueBaixo() shared.Specification[*Medicamento] { return ComEstoqueBaixoSpecification{} }

func PorLocal(termo string) shared.Specification[*Medicamento] {
	return PorLocalSpecification{Termo: termo}
}

func PorNome(termo string) shared.Specification[*Medicamento] {
	return PorNomeSpecification{Termo: termo}
}
