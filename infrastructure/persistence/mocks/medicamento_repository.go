package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"meusmedicamentos/domain/categoria"
	"meusmedicamentos/domain/medicamento"
	"meusmedicamentos/domain/shared"
)

// MedicamentoRepository keeps snapshots, not pointers: what a handler changes
// is only visible to other readers after Adicionar or Atualizar.
type MedicamentoRepository struct {
	mu     sync.RWMutex
	rows   map[medicamento.ID]medicamento.ReconstructionDTO
	nextID int
}

func NewMedicamentoRepository() *MedicamentoRepository {
	return &MedicamentoRepository{rows: make(map[medicamento.ID]medicamento.ReconstructionDTO)}
}

// Seed stores aggregates as if they had been added, assigning ids in order.
func (r *MedicamentoRepository) Seed(items ...*medicamento.Medicamento) {
	for _, m := range items {
		_ = r.Adicionar(context.Background(), m)
		m.PullEvents()
	}
}

func (r *MedicamentoRepository) BuscarPorID(_ context.Context, id medicamento.ID) (*medicamento.Medicamento, error) {
	r.mu.RLock()
	row, ok := r.rows[id]
	r.mu.RUnlock()
	if !ok {
		return nil, medicamento.NewMedicamentoNotFoundError(id)
	}
	return medicamento.RebuildFromDTO(row)
}

func (r *MedicamentoRepository) Listar(_ context.Context) ([]*medicamento.Medicamento, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int, 0, len(r.rows))
	for id := range r.rows {
		ids = append(ids, id.Valor())
	}
	sort.Ints(ids)

	out := make([]*medicamento.Medicamento, 0, len(ids))
	for _, id := range ids {
		m, err := medicamento.RebuildFromDTO(r.rows[medicamento.NewID(id)])
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *MedicamentoRepository) Adicionar(_ context.Context, m *medicamento.Medicamento) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	m.AtribuirID(medicamento.NewID(r.nextID))
	r.rows[m.ID()] = snapshotMedicamento(m)
	return nil
}

func (r *MedicamentoRepository) Atualizar(_ context.Context, m *medicamento.Medicamento) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[m.ID()]
	if !ok {
		return medicamento.NewMedicamentoNotFoundError(m.ID())
	}
	if row.Version != m.Version() {
		return medicamento.NewConcurrentModificationError(m.ID())
	}
	m.IncrementVersionForSave()
	r.rows[m.ID()] = snapshotMedicamento(m)
	return nil
}

func (r *MedicamentoRepository) Remover(_ context.Context, m *medicamento.Medicamento) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[m.ID()]; !ok {
		return medicamento.NewMedicamentoNotFoundError(m.ID())
	}
	delete(r.rows, m.ID())
	return nil
}

func (r *MedicamentoRepository) Existe(_ context.Context, id medicamento.ID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rows[id]
	return ok, nil
}

func (r *MedicamentoRepository) BuscarPorNome(ctx context.Context, termo string) ([]*medicamento.Medicamento, error) {
	return r.BuscarPorEspecificacao(ctx, medicamento.PorNome(termo))
}

func (r *MedicamentoRepository) BuscarPorPrincipioAtivo(ctx context.Context, termo string) ([]*medicamento.Medicamento, error) {
	return r.BuscarPorEspecificacao(ctx, medicamento.PorPrincipioAtivoSpecification{Termo: termo})
}

func (r *MedicamentoRepository) BuscarPorCodigoBarras(ctx context.Context, codigo string) (*medicamento.Medicamento, error) {
	found, err := r.BuscarPorEspecificacao(ctx, medicamento.PorCodigoBarrasSpecification{Codigo: strings.TrimSpace(codigo)})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, shared.NewNotFoundError("medicamento")
	}
	return found[0], nil
}

func (r *MedicamentoRepository) BuscarPorCategoria(ctx context.Context, id categoria.ID) ([]*medicamento.Medicamento, error) {
	return r.BuscarPorEspecificacao(ctx, medicamento.PorCategoriaSpecification{CategoriaID: id})
}

func (r *MedicamentoRepository) BuscarPorLocal(ctx context.Context, termo string) ([]*medicamento.Medicamento, error) {
	return r.BuscarPorEspecificacao(ctx, medicamento.PorLocal(termo))
}

func (r *MedicamentoRepository) BuscarVencendoEm(ctx context.Context, dias int) ([]*medicamento.Medicamento, error) {
	return r.BuscarPorEspecificacao(ctx, medicamento.VencendoEm(dias))
}

func (r *MedicamentoRepository) BuscarVencidos(ctx context.Context) ([]*medicamento.Medicamento, error) {
	return r.BuscarPorEspecificacao(ctx, medicamento.Vencidos())
}

func (r *MedicamentoRepository) BuscarComEstoqueBaixo(ctx context.Context) ([]*medicamento.Medicamento, error) {
	return r.BuscarPorEspecificacao(ctx, medicamento.ComEstoqueBaixo())
}

func (r *MedicamentoRepository) BuscarComFiltros(ctx context.Context, filtro medicamento.Filtro) ([]*medicamento.Medicamento, int, error) {
	filtro = filtro.Normalizado()
	matches, err := r.BuscarPorEspecificacao(ctx, filtro.Specification())
	if err != nil {
		return nil, 0, err
	}
	medicamento.Ordenar(matches, filtro.OrdenarPor, filtro.OrdemDecrescente)
	return medicamento.Paginar(matches, filtro), len(matches), nil
}

func (r *MedicamentoRepository) BuscarPorEspecificacao(ctx context.Context, spec shared.Specification[*medicamento.Medicamento]) ([]*medicamento.Medicamento, error) {
	all, err := r.Listar(ctx)
	if err != nil {
		return nil, err
	}
	return shared.Filter(ctx, all, spec), nil
}

func (r *MedicamentoRepository) Contar(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows), nil
}

func (r *MedicamentoRepository) ContarPorStatusVencimento(ctx context.Context) (map[medicamento.StatusVencimento]int, error) {
	all, err := r.Listar(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[medicamento.StatusVencimento]int)
	for _, m := range all {
		counts[m.DataValidade().Status()]++
	}
	return counts, nil
}

func snapshotMedicamento(m *medicamento.Medicamento) medicamento.ReconstructionDTO {
	return medicamento.ReconstructionDTO{
		ID:                 m.ID(),
		Nome:               m.Nome(),
		PrincipioAtivo:     m.PrincipioAtivo(),
		Dosagem:            m.Dosagem().String(),
		Forma:              m.Forma(),
		Fabricante:         m.Fabricante(),
		DataValidade:       m.DataValidade().Valor(),
		QuantidadeAtual:    m.QuantidadeAtual().Valor(),
		QuantidadeMinima:   m.QuantidadeMinima().Valor(),
		LocalArmazenamento: m.LocalArmazenamento().Descricao(),
		Lote:               m.Lote(),
		CodigoBarras:       m.CodigoBarras(),
		Observacoes:        m.Observacoes(),
		CategoriaID:        m.CategoriaID(),
		Ativo:              m.Ativo(),
		Version:            m.Version(),
		CriadoEm:           m.CriadoEm(),
		AtualizadoEm:       m.AtualizadoEm(),
	}
}

var _ medicamento.Repository = (*MedicamentoRepository)(nil)
