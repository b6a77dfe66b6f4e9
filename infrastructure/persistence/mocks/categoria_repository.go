package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"meusmedicamentos/domain/categoria"
	"meusmedicamentos/domain/medicamento"
)

type CategoriaRepository struct {
	mu           sync.RWMutex
	rows         map[categoria.ID]categoria.ReconstructionDTO
	nextID       int
	medicamentos medicamento.Repository
}

// NewCategoriaRepository answers TemMedicamentos from meds; nil means "never in use".
func NewCategoriaRepository(meds medicamento.Repository) *CategoriaRepository {
	return &CategoriaRepository{
		rows:         make(map[categoria.ID]categoria.ReconstructionDTO),
		medicamentos: meds,
	}
}

func (r *CategoriaRepository) Seed(items ...*categoria.Categoria) {
	for _, c := range items {
		_ = r.Adicionar(context.Background(), c)
	}
}

func (r *CategoriaRepository) BuscarPorID(_ context.Context, id categoria.ID) (*categoria.Categoria, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, categoria.NewCategoriaNotFoundError(id)
	}
	return categoria.RebuildFromDTO(row), nil
}

func (r *CategoriaRepository) Listar(_ context.Context) ([]*categoria.Categoria, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*categoria.Categoria, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, categoria.RebuildFromDTO(row))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome() < out[j].Nome() })
	return out, nil
}

func (r *CategoriaRepository) Adicionar(_ context.Context, c *categoria.Categoria) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	c.AssignID(categoria.NewID(r.nextID))
	r.rows[c.ID()] = snapshotCategoria(c)
	return nil
}

func (r *CategoriaRepository) Atualizar(_ context.Context, c *categoria.Categoria) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[c.ID()]
	if !ok {
		return categoria.NewCategoriaNotFoundError(c.ID())
	}
	if row.Version != c.Version() {
		return categoria.NewConcurrentModificationError(c.ID())
	}
	c.IncrementVersionForSave()
	r.rows[c.ID()] = snapshotCategoria(c)
	return nil
}

func (r *CategoriaRepository) Remover(_ context.Context, c *categoria.Categoria) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[c.ID()]; !ok {
		return categoria.NewCategoriaNotFoundError(c.ID())
	}
	delete(r.rows, c.ID())
	return nil
}

func (r *CategoriaRepository) Existe(_ context.Context, id categoria.ID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rows[id]
	return ok, nil
}

func (r *CategoriaRepository) BuscarPorNome(_ context.Context, nome string) (*categoria.Categoria, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, row := range r.rows {
		if strings.EqualFold(row.Nome, strings.TrimSpace(nome)) {
			return categoria.RebuildFromDTO(row), nil
		}
	}
	return nil, nil
}

func (r *CategoriaRepository) ListarAtivas(ctx context.Context) ([]*categoria.Categoria, error) {
	all, err := r.Listar(ctx)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, c := range all {
		if c.Ativo() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *CategoriaRepository) TemMedicamentos(ctx context.Context, id categoria.ID) (bool, error) {
	if r.medicamentos == nil {
		return false, nil
	}
	found, err := r.medicamentos.BuscarPorCategoria(ctx, id)
	if err != nil {
		return false, err
	}
	return len(found) > 0, nil
}

func snapshotCategoria(c *categoria.Categoria) categoria.ReconstructionDTO {
	return categoria.ReconstructionDTO{
		ID:           c.ID(),
		Nome:         c.Nome(),
		Descricao:    c.Descricao(),
		Cor:          c.Cor(),
		Ativo:        c.Ativo(),
		Version:      c.Version(),
		CriadoEm:     c.CriadoEm(),
		AtualizadoEm: c.AtualizadoEm(),
	}
}

var _ categoria.Repository = (*CategoriaRepository)(nil)
