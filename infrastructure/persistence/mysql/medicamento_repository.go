package mysql

import (
	"context"
	"errors"
	"strings"

	"meusmedicamentos/domain/categoria"
	"meusmedicamentos/domain/medicamento"
	"meusmedicamentos/domain/shared"
	"meusmedicamentos/infrastructure/persistence"
	"meusmedicamentos/infrastructure/persistence/mysql/po"
	"meusmedicamentos/infrastructure/persistence/specification"

	"gorm.io/gorm"
)

// MedicamentoRepository is the GORM repository. It only uses portable SQL,
// so the same code serves MySQL and PostgreSQL connections.
type MedicamentoRepository struct {
	db         *gorm.DB
	translator specification.Translator
}

func NewMedicamentoRepository(db *gorm.DB) *MedicamentoRepository {
	return &MedicamentoRepository{db: db, translator: specification.NewSQLTranslator()}
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "Duplicate entry") ||
		strings.Contains(errStr, "1062") ||
		strings.Contains(errStr, "duplicate key value")
}

func (r *MedicamentoRepository) BuscarPorID(ctx context.Context, id medicamento.ID) (*medicamento.Medicamento, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	var row po.MedicamentoPO
	if err := persistence.DB(ctx, r.db).First(&row, "id = ?", id.Valor()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, medicamento.NewMedicamentoNotFoundError(id)
		}
		return nil, err
	}
	return row.ToDomain()
}

func (r *MedicamentoRepository) Listar(ctx context.Context) ([]*medicamento.Medicamento, error) {
	return r.find(persistence.DB(ctx, r.db).Order("id"))
}

// Adicionar inserts the row and binds the generated id to the aggregate and its pending events.
func (r *MedicamentoRepository) Adicionar(ctx context.Context, m *medicamento.Medicamento) error {
	row := po.FromMedicamentoDomain(m)
	row.ID = 0
	if err := persistence.DB(ctx, r.db).Create(row).Error; err != nil {
		if isDuplicateKeyError(err) {
			return medicamento.NewCodigoBarrasDuplicadoError(m.CodigoBarras())
		}
		return err
	}
	m.AtribuirID(medicamento.NewID(row.ID))
	return nil
}

// Atualizar is guarded by the aggregate version; a stale copy gets a concurrent-modification error.
func (r *MedicamentoRepository) Atualizar(ctx context.Context, m *medicamento.Medicamento) error {
	db := persistence.DB(ctx, r.db)
	expected := m.Version()
	row := po.FromMedicamentoDomain(m)

	result := db.Model(&po.MedicamentoPO{}).
		Where("id = ? AND version = ?", m.ID().Valor(), expected).
		Updates(row.UpdateColumns(expected + 1))
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return medicamento.NewCodigoBarrasDuplicadoError(m.CodigoBarras())
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&po.MedicamentoPO{}).Where("id = ?", m.ID().Valor()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return medicamento.NewMedicamentoNotFoundError(m.ID())
		}
		return medicamento.NewConcurrentModificationError(m.ID())
	}

	m.IncrementVersionForSave()
	return nil
}

func (r *MedicamentoRepository) Remover(ctx context.Context, m *medicamento.Medicamento) error {
	result := persistence.DB(ctx, r.db).Delete(&po.MedicamentoPO{}, "id = ?", m.ID().Valor())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return medicamento.NewMedicamentoNotFoundError(m.ID())
	}
	return nil
}

func (r *MedicamentoRepository) Existe(ctx context.Context, id medicamento.ID) (bool, error) {
	var count int64
	err := persistence.DB(ctx, r.db).Model(&po.MedicamentoPO{}).Where("id = ?", id.Valor()).Count(&count).Error
	return count > 0, err
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

// BuscarComFiltros counts and pages in SQL when the filter translates, in memory otherwise.
func (r *MedicamentoRepository) BuscarComFiltros(ctx context.Context, filtro medicamento.Filtro) ([]*medicamento.Medicamento, int, error) {
	filtro = filtro.Normalizado()
	spec := filtro.Specification()

	cond, ok := r.translator.Translate(spec)
	if !ok {
		all, err := r.Listar(ctx)
		if err != nil {
			return nil, 0, err
		}
		matches := shared.Filter(ctx, all, spec)
		medicamento.Ordenar(matches, filtro.OrdenarPor, filtro.OrdemDecrescente)
		return medicamento.Paginar(matches, filtro), len(matches), nil
	}

	var total int64
	if err := where(persistence.DB(ctx, r.db).Model(&po.MedicamentoPO{}), cond).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	page, err := r.find(where(persistence.DB(ctx, r.db), cond).
		Order(ordem(filtro.OrdenarPor, filtro.OrdemDecrescente)).
		Offset(filtro.Offset()).
		Limit(filtro.ItensPorPagina))
	if err != nil {
		return nil, 0, err
	}
	return page, int(total), nil
}

func (r *MedicamentoRepository) BuscarPorEspecificacao(ctx context.Context, spec shared.Specification[*medicamento.Medicamento]) ([]*medicamento.Medicamento, error) {
	cond, ok := r.translator.Translate(spec)
	if !ok {
		all, err := r.Listar(ctx)
		if err != nil {
			return nil, err
		}
		return shared.Filter(ctx, all, spec), nil
	}
	return r.find(where(persistence.DB(ctx, r.db), cond).Order("id"))
}

func (r *MedicamentoRepository) Contar(ctx context.Context) (int, error) {
	var count int64
	err := persistence.DB(ctx, r.db).Model(&po.MedicamentoPO{}).Count(&count).Error
	return int(count), err
}

// ContarPorStatusVencimento classifies in Go so the buckets follow the domain's day arithmetic.
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

func (r *MedicamentoRepository) find(db *gorm.DB) ([]*medicamento.Medicamento, error) {
	var rows []po.MedicamentoPO
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*medicamento.Medicamento, 0, len(rows))
	for i := range rows {
		m, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func where(db *gorm.DB, cond specification.Condition) *gorm.DB {
	if cond.SQL == "" {
		return db
	}
	return db.Where(cond.SQL, cond.Args...)
}

// ordem keeps id as the tie-breaker so pages are stable.
func ordem(por medicamento.Ordenacao, decrescente bool) string {
	coluna := "LOWER(nome)"
	switch por {
	case medicamento.OrdenarPorDataValidade:
		coluna = "data_validade"
	case medicamento.OrdenarPorQuantidadeAtual:
		coluna = "quantidade_atual"
	}
	if decrescente {
		return coluna + " DESC, id DESC"
	}
	return coluna + " ASC, id ASC"
}

var _ medicamento.Repository = (*MedicamentoRepository)(nil)
