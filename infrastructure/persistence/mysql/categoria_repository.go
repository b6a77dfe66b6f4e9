package mysql

import (
	"context"
	"errors"
	"strings"

	"meusmedicamentos/domain/categoria"
	"meusmedicamentos/infrastructure/persistence"
	"meusmedicamentos/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type CategoriaRepository struct {
	db *gorm.DB
}

func NewCategoriaRepository(db *gorm.DB) *CategoriaRepository {
	return &CategoriaRepository{db: db}
}

func (r *CategoriaRepository) BuscarPorID(ctx context.Context, id categoria.ID) (*categoria.Categoria, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	var row po.CategoriaPO
	if err := persistence.DB(ctx, r.db).First(&row, "id = ?", id.Valor()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, categoria.NewCategoriaNotFoundError(id)
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// Listar orders by name.
func (r *CategoriaRepository) Listar(ctx context.Context) ([]*categoria.Categoria, error) {
	return r.find(persistence.DB(ctx, r.db))
}

func (r *CategoriaRepository) ListarAtivas(ctx context.Context) ([]*categoria.Categoria, error) {
	return r.find(persistence.DB(ctx, r.db).Where("ativo = ?", true))
}

func (r *CategoriaRepository) Adicionar(ctx context.Context, c *categoria.Categoria) error {
	row := po.FromCategoriaDomain(c)
	row.ID = 0
	if err := persistence.DB(ctx, r.db).Create(row).Error; err != nil {
		if isDuplicateKeyError(err) {
			return categoria.NewNomeDuplicadoError(c.Nome())
		}
		return err
	}
	c.AssignID(categoria.NewID(row.ID))
	return nil
}

func (r *CategoriaRepository) Atualizar(ctx context.Context, c *categoria.Categoria) error {
	db := persistence.DB(ctx, r.db)
	expected := c.Version()
	row := po.FromCategoriaDomain(c)

	result := db.Model(&po.CategoriaPO{}).
		Where("id = ? AND version = ?", c.ID().Valor(), expected).
		Updates(map[string]any{
			"nome":          row.Nome,
			"descricao":     row.Descricao,
			"cor":           row.Cor,
			"ativo":         row.Ativo,
			"version":       expected + 1,
			"atualizado_em": row.AtualizadoEm,
		})
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return categoria.NewNomeDuplicadoError(c.Nome())
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&po.CategoriaPO{}).Where("id = ?", c.ID().Valor()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return categoria.NewCategoriaNotFoundError(c.ID())
		}
		return categoria.NewConcurrentModificationError(c.ID())
	}

	c.IncrementVersionForSave()
	return nil
}

func (r *CategoriaRepository) Remover(ctx context.Context, c *categoria.Categoria) error {
	result := persistence.DB(ctx, r.db).Delete(&po.CategoriaPO{}, "id = ?", c.ID().Valor())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return categoria.NewCategoriaNotFoundError(c.ID())
	}
	return nil
}

func (r *CategoriaRepository) Existe(ctx context.Context, id categoria.ID) (bool, error) {
	var count int64
	err := persistence.DB(ctx, r.db).Model(&po.CategoriaPO{}).Where("id = ?", id.Valor()).Count(&count).Error
	return count > 0, err
}

// BuscarPorNome returns nil, nil when absent.
func (r *CategoriaRepository) BuscarPorNome(ctx context.Context, nome string) (*categoria.Categoria, error) {
	var row po.CategoriaPO
	err := persistence.DB(ctx, r.db).
		Where("LOWER(nome) = ?", strings.ToLower(strings.TrimSpace(nome))).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// TemMedicamentos counts inactive medications too; they still reference the category.
func (r *CategoriaRepository) TemMedicamentos(ctx context.Context, id categoria.ID) (bool, error) {
	var count int64
	err := persistence.DB(ctx, r.db).Model(&po.MedicamentoPO{}).
		Where("categoria_id = ?", id.Valor()).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

func (r *CategoriaRepository) find(db *gorm.DB) ([]*categoria.Categoria, error) {
	var rows []po.CategoriaPO
	if err := db.Order("nome").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*categoria.Categoria, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

var _ categoria.Repository = (*CategoriaRepository)(nil)
