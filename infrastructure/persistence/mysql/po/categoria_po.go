package po

import (
	"time"

	"meusmedicamentos/domain/categoria"
)

type CategoriaPO struct {
	ID           int       `gorm:"primaryKey;autoIncrement"`
	Nome         string    `gorm:"size:50;not null;uniqueIndex"`
	Descricao    string    `gorm:"size:255"`
	Cor          string    `gorm:"size:7"`
	Ativo        bool      `gorm:"not null;default:true"`
	Version      int       `gorm:"not null;default:0"`
	CriadoEm     time.Time `gorm:"not null"`
	AtualizadoEm *time.Time
}

func (CategoriaPO) TableName() string {
	return "categorias"
}

func FromCategoriaDomain(c *categoria.Categoria) *CategoriaPO {
	return &CategoriaPO{
		ID:           c.ID().Valor(),
		Nome:         c.Nome(),
		Descricao:    c.Descricao(),
		Cor:          c.Cor(),
		Ativo:        c.Ativo(),
		Version:      c.Version(),
		CriadoEm:     c.CriadoEm(),
		AtualizadoEm: c.AtualizadoEm(),
	}
}

func (p *CategoriaPO) ToDomain() *categoria.Categoria {
	return categoria.RebuildFromDTO(categoria.ReconstructionDTO{
		ID:           categoria.NewID(p.ID),
		Nome:         p.Nome,
		Descricao:    p.Descricao,
		Cor:          p.Cor,
		Ativo:        p.Ativo,
		Version:      p.Version,
		CriadoEm:     p.CriadoEm,
		AtualizadoEm: p.AtualizadoEm,
	})
}
