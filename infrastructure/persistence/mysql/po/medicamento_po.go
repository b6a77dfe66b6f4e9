package po

import (
	"time"

	"meusmedicamentos/domain/categoria"
	"meusmedicamentos/domain/medicamento"
)

// MedicamentoPO maps the medicamentos table. It carries no behaviour;
// CategoriaID is a plain column, never a GORM association.
type MedicamentoPO struct {
	ID                 int       `gorm:"primaryKey;autoIncrement"`
	Nome               string    `gorm:"size:100;not null;index"`
	PrincipioAtivo     string    `gorm:"size:100;not null;index"`
	Dosagem            string    `gorm:"size:50;not null"`
	Forma              string    `gorm:"size:20;not null"`
	Fabricante         string    `gorm:"size:50"`
	DataValidade       time.Time `gorm:"type:date;not null;index"`
	QuantidadeAtual    int       `gorm:"not null;default:0"`
	QuantidadeMinima   int       `gorm:"not null;default:5"`
	LocalArmazenamento string    `gorm:"size:100;not null"`
	Lote               string    `gorm:"size:50"`
	CodigoBarras       *string   `gorm:"size:13;uniqueIndex"`
	Observacoes        string    `gorm:"size:500"`
	CategoriaID        *int      `gorm:"index"`
	Ativo              bool      `gorm:"not null;default:true;index"`
	Version            int       `gorm:"not null;default:0"`
	CriadoEm           time.Time `gorm:"not null"`
	AtualizadoEm       *time.Time
}

func (MedicamentoPO) TableName() string {
	return "medicamentos"
}

// FromMedicamentoDomain leaves an absent barcode NULL so the unique index ignores it.
func FromMedicamentoDomain(m *medicamento.Medicamento) *MedicamentoPO {
	p := &MedicamentoPO{
		ID:                 m.ID().Valor(),
		Nome:               m.Nome(),
		PrincipioAtivo:     m.PrincipioAtivo(),
		Dosagem:            m.Dosagem().String(),
		Forma:              m.Forma().String(),
		Fabricante:         m.Fabricante(),
		DataValidade:       m.DataValidade().Valor(),
		QuantidadeAtual:    m.QuantidadeAtual().Valor(),
		QuantidadeMinima:   m.QuantidadeMinima().Valor(),
		LocalArmazenamento: m.LocalArmazenamento().Descricao(),
		Lote:               m.Lote(),
		Observacoes:        m.Observacoes(),
		Ativo:              m.Ativo(),
		Version:            m.Version(),
		CriadoEm:           m.CriadoEm(),
		AtualizadoEm:       m.AtualizadoEm(),
	}
	if codigo := m.CodigoBarras(); codigo != "" {
		p.CodigoBarras = &codigo
	}
	if !m.CategoriaID().IsZero() {
		id := m.CategoriaID().Valor()
		p.CategoriaID = &id
	}
	return p
}

func (p *MedicamentoPO) ToDomain() (*medicamento.Medicamento, error) {
	forma, err := medicamento.ParseFormaFarmaceutica(p.Forma)
	if err != nil {
		return nil, err
	}
	dto := medicamento.ReconstructionDTO{
		ID:                 medicamento.NewID(p.ID),
		Nome:               p.Nome,
		PrincipioAtivo:     p.PrincipioAtivo,
		Dosagem:            p.Dosagem,
		Forma:              forma,
		Fabricante:         p.Fabricante,
		DataValidade:       p.DataValidade,
		QuantidadeAtual:    p.QuantidadeAtual,
		QuantidadeMinima:   p.QuantidadeMinima,
		LocalArmazenamento: p.LocalArmazenamento,
		Lote:               p.Lote,
		Observacoes:        p.Observacoes,
		Ativo:              p.Ativo,
		Version:            p.Version,
		CriadoEm:           p.CriadoEm,
		AtualizadoEm:       p.AtualizadoEm,
	}
	if p.CodigoBarras != nil {
		dto.CodigoBarras = *p.CodigoBarras
	}
	if p.CategoriaID != nil {
		dto.CategoriaID = categoria.NewID(*p.CategoriaID)
	}
	return medicamento.RebuildFromDTO(dto)
}

// UpdateColumns lists what Atualizar writes; id and criado_em never change.
func (p *MedicamentoPO) UpdateColumns(version int) map[string]any {
	return map[string]any{
		"nome":                p.Nome,
		"principio_ativo":     p.PrincipioAtivo,
		"dosagem":             p.Dosagem,
		"forma":               p.Forma,
		"fabricante":          p.Fabricante,
		"data_validade":       p.DataValidade,
		"quantidade_atual":    p.QuantidadeAtual,
		"quantidade_minima":   p.QuantidadeMinima,
		"local_armazenamento": p.LocalArmazenamento,
		"lote":                p.Lote,
		"codigo_barras":       p.CodigoBarras,
		"observacoes":         p.Observacoes,
		"categoria_id":        p.CategoriaID,
		"ativo":               p.Ativo,
		"version":             version,
		"atualizado_em":       p.AtualizadoEm,
	}
}
