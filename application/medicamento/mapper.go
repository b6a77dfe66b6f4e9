package medicamento

import (
	"time"

	"meusmedicamentos/application/common"
	"meusmedicamentos/domain/categoria"
	"meusmedicamentos/domain/medicamento"
)

func statusVencimentoTexto(s medicamento.StatusVencimento) string {
	switch s {
	case medicamento.StatusVencido:
		return "Vencido"
	case medicamento.StatusVenceEm7Dias:
		return "Vence em 7 dias"
	case medicamento.StatusVenceEm30Dias:
		return "Vence em 30 dias"
	default:
		return "Normal"
	}
}

func statusEstoqueTexto(m *medicamento.Medicamento) string {
	switch {
	case m.EstaEsgotado():
		return "Esgotado"
	case m.EstoqueEstaAbaixoDoMinimo():
		return "Estoque baixo"
	default:
		return "Normal"
	}
}

// toDTO fills the category fields when cat is not nil.
func toDTO(m *medicamento.Medicamento, cat *categoria.Categoria, hoje time.Time) MedicamentoDTO {
	validade := m.DataValidade()
	dto := MedicamentoDTO{
		ID:                        m.ID().Valor(),
		Nome:                      m.Nome(),
		PrincipioAtivo:            m.PrincipioAtivo(),
		Dosagem:                   m.Dosagem().String(),
		Forma:                     m.Forma().String(),
		Fabricante:                m.Fabricante(),
		DataValidade:              common.NewDate(validade.Valor()),
		QuantidadeAtual:           m.QuantidadeAtual().Valor(),
		QuantidadeMinima:          m.QuantidadeMinima().Valor(),
		LocalArmazenamento:        m.LocalArmazenamento().Descricao(),
		Lote:                      m.Lote(),
		CodigoBarras:              m.CodigoBarras(),
		Observacoes:               m.Observacoes(),
		Ativo:                     m.Ativo(),
		CategoriaID:               m.CategoriaID().Valor(),
		EstaVencido:               validade.EstaVencidoEm(hoje),
		EstoqueEstaAbaixoDoMinimo: m.EstoqueEstaAbaixoDoMinimo(),
		DiasParaVencimento:        validade.DiasParaVencimentoEm(hoje),
		StatusVencimento:          statusVencimentoTexto(validade.StatusEm(hoje)),
		StatusEstoque:             statusEstoqueTexto(m),
		CriadoEm:                  m.CriadoEm(),
		AtualizadoEm:              m.AtualizadoEm(),
	}
	if cat != nil {
		dto.CategoriaNome = cat.Nome()
		dto.CategoriaCor = cat.Cor()
	}
	return dto
}

func toResumo(m *medicamento.Medicamento, cat *categoria.Categoria, hoje time.Time) MedicamentoResumoDTO {
	validade := m.DataValidade()
	vence30, _ := validade.VenceEmAPartirDe(hoje, 30)
	r := MedicamentoResumoDTO{
		ID:                 m.ID().Valor(),
		Nome:               m.Nome(),
		PrincipioAtivo:     m.PrincipioAtivo(),
		Dosagem:            m.Dosagem().String(),
		DataValidade:       common.NewDate(validade.Valor()),
		QuantidadeAtual:    m.QuantidadeAtual().Valor(),
		LocalArmazenamento: m.LocalArmazenamento().Descricao(),
		EstaVencido:        validade.EstaVencidoEm(hoje),
		VenceEm30Dias:      vence30,
	}
	if cat != nil {
		r.CategoriaNome = cat.Nome()
		r.CategoriaCor = cat.Cor()
	}
	return r
}

func toSugestaoDTO(s medicamento.SugestaoCompra) SugestaoCompraDTO {
	return SugestaoCompraDTO{
		MedicamentoID:      s.MedicamentoID.Valor(),
		NomeMedicamento:    s.NomeMedicamento,
		QuantidadeAtual:    s.QuantidadeAtual,
		QuantidadeMinima:   s.QuantidadeMinima,
		QuantidadeSugerida: s.QuantidadeSugerida,
		Motivo:             s.Motivo,
	}
}

func indexarCategorias(cats []*categoria.Categoria) map[categoria.ID]*categoria.Categoria {
	idx := make(map[categoria.ID]*categoria.Categoria, len(cats))
	for _, c := range cats {
		idx[c.ID()] = c
	}
	return idx
}
