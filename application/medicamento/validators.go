package medicamento

import (
	"context"
	"regexp"

	"meusmedicamentos/application/common"
	"meusmedicamentos/domain/medicamento"
)

const (
	validadeAnosPassado = 2
	validadeAnosFuturo  = 10
	observacoesMaxLen   = 500
	loteMaxLen          = 50
	motivoMaxLen        = 200
	janelaMaximaDias    = 365
)

var codigoBarrasPattern = regexp.MustCompile(`^\d{13}$`)

func validarForma(r *common.RuleSet, forma string) {
	if forma == "" {
		r.Add("forma", "Forma farmacêutica é obrigatória")
		return
	}
	_, err := medicamento.ParseFormaFarmaceutica(forma)
	r.Check(err == nil, "forma", "Forma farmacêutica inválida")
}

func validarDescricao(r *common.RuleSet, nome, principioAtivo, fabricante, observacoes string) {
	r.Required("nome", nome, "Nome do medicamento é obrigatório").
		MaxLength("nome", nome, medicamento.NomeMaxLen, "Nome deve ter no máximo 100 caracteres").
		Required("principio_ativo", principioAtivo, "Princípio ativo é obrigatório").
		MaxLength("principio_ativo", principioAtivo, medicamento.PrincipioAtivoMaxLen, "Princípio ativo deve ter no máximo 100 caracteres").
		Required("fabricante", fabricante, "Fabricante é obrigatório").
		MaxLength("fabricante", fabricante, medicamento.FabricanteMaxLen, "Fabricante deve ter no máximo 50 caracteres").
		OptionalMaxLength("observacoes", observacoes, observacoesMaxLen, "Observações devem ter no máximo 500 caracteres")
}

func validarQuantidadeMinima(r *common.RuleSet, minima *int) {
	if minima != nil {
		r.Between("quantidade_minima", *minima, 0, medicamento.QuantidadeMaxima,
			"Quantidade mínima deve estar entre 0 e 10000")
	}
}

// cadastroDadosValidator checks the descriptive fields of a registration.
func cadastroDadosValidator() common.Validator[CadastrarMedicamento] {
	return common.ValidatorFunc[CadastrarMedicamento](func(_ context.Context, cmd CadastrarMedicamento) []common.ValidationFailure {
		r := &common.RuleSet{}
		validarDescricao(r, cmd.Nome, cmd.PrincipioAtivo, cmd.Fabricante, cmd.Observacoes)
		r.Required("dosagem", cmd.Dosagem, "Dosagem é obrigatória")
		validarForma(r, cmd.Forma)
		r.Required("local_armazenamento", cmd.LocalArmazenamento, "Local de armazenamento é obrigatório").
			MaxLength("local_armazenamento", cmd.LocalArmazenamento, 100, "Local de armazenamento deve ter no máximo 100 caracteres").
			OptionalMaxLength("lote", cmd.Lote, loteMaxLen, "Lote deve ter no máximo 50 caracteres").
			Check(cmd.CodigoBarras == "" || codigoBarrasPattern.MatchString(cmd.CodigoBarras),
				"codigo_barras", "Código de barras deve ter exatamente 13 dígitos").
			NonNegative("categoria_id", cmd.CategoriaID, "Categoria inválida")
		return r.Failures()
	})
}

// cadastroEstoqueValidator checks quantities and the expiry window.
func cadastroEstoqueValidator() common.Validator[CadastrarMedicamento] {
	return common.ValidatorFunc[CadastrarMedicamento](func(_ context.Context, cmd CadastrarMedicamento) []common.ValidationFailure {
		r := &common.RuleSet{}
		r.Between("quantidade_atual", cmd.QuantidadeAtual, 0, medicamento.QuantidadeMaxima,
			"Quantidade atual deve estar entre 0 e 10000")
		validarQuantidadeMinima(r, cmd.QuantidadeMinima)
		r.ExpiryWindow("data_validade", cmd.DataValidade.Time, medicamento.Hoje(), validadeAnosPassado, validadeAnosFuturo)
		return r.Failures()
	})
}

func atualizarValidator() common.Validator[AtualizarMedicamento] {
	return common.ValidatorFunc[AtualizarMedicamento](func(_ context.Context, cmd AtualizarMedicamento) []common.ValidationFailure {
		r := &common.RuleSet{}
		r.PositiveID("id", cmd.ID, "ID do medicamento é obrigatório")
		validarDescricao(r, cmd.Nome, cmd.PrincipioAtivo, cmd.Fabricante, cmd.Observacoes)
		validarQuantidadeMinima(r, cmd.QuantidadeMinima)
		r.OptionalMaxLength("local_armazenamento", cmd.LocalArmazenamento, 100,
			"Local de armazenamento deve ter no máximo 100 caracteres").
			NonNegative("categoria_id", cmd.CategoriaID, "Categoria inválida")
		return r.Failures()
	})
}

func movimentarValidator() common.Validator[MovimentarEstoque] {
	return common.ValidatorFunc[MovimentarEstoque](func(_ context.Context, cmd MovimentarEstoque) []common.ValidationFailure {
		r := &common.RuleSet{}
		r.PositiveID("id", cmd.ID, "ID do medicamento é obrigatório").
			Check(cmd.Quantidade != 0, "quantidade", "Quantidade da movimentação não pode ser zero").
			Between("quantidade", cmd.Quantidade, -medicamento.QuantidadeMaxima, medicamento.QuantidadeMaxima,
				"Quantidade da movimentação deve estar entre -10000 e 10000").
			OptionalMaxLength("motivo", cmd.Motivo, motivoMaxLen, "Motivo deve ter no máximo 200 caracteres")
		return r.Failures()
	})
}

func mudarLocalValidator() common.Validator[MudarLocal] {
	return common.ValidatorFunc[MudarLocal](func(_ context.Context, cmd MudarLocal) []common.ValidationFailure {
		r := &common.RuleSet{}
		r.PositiveID("id", cmd.ID, "ID do medicamento é obrigatório").
			Required("local", cmd.Local, "Local de armazenamento é obrigatório").
			MaxLength("local", cmd.Local, 100, "Local de armazenamento deve ter no máximo 100 caracteres")
		return r.Failures()
	})
}

func alterarStatusValidator() common.Validator[AlterarStatus] {
	return common.ValidatorFunc[AlterarStatus](func(_ context.Context, cmd AlterarStatus) []common.ValidationFailure {
		r := &common.RuleSet{}
		r.PositiveID("id", cmd.ID, "ID do medicamento é obrigatório")
		return r.Failures()
	})
}

func sinalizarValidator() common.Validator[SinalizarVencimentos] {
	return common.ValidatorFunc[SinalizarVencimentos](func(_ context.Context, cmd SinalizarVencimentos) []common.ValidationFailure {
		r := &common.RuleSet{}
		r.Between("janela_dias", cmd.JanelaDias, 0, janelaMaximaDias, "Janela de alerta deve estar entre 0 e 365 dias")
		return r.Failures()
	})
}

func obterValidator() common.Validator[ObterMedicamento] {
	return common.ValidatorFunc[ObterMedicamento](func(_ context.Context, q ObterMedicamento) []common.ValidationFailure {
		r := &common.RuleSet{}
		r.PositiveID("id", q.ID, "ID do medicamento é obrigatório")
		return r.Failures()
	})
}

func listarValidator() common.Validator[ListarMedicamentos] {
	return common.ValidatorFunc[ListarMedicamentos](func(_ context.Context, q ListarMedicamentos) []common.ValidationFailure {
		r := &common.RuleSet{}
		r.NonNegative("pagina", q.Pagina, "Página deve ser positiva").
			Between("itens_por_pagina", q.ItensPorPagina, 0, medicamento.ItensPorPaginaMaximo,
				"Itens por página deve estar entre 1 e 100").
			NonNegative("categoria_id", q.CategoriaID, "Categoria inválida")
		if q.Forma != "" {
			_, err := medicamento.ParseFormaFarmaceutica(q.Forma)
			r.Check(err == nil, "forma", "Forma farmacêutica inválida")
		}
		if q.OrdenarPor != "" {
			_, ok := ordenacoes[q.OrdenarPor]
			r.Check(ok, "ordenar_por", "Ordenação deve ser nome, data_validade ou quantidade_atual")
		}
		return r.Failures()
	})
}
