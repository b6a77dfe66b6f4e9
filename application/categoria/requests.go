package categoria

import (
	"context"
	"time"

	"meusmedicamentos/application/common"
	"meusmedicamentos/domain/categoria"
)

const descricaoMaxLen = 200

type CategoriaDTO struct {
	ID                int        `json:"id"`
	Nome              string     `json:"nome"`
	Descricao         string     `json:"descricao,omitempty"`
	Cor               string     `json:"cor,omitempty"`
	Ativo             bool       `json:"ativo"`
	TotalMedicamentos int        `json:"total_medicamentos"`
	CriadoEm          time.Time  `json:"criado_em"`
	AtualizadoEm      *time.Time `json:"atualizado_em,omitempty"`
}

func toDTO(c *categoria.Categoria, total int) CategoriaDTO {
	return CategoriaDTO{
		ID:                c.ID().Valor(),
		Nome:              c.Nome(),
		Descricao:         c.Descricao(),
		Cor:               c.Cor(),
		Ativo:             c.Ativo(),
		TotalMedicamentos: total,
		CriadoEm:          c.CriadoEm(),
		AtualizadoEm:      c.AtualizadoEm(),
	}
}

type CriarCategoria struct {
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
	Cor       string `json:"cor"`
}

func (CriarCategoria) RequestName() string { return "CriarCategoria" }

type AtualizarCategoria struct {
	ID        int    `json:"-"`
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
	Cor       string `json:"cor"`
}

func (AtualizarCategoria) RequestName() string { return "AtualizarCategoria" }

type AlterarStatusCategoria struct {
	ID    int  `json:"-"`
	Ativo bool `json:"ativo"`
}

func (AlterarStatusCategoria) RequestName() string { return "AlterarStatusCategoria" }

// RemoverCategoria fails with a conflict while medications still reference the category.
type RemoverCategoria struct {
	ID int
}

func (RemoverCategoria) RequestName() string { return "RemoverCategoria" }

type ListarCategorias struct {
	ApenasAtivas bool `form:"apenas_ativas"`
}

func (ListarCategorias) RequestName() string { return "ListarCategorias" }

func validarDados(r *common.RuleSet, nome, descricao string) {
	r.Required("nome", nome, "Nome da categoria é obrigatório").
		MaxLength("nome", nome, categoria.NomeMaxLen, "Nome da categoria deve ter no máximo 50 caracteres").
		OptionalMaxLength("descricao", descricao, descricaoMaxLen, "Descrição deve ter no máximo 200 caracteres")
}

func criarValidator() common.Validator[CriarCategoria] {
	return common.ValidatorFunc[CriarCategoria](func(_ context.Context, cmd CriarCategoria) []common.ValidationFailure {
		r := &common.RuleSet{}
		validarDados(r, cmd.Nome, cmd.Descricao)
		return r.Failures()
	})
}

func atualizarValidator() common.Validator[AtualizarCategoria] {
	return common.ValidatorFunc[AtualizarCategoria](func(_ context.Context, cmd AtualizarCategoria) []common.ValidationFailure {
		r := &common.RuleSet{}
		r.PositiveID("id", cmd.ID, "ID da categoria é obrigatório")
		validarDados(r, cmd.Nome, cmd.Descricao)
		return r.Failures()
	})
}

func idValidator[Req common.Request](id func(Req) int) common.Validator[Req] {
	return common.ValidatorFunc[Req](func(_ context.Context, req Req) []common.ValidationFailure {
		r := &common.RuleSet{}
		r.PositiveID("id", id(req), "ID da categoria é obrigatório")
		return r.Failures()
	})
}
