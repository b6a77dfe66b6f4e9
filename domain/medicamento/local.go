package medicamento

import (
	"strings"
	"unicode/utf8"

	"meusmedicamentos/domain/shared"
)

const localMaxLen = 100

// LocalArmazenamento is where the item is kept. Equality ignores case.
type LocalArmazenamento struct {
	descricao string
}

func NewLocalArmazenamento(descricao string) (LocalArmazenamento, error) {
	if strings.TrimSpace(descricao) == "" {
		return LocalArmazenamento{}, shared.NewDomainRuleError("local_armazenamento", "local", "Local de armazenamento não pode ser vazio")
	}
	if utf8.RuneCountInString(descricao) > localMaxLen {
		return LocalArmazenamento{}, shared.NewDomainRuleError("local_armazenamento", "local", "Descrição do local muito longa (máximo 100 caracteres)")
	}
	return LocalArmazenamento{descricao: strings.TrimSpace(descricao)}, nil
}

var (
	GavetaDoQuarto    = LocalArmazenamento{descricao: "Gaveta do Quarto"}
	ArmarioDaCozinha  = LocalArmazenamento{descricao: "Armário da Cozinha"}
	Geladeira         = LocalArmazenamento{descricao: "Geladeira"}
	ArmarioDoBanheiro = LocalArmazenamento{descricao: "Armário do Banheiro"}
)

func (l LocalArmazenamento) Descricao() string { return l.descricao }

func (l LocalArmazenamento) String() string { return l.descricao }

func (l LocalArmazenamento) Components() []any { return []any{strings.ToUpper(l.descricao)} }

func (l LocalArmazenamento) Equals(other LocalArmazenamento) bool {
	return shared.StructurallyEqual(l, other)
}
