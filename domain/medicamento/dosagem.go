package medicamento

import (
	"regexp"
	"strconv"
	"strings"

	"meusmedicamentos/domain/shared"
)

var dosagemPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(\p{L}+)$`)

var unidadesAceitas = map[string]struct{}{
	"mg":          {},
	"g":           {},
	"ml":          {},
	"l":           {},
	"ui":          {},
	"mcg":         {},
	"comprimido":  {},
	"comprimidos": {},
	"cápsula":     {},
	"cápsulas":    {},
}

// Dosagem is "<number><unit>", e.g. "500mg" or "1 comprimido".
type Dosagem struct {
	valor   string
	unidade string
}

// NewDosagem parses the raw text. The unit is matched case-insensitively and stored lower-cased.
func NewDosagem(raw string) (Dosagem, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Dosagem{}, shared.NewDomainRuleError("dosagem", "dosagem", "Dosagem não pode ser vazia")
	}

	match := dosagemPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return Dosagem{}, shared.NewDomainRuleError("dosagem", "dosagem", "Formato de dosagem inválido: "+raw)
	}

	unidade := strings.ToLower(match[2])
	if _, ok := unidadesAceitas[unidade]; !ok {
		return Dosagem{}, shared.NewDomainRuleError("dosagem", "unidade", "Unidade não reconhecida: "+unidade)
	}

	return Dosagem{valor: match[1], unidade: unidade}, nil
}

// NewDosagemFromParts builds a Dosagem from a numeric value and a unit.
func NewDosagemFromParts(valor float64, unidade string) (Dosagem, error) {
	return NewDosagem(strconv.FormatFloat(valor, 'f', -1, 64) + unidade)
}

func (d Dosagem) Valor() string   { return d.valor }
func (d Dosagem) Unidade() string { return d.unidade }
func (d Dosagem) IsZero() bool    { return d.valor == "" }

func (d Dosagem) String() string { return d.valor + d.unidade }

func (d Dosagem) Components() []any { return []any{d.valor, d.unidade} }

func (d Dosagem) Equals(other Dosagem) bool { return shared.StructurallyEqual(d, other) }
