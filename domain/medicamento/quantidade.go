package medicamento

import (
	"strconv"

	"meusmedicamentos/domain/shared"
)

// QuantidadeMaxima is the inclusive upper bound of any stock quantity.
const QuantidadeMaxima = 10000

// Quantidade is a stock count in [0, 10000].
type Quantidade struct {
	valor int
}

func NewQuantidade(valor int) (Quantidade, error) {
	if valor < 0 {
		return Quantidade{}, shared.NewDomainRuleError("quantidade", "quantidade", "Quantidade não pode ser negativa")
	}
	if valor > QuantidadeMaxima {
		return Quantidade{}, shared.NewDomainRuleError("quantidade", "quantidade",
			"Quantidade muito alta. Máximo permitido: "+strconv.Itoa(QuantidadeMaxima))
	}
	return Quantidade{valor: valor}, nil
}

func QuantidadeZero() Quantidade { return Quantidade{} }

func (q Quantidade) Valor() int { return q.valor }

func (q Quantidade) EstaEsgotada() bool { return q.valor == 0 }

// EstaBaixoDe is inclusive: a quantity equal to the minimum is already low.
func (q Quantidade) EstaBaixoDe(minima Quantidade) bool { return q.valor <= minima.valor }

// Adicionar returns a new validated quantity; delta may be negative.
func (q Quantidade) Adicionar(delta int) (Quantidade, error) { return NewQuantidade(q.valor + delta) }

func (q Quantidade) Subtrair(delta int) (Quantidade, error) { return NewQuantidade(q.valor - delta) }

// Compare returns -1, 0 or 1.
func (q Quantidade) Compare(other Quantidade) int {
	switch {
	case q.valor < other.valor:
		return -1
	case q.valor > other.valor:
		return 1
	default:
		return 0
	}
}

func (q Quantidade) MenorQue(other Quantidade) bool     { return q.valor < other.valor }
func (q Quantidade) MenorOuIgual(other Quantidade) bool { return q.valor <= other.valor }
func (q Quantidade) MaiorQue(other Quantidade) bool     { return q.valor > other.valor }
func (q Quantidade) MaiorOuIgual(other Quantidade) bool { return q.valor >= other.valor }

func (q Quantidade) String() string { return strconv.Itoa(q.valor) }

func (q Quantidade) Components() []any { return []any{q.valor} }

func (q Quantidade) Equals(other Quantidade) bool { return shared.StructurallyEqual(q, other) }
