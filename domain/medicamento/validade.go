package medicamento

import (
	"time"

	"meusmedicamentos/domain/shared"
)

const (
	validadeMinimaAnos = 2
	validadeMaximaAnos = 10
	formatoData        = "02/01/2006"
)

// ErrDiasNegativos is returned by VenceEm for a negative window.
var ErrDiasNegativos = shared.NewDomainRuleError("data_validade", "dias", "Número de dias deve ser positivo")

// StatusVencimento classifies an expiry date relative to today.
type StatusVencimento int

const (
	StatusNormal StatusVencimento = iota
	StatusVenceEm30Dias
	StatusVenceEm7Dias
	StatusVencido
)

func (s StatusVencimento) String() string {
	switch s {
	case StatusVenceEm30Dias:
		return "VenceEm30Dias"
	case StatusVenceEm7Dias:
		return "VenceEm7Dias"
	case StatusVencido:
		return "Vencido"
	default:
		return "Normal"
	}
}

// Dia truncates t to its calendar date; time of day and zone are discarded.
func Dia(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Hoje is today's calendar date.
func Hoje() time.Time { return Dia(time.Now()) }

// DataValidade is an expiry date within [today-2y, today+10y] at day precision.
type DataValidade struct {
	valor time.Time
}

func NewDataValidade(valor time.Time) (DataValidade, error) {
	return NewDataValidadeEm(valor, Hoje())
}

// NewDataValidadeEm validates the window relative to the given day.
func NewDataValidadeEm(valor, hoje time.Time) (DataValidade, error) {
	hoje = Dia(hoje)
	data := Dia(valor)

	minimo := hoje.AddDate(-validadeMinimaAnos, 0, 0)
	if data.Before(minimo) {
		return DataValidade{}, shared.NewDomainRuleError("data_validade", "dataValidade",
			"Data de validade muito antiga. Mínimo: "+minimo.Format(formatoData))
	}

	maximo := hoje.AddDate(validadeMaximaAnos, 0, 0)
	if data.After(maximo) {
		return DataValidade{}, shared.NewDomainRuleError("data_validade", "dataValidade",
			"Data de validade muito futura. Máximo: "+maximo.Format(formatoData))
	}

	return DataValidade{valor: data}, nil
}

// RestoreDataValidade rebuilds a stored date without re-checking the window,
// which moves with time.
func RestoreDataValidade(valor time.Time) DataValidade {
	return DataValidade{valor: Dia(valor)}
}

func (d DataValidade) Valor() time.Time { return d.valor }

func (d DataValidade) EstaVencido() bool { return d.EstaVencidoEm(Hoje()) }

func (d DataValidade) EstaVencidoEm(hoje time.Time) bool {
	return d.valor.Before(Dia(hoje))
}

// VenceEm reports whether the date falls within the next dias days and is not yet expired.
func (d DataValidade) VenceEm(dias int) (bool, error) {
	return d.VenceEmAPartirDe(Hoje(), dias)
}

func (d DataValidade) VenceEmAPartirDe(hoje time.Time, dias int) (bool, error) {
	if dias < 0 {
		return false, ErrDiasNegativos
	}
	return d.venceEm(Dia(hoje), dias), nil
}

func (d DataValidade) venceEm(hoje time.Time, dias int) bool {
	limite := hoje.AddDate(0, 0, dias)
	return !d.valor.After(limite) && !d.valor.Before(hoje)
}

// DiasParaVencimento is zero once expired.
func (d DataValidade) DiasParaVencimento() int { return d.DiasParaVencimentoEm(Hoje()) }

func (d DataValidade) DiasParaVencimentoEm(hoje time.Time) int {
	hoje = Dia(hoje)
	if d.valor.Before(hoje) {
		return 0
	}
	return int(d.valor.Sub(hoje).Hours() / 24)
}

func (d DataValidade) Status() StatusVencimento { return d.StatusEm(Hoje()) }

func (d DataValidade) StatusEm(hoje time.Time) StatusVencimento {
	hoje = Dia(hoje)
	switch {
	case d.valor.Before(hoje):
		return StatusVencido
	case d.venceEm(hoje, 7):
		return StatusVenceEm7Dias
	case d.venceEm(hoje, 30):
		return StatusVenceEm30Dias
	default:
		return StatusNormal
	}
}

func (d DataValidade) String() string { return d.valor.Format(formatoData) }

func (d DataValidade) Components() []any { return []any{d.valor} }

func (d DataValidade) Equals(other DataValidade) bool { return shared.StructurallyEqual(d, other) }
