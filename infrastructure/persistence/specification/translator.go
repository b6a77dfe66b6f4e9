// Package specification turns medication specifications into SQL conditions
// shared by the MySQL and PostgreSQL repositories.
package specification

import (
	"strings"
	"time"

	"meusmedicamentos/domain/medicamento"
	"meusmedicamentos/domain/shared"
)

// Condition is a parenthesised WHERE fragment with positional arguments.
type Condition struct {
	SQL  string
	Args []any
}

var nenhum = Condition{SQL: "1 = 0"}

// Translator converts domain specifications to SQL conditions.
type Translator interface {
	// Translate reports false when any part of spec has no SQL form;
	// callers then evaluate the specification in memory.
	Translate(spec shared.Specification[*medicamento.Medicamento]) (Condition, bool)
}

type SQLTranslator struct {
	now func() time.Time
}

func NewSQLTranslator() *SQLTranslator {
	return &SQLTranslator{now: time.Now}
}

// Translate returns an empty condition for a nil spec.
func (t *SQLTranslator) Translate(spec shared.Specification[*medicamento.Medicamento]) (Condition, bool) {
	if spec == nil {
		return Condition{}, true
	}

	switch s := spec.(type) {
	case shared.AndSpecification[*medicamento.Medicamento]:
		return t.combine("AND", s.Left, s.Right)
	case shared.OrSpecification[*medicamento.Medicamento]:
		return t.combine("OR", s.Left, s.Right)
	case shared.NotSpecification[*medicamento.Medicamento]:
		inner, ok := t.Translate(s.Spec)
		if !ok {
			return Condition{}, false
		}
		if inner.SQL == "" {
			return nenhum, true
		}
		return Condition{SQL: "(NOT " + inner.SQL + ")", Args: inner.Args}, true
	}
	return t.translateConcrete(spec)
}

func (t *SQLTranslator) combine(op string, left, right shared.Specification[*medicamento.Medicamento]) (Condition, bool) {
	l, ok := t.Translate(left)
	if !ok {
		return Condition{}, false
	}
	r, ok := t.Translate(right)
	if !ok {
		return Condition{}, false
	}
	switch {
	case l.SQL == "":
		if op == "OR" {
			return Condition{}, true
		}
		return r, true
	case r.SQL == "":
		if op == "OR" {
			return Condition{}, true
		}
		return l, true
	}
	return Condition{
		SQL:  "(" + l.SQL + " " + op + " " + r.SQL + ")",
		Args: append(append([]any{}, l.Args...), r.Args...),
	}, true
}

func (t *SQLTranslator) translateConcrete(spec shared.Specification[*medicamento.Medicamento]) (Condition, bool) {
	switch s := spec.(type) {
	case medicamento.AtivosSpecification:
		return Condition{SQL: "(ativo = ?)", Args: []any{true}}, true
	case medicamento.ComEstoqueBaixoSpecification:
		return Condition{SQL: "(quantidade_atual <= quantidade_minima)"}, true
	case medicamento.VencidosSpecification:
		return Condition{SQL: "(data_validade < ?)", Args: []any{t.referencia(s.Referencia)}}, true
	case medicamento.VenceEmSpecification:
		if s.Dias < 0 {
			return nenhum, true
		}
		inicio := t.referencia(s.Referencia)
		return Condition{
			SQL:  "(data_validade >= ? AND data_validade <= ?)",
			Args: []any{inicio, inicio.AddDate(0, 0, s.Dias)},
		}, true
	case medicamento.PorNomeSpecification:
		termo := like(s.Termo)
		return Condition{
			SQL:  "(LOWER(nome) LIKE ? OR LOWER(principio_ativo) LIKE ?)",
			Args: []any{termo, termo},
		}, true
	case medicamento.PorPrincipioAtivoSpecification:
		return Condition{SQL: "(LOWER(principio_ativo) LIKE ?)", Args: []any{like(s.Termo)}}, true
	case medicamento.PorFabricanteSpecification:
		return Condition{SQL: "(LOWER(fabricante) LIKE ?)", Args: []any{like(s.Termo)}}, true
	case medicamento.PorLocalSpecification:
		return Condition{SQL: "(LOWER(local_armazenamento) LIKE ?)", Args: []any{like(s.Termo)}}, true
	case medicamento.PorFormaSpecification:
		return Condition{SQL: "(forma = ?)", Args: []any{s.Forma.String()}}, true
	case medicamento.PorCategoriaSpecification:
		if s.CategoriaID.IsZero() {
			return Condition{SQL: "(categoria_id IS NULL)"}, true
		}
		return Condition{SQL: "(categoria_id = ?)", Args: []any{s.CategoriaID.Valor()}}, true
	case medicamento.PorCodigoBarrasSpecification:
		codigo := strings.TrimSpace(s.Codigo)
		if codigo == "" {
			return nenhum, true
		}
		return Condition{SQL: "(codigo_barras = ?)", Args: []any{codigo}}, true
	}
	return Condition{}, false
}

func (t *SQLTranslator) referencia(ref time.Time) time.Time {
	if ref.IsZero() {
		ref = t.now()
	}
	return medicamento.Dia(ref)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// like builds a lower-cased "contains" pattern; wildcards typed by the user match literally.
func like(termo string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(termo))) + "%"
}

var _ Translator = (*SQLTranslator)(nil)
