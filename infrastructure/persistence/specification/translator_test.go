package specification

import (
	"context"
	"testing"
	"time"

	"meusmedicamentos/domain/categoria"
	"meusmedicamentos/domain/medicamento"
	"meusmedicamentos/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type semSQL struct{}

func (semSQL) IsSatisfiedBy(context.Context, *medicamento.Medicamento) bool { return true }

func fixedTranslator() *SQLTranslator {
	hoje := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	return &SQLTranslator{now: func() time.Time { return hoje }}
}

func TestTranslate_Concrete(t *testing.T) {
	dia := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		spec shared.Specification[*medicamento.Medicamento]
		sql  string
		args []any
	}{
		{"ativos", medicamento.Ativos(), "(ativo = ?)", []any{true}},
		{"estoque baixo", medicamento.ComEstoqueBaixo(), "(quantidade_atual <= quantidade_minima)", nil},
		{"vencidos", medicamento.Vencidos(), "(data_validade < ?)", []any{dia}},
		{"vence em", medicamento.VencendoEm(30), "(data_validade >= ? AND data_validade <= ?)", []any{dia, dia.AddDate(0, 0, 30)}},
		{"vence em negativo", medicamento.VencendoEm(-1), "1 = 0", nil},
		{"nome", medicamento.PorNome(" Dipi "), "(LOWER(nome) LIKE ? OR LOWER(principio_ativo) LIKE ?)", []any{"%dipi%", "%dipi%"}},
		{"local escapa curinga", medicamento.PorLocal("50%"), "(LOWER(local_armazenamento) LIKE ?)", []any{`%50\%%`}},
		{"forma", medicamento.PorFormaSpecification{Forma: medicamento.FormaXarope}, "(forma = ?)", []any{"Xarope"}},
		{"categoria", medicamento.PorCategoriaSpecification{CategoriaID: categoria.NewID(2)}, "(categoria_id = ?)", []any{2}},
		{"sem categoria", medicamento.PorCategoriaSpecification{}, "(categoria_id IS NULL)", nil},
		{"codigo vazio", medicamento.PorCodigoBarrasSpecification{}, "1 = 0", nil},
	}

	tr := fixedTranslator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, ok := tr.Translate(tt.spec)
			require.True(t, ok)
			assert.Equal(t, tt.sql, cond.SQL)
			assert.Equal(t, tt.args, cond.Args)
		})
	}
}

func TestTranslate_Composites(t *testing.T) {
	tr := fixedTranslator()

	cond, ok := tr.Translate(shared.And(medicamento.Ativos(), shared.Or(medicamento.ComEstoqueBaixo(), shared.Not(medicamento.PorNome("x")))))
	require.True(t, ok)
	assert.Equal(t,
		"((ativo = ?) AND ((quantidade_atual <= quantidade_minima) OR (NOT (LOWER(nome) LIKE ? OR LOWER(principio_ativo) LIKE ?))))",
		cond.SQL)
	assert.Equal(t, []any{true, "%x%", "%x%"}, cond.Args)
}

func TestTranslate_NilAndUnknown(t *testing.T) {
	tr := fixedTranslator()

	cond, ok := tr.Translate(nil)
	assert.True(t, ok)
	assert.Empty(t, cond.SQL)

	_, ok = tr.Translate(shared.And(medicamento.Ativos(), semSQL{}))
	assert.False(t, ok)
}

func TestTranslate_FiltroSpecification(t *testing.T) {
	f := medicamento.NovoFiltro()
	f.Nome = "dip"

	cond, ok := fixedTranslator().Translate(f.Specification())
	require.True(t, ok)
	assert.Equal(t, "((LOWER(nome) LIKE ? OR LOWER(principio_ativo) LIKE ?) AND (ativo = ?))", cond.SQL)
}
