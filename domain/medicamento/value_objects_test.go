package medicamento

import (
	"testing"
	"time"

	"meusmedicamentos/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuantidade(t *testing.T) {
	for _, v := range []int{0, 1, 5, 9999, QuantidadeMaxima} {
		q, err := NewQuantidade(v)
		require.NoError(t, err, "valor %d", v)
		assert.Equal(t, v, q.Valor())
	}

	tests := []struct {
		valor   int
		wantErr string
	}{
		{-1, "Quantidade não pode ser negativa"},
		{-500, "Quantidade não pode ser negativa"},
		{10001, "Quantidade muito alta. Máximo permitido: 10000"},
	}
	for _, tt := range tests {
		_, err := NewQuantidade(tt.valor)
		require.Error(t, err)
		assert.True(t, shared.IsDomainRule(err))
		assert.Equal(t, tt.wantErr, err.Error())
	}
}

func TestQuantidadeArithmetic(t *testing.T) {
	q, _ := NewQuantidade(5)

	soma, err := q.Adicionar(3)
	require.NoError(t, err)
	assert.Equal(t, 8, soma.Valor())
	assert.Equal(t, 5, q.Valor(), "original is immutable")

	_, err = q.Subtrair(6)
	assert.True(t, shared.IsDomainRule(err))

	_, err = q.Adicionar(QuantidadeMaxima)
	assert.Error(t, err)

	tres, _ := NewQuantidade(3)
	assert.True(t, tres.MenorQue(q))
	assert.True(t, q.MaiorQue(tres))
	assert.True(t, q.MaiorOuIgual(q))
	assert.True(t, q.MenorOuIgual(q))
	assert.Equal(t, -1, tres.Compare(q))
	assert.Equal(t, 0, q.Compare(q))
	assert.True(t, q.EstaBaixoDe(q))
	assert.True(t, QuantidadeZero().EstaEsgotada())
}

func TestNewDosagem(t *testing.T) {
	tests := []struct {
		raw         string
		wantValor   string
		wantUnidade string
		wantErr     string
	}{
		{raw: "500mg", wantValor: "500", wantUnidade: "mg"},
		{raw: "2.5 ML", wantValor: "2.5", wantUnidade: "ml"},
		{raw: "1 comprimido", wantValor: "1", wantUnidade: "comprimido"},
		{raw: "2 Cápsulas", wantValor: "2", wantUnidade: "cápsulas"},
		{raw: "500xyz", wantErr: "Unidade não reconhecida: xyz"},
		{raw: "", wantErr: "Dosagem não pode ser vazia"},
		{raw: "   ", wantErr: "Dosagem não pode ser vazia"},
		{raw: "mg500", wantErr: "Formato de dosagem inválido: mg500"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			d, err := NewDosagem(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, shared.IsDomainRule(err))
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantValor, d.Valor())
			assert.Equal(t, tt.wantUnidade, d.Unidade())
		})
	}
}

func TestDosagemEquality(t *testing.T) {
	a, _ := NewDosagem("500mg")
	b, _ := NewDosagem("500 MG")
	c, _ := NewDosagemFromParts(500, "mg")
	d, _ := NewDosagem("250mg")

	assert.True(t, a.Equals(b))
	assert.True(t, a.Equals(c))
	assert.False(t, a.Equals(d))
	assert.Equal(t, shared.StructuralHash(a), shared.StructuralHash(b))
	assert.Equal(t, "500mg", a.String())
}

func TestNewDataValidadeEm(t *testing.T) {
	hoje := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	_, err := NewDataValidadeEm(hoje.AddDate(-3, 0, 0), hoje)
	require.Error(t, err)
	assert.Equal(t, "Data de validade muito antiga. Mínimo: 15/06/2023", err.Error())

	_, err = NewDataValidadeEm(hoje.AddDate(10, 0, 1), hoje)
	require.Error(t, err)
	assert.Equal(t, "Data de validade muito futura. Máximo: 15/06/2035", err.Error())

	limite, err := NewDataValidadeEm(hoje.AddDate(-2, 0, 0), hoje)
	require.NoError(t, err)
	assert.True(t, limite.EstaVencidoEm(hoje))

	d, err := NewDataValidadeEm(time.Date(2026, 6, 15, 18, 30, 0, 0, time.UTC), hoje)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), d.Valor(), "time of day is discarded")
	assert.False(t, d.EstaVencidoEm(hoje))
	assert.Equal(t, "15/06/2026", d.String())
}

func TestNewDataValidadeRelativeToToday(t *testing.T) {
	_, err := NewDataValidade(time.Now().AddDate(-3, 0, 0))
	assert.True(t, shared.IsDomainRule(err))

	d, err := NewDataValidade(time.Now().AddDate(1, 0, 0))
	require.NoError(t, err)
	assert.False(t, d.EstaVencido())
}

func TestDataValidadeStatus(t *testing.T) {
	hoje := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		offset   int
		want     StatusVencimento
		wantDias int
	}{
		{"yesterday", -1, StatusVencido, 0},
		{"today", 0, StatusVenceEm7Dias, 0},
		{"in 7 days", 7, StatusVenceEm7Dias, 7},
		{"in 8 days", 8, StatusVenceEm30Dias, 8},
		{"in 30 days", 30, StatusVenceEm30Dias, 30},
		{"in 31 days", 31, StatusNormal, 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDataValidadeEm(hoje.AddDate(0, 0, tt.offset), hoje)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.StatusEm(hoje))
			assert.Equal(t, tt.wantDias, d.DiasParaVencimentoEm(hoje))
		})
	}
}

func TestDataValidadeVenceEm(t *testing.T) {
	hoje := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	d, _ := NewDataValidadeEm(hoje.AddDate(0, 0, 10), hoje)

	ok, err := d.VenceEmAPartirDe(hoje, 10)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = d.VenceEmAPartirDe(hoje, 9)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = d.VenceEmAPartirDe(hoje, -1)
	assert.ErrorIs(t, err, ErrDiasNegativos)
	assert.True(t, shared.IsDomainRule(err))

	vencido, _ := NewDataValidadeEm(hoje.AddDate(0, 0, -1), hoje)
	ok, _ = vencido.VenceEmAPartirDe(hoje, 30)
	assert.False(t, ok, "expired dates are not expiring")
}

func TestNewLocalArmazenamento(t *testing.T) {
	l, err := NewLocalArmazenamento("  Geladeira  ")
	require.NoError(t, err)
	assert.Equal(t, "Geladeira", l.Descricao())
	assert.True(t, l.Equals(Geladeira))

	outro, _ := NewLocalArmazenamento("GELADEIRA")
	assert.True(t, l.Equals(outro), "equality ignores case")
	assert.Equal(t, shared.StructuralHash(l), shared.StructuralHash(outro))
	assert.False(t, l.Equals(GavetaDoQuarto))

	_, err = NewLocalArmazenamento(" ")
	assert.True(t, shared.IsDomainRule(err))

	_, err = NewLocalArmazenamento(string(make([]byte, 101)))
	assert.Error(t, err)
}

func TestParseFormaFarmaceutica(t *testing.T) {
	f, err := ParseFormaFarmaceutica("xarope")
	require.NoError(t, err)
	assert.Equal(t, FormaXarope, f)
	assert.Equal(t, "Xarope", f.String())
	assert.Len(t, FormasFarmaceuticas(), 12)

	_, err = ParseFormaFarmaceutica("pó")
	assert.Error(t, err)
	assert.False(t, FormaFarmaceutica(99).Valida())
}

func TestIDsAreDistinctTypes(t *testing.T) {
	id := NewID(7)
	assert.Equal(t, 7, id.Valor())
	assert.Equal(t, "7", id.String())
	assert.True(t, ID(0).IsZero())
}
