package po

import (
	"testing"
	"time"

	"meusmedicamentos/domain/categoria"
	"meusmedicamentos/domain/medicamento"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func novoMedicamento(t *testing.T, codigo string, cat categoria.ID) *medicamento.Medicamento {
	t.Helper()
	m, err := medicamento.NewMedicamento(medicamento.CadastroParams{
		Nome:               "Dipirona",
		PrincipioAtivo:     "Dipirona Sódica",
		Fabricante:         "EMS",
		Dosagem:            "500mg",
		Forma:              medicamento.FormaComprimido,
		DataValidade:       medicamento.Hoje().AddDate(1, 0, 0),
		QuantidadeAtual:    10,
		QuantidadeMinima:   5,
		LocalArmazenamento: "Armário da cozinha",
		CodigoBarras:       codigo,
		CategoriaID:        cat,
	})
	require.NoError(t, err)
	m.AtribuirID(medicamento.NewID(42))
	return m
}

func TestMedicamentoPO_NullableColumns(t *testing.T) {
	semCodigo := FromMedicamentoDomain(novoMedicamento(t, "", 0))
	assert.Nil(t, semCodigo.CodigoBarras)
	assert.Nil(t, semCodigo.CategoriaID)
	assert.Equal(t, "Comprimido", semCodigo.Forma)

	comCodigo := FromMedicamentoDomain(novoMedicamento(t, "7891234567890", categoria.NewID(3)))
	require.NotNil(t, comCodigo.CodigoBarras)
	assert.Equal(t, "7891234567890", *comCodigo.CodigoBarras)
	require.NotNil(t, comCodigo.CategoriaID)
	assert.Equal(t, 3, *comCodigo.CategoriaID)
}

func TestMedicamentoPO_ToDomain(t *testing.T) {
	original := novoMedicamento(t, "7891234567890", categoria.NewID(3))

	rebuilt, err := FromMedicamentoDomain(original).ToDomain()
	require.NoError(t, err)

	assert.Equal(t, original.ID(), rebuilt.ID())
	assert.Equal(t, original.Dosagem().String(), rebuilt.Dosagem().String())
	assert.Equal(t, original.Forma(), rebuilt.Forma())
	assert.Equal(t, original.CategoriaID(), rebuilt.CategoriaID())
	assert.Empty(t, rebuilt.PullEvents())
}

func TestMedicamentoPO_ToDomainRejectsUnknownForma(t *testing.T) {
	p := FromMedicamentoDomain(novoMedicamento(t, "", 0))
	p.Forma = "Pastilha"

	_, err := p.ToDomain()
	assert.Error(t, err)
}

func TestFromDomainEvent(t *testing.T) {
	m := novoMedicamento(t, "", 0)
	events := m.PullEvents()
	require.Len(t, events, 1)

	row, err := FromDomainEvent(events[0])
	require.NoError(t, err)

	assert.Equal(t, events[0].EventID(), row.ID)
	assert.Equal(t, "42", row.AggregateID)
	assert.Equal(t, medicamento.EventMedicamentoCadastrado, row.EventType)
	assert.Equal(t, string(EventStatusPending), row.Status)

	data, err := row.ToEventData()
	require.NoError(t, err)
	assert.Equal(t, "Dipirona", data["nome"])
	assert.EqualValues(t, 42, data["medicamento_id"])
	assert.Equal(t, medicamento.EventMedicamentoCadastrado, data["event_name"])
	_, err = time.Parse(time.RFC3339Nano, data["occurred_on"].(string))
	assert.NoError(t, err)
}
