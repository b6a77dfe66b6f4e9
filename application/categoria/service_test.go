package categoria_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	appcat "meusmedicamentos/application/categoria"
	"meusmedicamentos/domain/categoria"
	"meusmedicamentos/domain/medicamento"
	"meusmedicamentos/domain/shared"
	"meusmedicamentos/infrastructure/persistence/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fixture struct {
	meds *mocks.MedicamentoRepository
	cats *mocks.CategoriaRepository
	svc  *appcat.Service
}

func newFixture(t *testing.T) *fixture {
	meds := mocks.NewMedicamentoRepository()
	cats := mocks.NewCategoriaRepository(meds)
	uows := mocks.NewUnitOfWorkFactory(nil)
	return &fixture{meds: meds, cats: cats, svc: appcat.NewService(cats, meds, uows, zaptest.NewLogger(t))}
}

func (f *fixture) criar(t *testing.T, nome string) appcat.CategoriaDTO {
	t.Helper()
	res, err := f.svc.Criar(context.Background(), appcat.CriarCategoria{Nome: nome, Cor: "#00AA00"})
	require.NoError(t, err)
	require.True(t, res.Succeeded(), res.ErrorMessage())
	return res.Value()
}

func (f *fixture) vincularMedicamento(t *testing.T, categoriaID int) {
	t.Helper()
	m, err := medicamento.NewMedicamento(medicamento.CadastroParams{
		Nome:               "Vitamina C",
		PrincipioAtivo:     "Ácido ascórbico",
		Dosagem:            "1g",
		Forma:              medicamento.FormaComprimido,
		Fabricante:         "Lab",
		DataValidade:       time.Now().AddDate(1, 0, 0),
		QuantidadeAtual:    10,
		QuantidadeMinima:   2,
		LocalArmazenamento: "Cozinha",
		CategoriaID:        categoria.NewID(categoriaID),
	})
	require.NoError(t, err)
	f.meds.Seed(m)
}

func TestCriar(t *testing.T) {
	f := newFixture(t)

	dto := f.criar(t, " Vitaminas ")
	assert.Equal(t, 1, dto.ID)
	assert.Equal(t, "Vitaminas", dto.Nome)
	assert.True(t, dto.Ativo)

	_, err := f.svc.Criar(context.Background(), appcat.CriarCategoria{Nome: "vitaminas"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, categoria.ErrNomeDuplicado))
	assert.True(t, errors.Is(err, shared.ErrConflict))
}

func TestCriarValidation(t *testing.T) {
	tests := []struct {
		name    string
		cmd     appcat.CriarCategoria
		wantMsg []string
		wantErr error
	}{
		{
			name:    "missing name",
			cmd:     appcat.CriarCategoria{Nome: " "},
			wantMsg: []string{"Nome da categoria é obrigatório"},
		},
		{
			name:    "name too long",
			cmd:     appcat.CriarCategoria{Nome: strings.Repeat("a", 51)},
			wantMsg: []string{"Nome da categoria deve ter no máximo 50 caracteres"},
		},
		{
			name:    "invalid color is a domain rule",
			cmd:     appcat.CriarCategoria{Nome: "Vitaminas", Cor: "verde"},
			wantErr: shared.ErrDomainRule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			res, err := f.svc.Criar(context.Background(), tt.cmd)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMsg, res.Errors())
		})
	}
}

func TestAtualizar(t *testing.T) {
	f := newFixture(t)
	vitaminas := f.criar(t, "Vitaminas")
	f.criar(t, "Analgésicos")

	res, err := f.svc.Atualizar(context.Background(), appcat.AtualizarCategoria{ID: vitaminas.ID, Nome: "Vitaminas", Descricao: "Suplementos"})
	require.NoError(t, err)
	assert.Equal(t, "Suplementos", res.Value().Descricao)
	assert.NotNil(t, res.Value().AtualizadoEm)

	_, err = f.svc.Atualizar(context.Background(), appcat.AtualizarCategoria{ID: vitaminas.ID, Nome: "Analgésicos"})
	assert.True(t, errors.Is(err, categoria.ErrNomeDuplicado))

	_, err = f.svc.Atualizar(context.Background(), appcat.AtualizarCategoria{ID: 99, Nome: "X"})
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestRemover(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	emUso := f.criar(t, "Vitaminas")
	livre := f.criar(t, "Antialérgicos")
	f.vincularMedicamento(t, emUso.ID)

	_, err := f.svc.Remover(ctx, appcat.RemoverCategoria{ID: emUso.ID})
	require.Error(t, err)
	assert.True(t, errors.Is(err, categoria.ErrCategoriaEmUso))
	assert.True(t, errors.Is(err, shared.ErrConflict))

	res, err := f.svc.Remover(ctx, appcat.RemoverCategoria{ID: livre.ID})
	require.NoError(t, err)
	assert.True(t, res.Succeeded())

	existe, err := f.cats.Existe(ctx, categoria.NewID(livre.ID))
	require.NoError(t, err)
	assert.False(t, existe)
}

func TestListar(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	vitaminas := f.criar(t, "Vitaminas")
	analgesicos := f.criar(t, "Analgésicos")
	f.vincularMedicamento(t, vitaminas.ID)
	f.vincularMedicamento(t, vitaminas.ID)

	res, err := f.svc.AlterarStatus(ctx, appcat.AlterarStatusCategoria{ID: analgesicos.ID, Ativo: false})
	require.NoError(t, err)
	require.True(t, res.Succeeded())

	todas, err := f.svc.Listar(ctx, appcat.ListarCategorias{})
	require.NoError(t, err)
	assert.Len(t, todas.Value(), 2)

	ativas, err := f.svc.Listar(ctx, appcat.ListarCategorias{ApenasAtivas: true})
	require.NoError(t, err)
	require.Len(t, ativas.Value(), 1)
	assert.Equal(t, "Vitaminas", ativas.Value()[0].Nome)
	assert.Equal(t, 2, ativas.Value()[0].TotalMedicamentos)
}
