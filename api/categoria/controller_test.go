package categoria_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apicat "meusmedicamentos/api/categoria"
	catapp "meusmedicamentos/application/categoria"
	"meusmedicamentos/application/common"
	medapp "meusmedicamentos/application/medicamento"
	"meusmedicamentos/domain/shared"
	"meusmedicamentos/infrastructure/persistence/mocks"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type envelope struct {
	Success bool                `json:"success"`
	Data    jsoniter.RawMessage `json:"data"`
	Error   string              `json:"error"`
}

type fixture struct {
	engine *gin.Engine
	meds   *medapp.Service
}

func newFixture() *fixture {
	gin.SetMode(gin.TestMode)

	medRepo := mocks.NewMedicamentoRepository()
	catRepo := mocks.NewCategoriaRepository(medRepo)
	uows := mocks.NewUnitOfWorkFactory(shared.NewEventBus())

	engine := gin.New()
	apicat.NewController(catapp.NewService(catRepo, medRepo, uows, zap.NewNop())).
		RegisterRoutes(engine.Group("/api/v1"))

	return &fixture{
		engine: engine,
		meds:   medapp.NewService(medRepo, catRepo, uows, zap.NewNop(), medapp.DefaultOptions()),
	}
}

func (f *fixture) do(t *testing.T, method, path string, body any) (int, envelope) {
	t.Helper()
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec.Code, env
}

func TestCriar(t *testing.T) {
	f := newFixture()

	code, env := f.do(t, http.MethodPost, "/api/v1/categorias", map[string]any{"nome": "Vitaminas", "cor": "#00FF00"})
	require.Equal(t, http.StatusCreated, code)
	var dto catapp.CategoriaDTO
	require.NoError(t, json.Unmarshal(env.Data, &dto))
	assert.Equal(t, "Vitaminas", dto.Nome)
	assert.True(t, dto.Ativo)

	code, env = f.do(t, http.MethodPost, "/api/v1/categorias", map[string]any{"nome": "vitaminas"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "NOME_CATEGORIA_DUPLICADO", env.Error)

	code, env = f.do(t, http.MethodPost, "/api/v1/categorias", map[string]any{"nome": ""})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error)
}

func TestListarEAlterarStatus(t *testing.T) {
	f := newFixture()
	f.do(t, http.MethodPost, "/api/v1/categorias", map[string]any{"nome": "Vitaminas"})
	f.do(t, http.MethodPost, "/api/v1/categorias", map[string]any{"nome": "Analgésicos"})

	code, _ := f.do(t, http.MethodPatch, "/api/v1/categorias/1/status", map[string]any{"ativo": false})
	require.Equal(t, http.StatusNoContent, code)

	code, env := f.do(t, http.MethodGet, "/api/v1/categorias?apenas_ativas=true", nil)
	require.Equal(t, http.StatusOK, code)
	var ativas []catapp.CategoriaDTO
	require.NoError(t, json.Unmarshal(env.Data, &ativas))
	require.Len(t, ativas, 1)
	assert.Equal(t, "Analgésicos", ativas[0].Nome)

	code, env = f.do(t, http.MethodGet, "/api/v1/categorias", nil)
	require.Equal(t, http.StatusOK, code)
	var todas []catapp.CategoriaDTO
	require.NoError(t, json.Unmarshal(env.Data, &todas))
	assert.Len(t, todas, 2)
}

func TestAtualizar(t *testing.T) {
	f := newFixture()
	f.do(t, http.MethodPost, "/api/v1/categorias", map[string]any{"nome": "Vitaminas"})

	code, env := f.do(t, http.MethodPut, "/api/v1/categorias/1", map[string]any{"nome": "Suplementos", "descricao": "Vitaminas e minerais"})
	require.Equal(t, http.StatusOK, code)
	var dto catapp.CategoriaDTO
	require.NoError(t, json.Unmarshal(env.Data, &dto))
	assert.Equal(t, "Suplementos", dto.Nome)

	code, env = f.do(t, http.MethodPut, "/api/v1/categorias/42", map[string]any{"nome": "Outra"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "CATEGORIA_NOT_FOUND", env.Error)
}

func TestRemover(t *testing.T) {
	f := newFixture()
	f.do(t, http.MethodPost, "/api/v1/categorias", map[string]any{"nome": "Analgésicos"})
	f.do(t, http.MethodPost, "/api/v1/categorias", map[string]any{"nome": "Vazia"})

	res, err := f.meds.Cadastrar(context.Background(), medapp.CadastrarMedicamento{
		Nome:               "Dipirona",
		PrincipioAtivo:     "Dipirona",
		Dosagem:            "500mg",
		Forma:              "Comprimido",
		Fabricante:         "Medley",
		DataValidade:       common.NewDate(time.Now().AddDate(1, 0, 0)),
		QuantidadeAtual:    10,
		LocalArmazenamento: "Gaveta",
		CategoriaID:        1,
	})
	require.NoError(t, err)
	require.True(t, res.Succeeded(), res.ErrorMessage())

	code, env := f.do(t, http.MethodDelete, "/api/v1/categorias/1", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "CATEGORIA_EM_USO", env.Error)

	code, _ = f.do(t, http.MethodDelete, "/api/v1/categorias/2", nil)
	assert.Equal(t, http.StatusNoContent, code)

	code, _ = f.do(t, http.MethodDelete, "/api/v1/categorias/x", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
