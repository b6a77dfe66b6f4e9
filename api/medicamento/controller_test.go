package medicamento_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apimed "meusmedicamentos/api/medicamento"
	"meusmedicamentos/api/middleware"
	appmed "meusmedicamentos/application/medicamento"
	"meusmedicamentos/domain/categoria"
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
	Success    bool                `json:"success"`
	Data       jsoniter.RawMessage `json:"data"`
	Error      string              `json:"error"`
	Code       int                 `json:"code"`
	Details    []string            `json:"details"`
	RequestID  string              `json:"request_id"`
	Pagination struct {
		TotalItems int  `json:"total_items"`
		TotalPages int  `json:"total_pages"`
		HasNext    bool `json:"has_next"`
	} `json:"pagination"`
}

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	meds := mocks.NewMedicamentoRepository()
	cats := mocks.NewCategoriaRepository(meds)
	c, err := categoria.New("Analgésicos", "", "#FF0000")
	require.NoError(t, err)
	cats.Seed(c)

	svc := appmed.NewService(meds, cats, mocks.NewUnitOfWorkFactory(shared.NewEventBus()), zap.NewNop(), appmed.DefaultOptions())

	engine := gin.New()
	engine.Use(middleware.RequestIDMiddleware())
	apimed.NewController(svc).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func do(t *testing.T, engine *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func novo(nome string, quantidade int) map[string]any {
	return map[string]any{
		"nome":                nome,
		"principio_ativo":     "Paracetamol",
		"dosagem":             "500mg",
		"forma":               "Comprimido",
		"fabricante":          "EMS",
		"data_validade":       time.Now().AddDate(1, 0, 0).Format(time.DateOnly),
		"quantidade_atual":    quantidade,
		"local_armazenamento": "Gaveta do Quarto",
		"categoria_id":        1,
	}
}

func TestCadastrar(t *testing.T) {
	engine := newEngine(t)

	rec, env := do(t, engine, http.MethodPost, "/api/v1/medicamentos", novo("Paracetamol", 10))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)
	var dto appmed.MedicamentoDTO
	require.NoError(t, json.Unmarshal(env.Data, &dto))
	assert.Equal(t, 1, dto.ID)
	assert.Equal(t, "Analgésicos", dto.CategoriaNome)
}

func TestCadastrar_Rejections(t *testing.T) {
	engine := newEngine(t)

	t.Run("malformed body", func(t *testing.T) {
		rec, env := do(t, engine, http.MethodPost, "/api/v1/medicamentos", "{")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "BAD_REQUEST", env.Error)
	})

	t.Run("validation failures listed as details", func(t *testing.T) {
		body := novo("", 10)
		body["dosagem"] = ""
		rec, env := do(t, engine, http.MethodPost, "/api/v1/medicamentos", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", env.Error)
		assert.GreaterOrEqual(t, len(env.Details), 2)
	})
}

func TestObter(t *testing.T) {
	engine := newEngine(t)
	do(t, engine, http.MethodPost, "/api/v1/medicamentos", novo("Paracetamol", 10))

	rec, _ := do(t, engine, http.MethodGet, "/api/v1/medicamentos/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := do(t, engine, http.MethodGet, "/api/v1/medicamentos/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "MEDICAMENTO_NOT_FOUND", env.Error)

	rec, _ = do(t, engine, http.MethodGet, "/api/v1/medicamentos/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListar_Paginates(t *testing.T) {
	engine := newEngine(t)
	for _, nome := range []string{"Aspirina", "Buscopan", "Cataflam"} {
		rec, _ := do(t, engine, http.MethodPost, "/api/v1/medicamentos", novo(nome, 10))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, env := do(t, engine, http.MethodGet, "/api/v1/medicamentos?pagina=1&itens_por_pagina=2", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var items []appmed.MedicamentoDTO
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 2)
	assert.Equal(t, 3, env.Pagination.TotalItems)
	assert.Equal(t, 2, env.Pagination.TotalPages)
	assert.True(t, env.Pagination.HasNext)
}

func TestMovimentarEstoque(t *testing.T) {
	engine := newEngine(t)
	do(t, engine, http.MethodPost, "/api/v1/medicamentos", novo("Paracetamol", 3))

	rec, env := do(t, engine, http.MethodPost, "/api/v1/medicamentos/1/estoque", map[string]any{"quantidade": -2})
	require.Equal(t, http.StatusOK, rec.Code)
	var dto appmed.MedicamentoDTO
	require.NoError(t, json.Unmarshal(env.Data, &dto))
	assert.Equal(t, 1, dto.QuantidadeAtual)

	rec, env = do(t, engine, http.MethodPost, "/api/v1/medicamentos/1/estoque", map[string]any{"quantidade": -5})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "ESTOQUE_INSUFICIENTE", env.Error)

	rec, env = do(t, engine, http.MethodPost, "/api/v1/medicamentos/1/estoque", map[string]any{"quantidade": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error)
}

func TestMudarLocalEAlterarStatus(t *testing.T) {
	engine := newEngine(t)
	do(t, engine, http.MethodPost, "/api/v1/medicamentos", novo("Paracetamol", 3))

	rec, env := do(t, engine, http.MethodPatch, "/api/v1/medicamentos/1/local", map[string]any{"local": "Armário da Cozinha"})
	require.Equal(t, http.StatusOK, rec.Code)
	var dto appmed.MedicamentoDTO
	require.NoError(t, json.Unmarshal(env.Data, &dto))
	assert.Equal(t, "Armário da Cozinha", dto.LocalArmazenamento)

	rec, _ = do(t, engine, http.MethodPatch, "/api/v1/medicamentos/1/status", map[string]any{"ativo": false})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = do(t, engine, http.MethodGet, "/api/v1/medicamentos", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, env.Pagination.TotalItems)
}

func TestDashboard(t *testing.T) {
	engine := newEngine(t)
	do(t, engine, http.MethodPost, "/api/v1/medicamentos", novo("Paracetamol", 1))

	rec, _ := do(t, engine, http.MethodGet, "/api/v1/dashboard", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := do(t, engine, http.MethodGet, "/api/v1/dashboard/sugestoes-compra", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sugestoes []appmed.SugestaoCompraDTO
	require.NoError(t, json.Unmarshal(env.Data, &sugestoes))
	assert.Len(t, sugestoes, 1)
}
