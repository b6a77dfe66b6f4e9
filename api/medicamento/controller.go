// Package medicamento exposes the medication inventory over HTTP.
package medicamento

import (
	"net/http"
	"strconv"

	"meusmedicamentos/api/ctxutil"
	"meusmedicamentos/api/response"
	medapp "meusmedicamentos/application/medicamento"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service *medapp.Service
}

func NewController(service *medapp.Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/medicamentos")
	{
		group.POST("", c.Cadastrar)
		group.GET("", c.Listar)
		group.GET("/:id", c.Obter)
		group.PUT("/:id", c.Atualizar)
		group.POST("/:id/estoque", c.MovimentarEstoque)
		group.PATCH("/:id/local", c.MudarLocal)
		group.PATCH("/:id/status", c.AlterarStatus)
	}

	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("", c.Dashboard)
		dashboard.GET("/sugestoes-compra", c.SugestoesCompra)
	}
}

// pathID answers 400 itself when the id is not a number.
func pathID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		response.HandleError(ctx, err, "ID inválido", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (c *Controller) Cadastrar(ctx *gin.Context) {
	var cmd medapp.CadastrarMedicamento
	if err := ctx.ShouldBindJSON(&cmd); err != nil {
		response.HandleError(ctx, err, "Corpo da requisição inválido", http.StatusBadRequest)
		return
	}

	res, err := c.service.Cadastrar(ctxutil.WithRequestID(ctx), cmd)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if !res.Succeeded() {
		response.HandleFailure(ctx, res)
		return
	}
	response.HandleCreated(ctx, res.Value(), "Medicamento cadastrado com sucesso")
}

func (c *Controller) Listar(ctx *gin.Context) {
	var q medapp.ListarMedicamentos
	if err := ctx.ShouldBindQuery(&q); err != nil {
		response.HandleError(ctx, err, "Parâmetros de consulta inválidos", http.StatusBadRequest)
		return
	}

	res, err := c.service.Listar(ctxutil.WithRequestID(ctx), q)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if !res.Succeeded() {
		response.HandleFailure(ctx, res)
		return
	}

	page := res.Value()
	response.HandlePaginated(ctx, page.Items, response.Pagination{
		Page:       page.Pagina,
		PageSize:   page.ItensPorPagina,
		TotalItems: page.TotalItens,
		TotalPages: page.TotalPaginas,
		HasNext:    page.TemProximaPagina,
		HasPrev:    page.TemPaginaAnterior,
	}, "Medicamentos listados com sucesso")
}

func (c *Controller) Obter(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	res, err := c.service.Obter(ctxutil.WithRequestID(ctx), medapp.ObterMedicamento{ID: id})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if !res.Succeeded() {
		response.HandleFailure(ctx, res)
		return
	}
	response.HandleSuccess(ctx, res.Value(), "Medicamento encontrado")
}

func (c *Controller) Atualizar(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var cmd medapp.AtualizarMedicamento
	if err := ctx.ShouldBindJSON(&cmd); err != nil {
		response.HandleError(ctx, err, "Corpo da requisição inválido", http.StatusBadRequest)
		return
	}
	cmd.ID = id

	res, err := c.service.Atualizar(ctxutil.WithRequestID(ctx), cmd)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if !res.Succeeded() {
		response.HandleFailure(ctx, res)
		return
	}
	response.HandleSuccess(ctx, res.Value(), "Medicamento atualizado com sucesso")
}

func (c *Controller) MovimentarEstoque(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var cmd medapp.MovimentarEstoque
	if err := ctx.ShouldBindJSON(&cmd); err != nil {
		response.HandleError(ctx, err, "Corpo da requisição inválido", http.StatusBadRequest)
		return
	}
	cmd.ID = id

	res, err := c.service.MovimentarEstoque(ctxutil.WithRequestID(ctx), cmd)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if !res.Succeeded() {
		response.HandleFailure(ctx, res)
		return
	}
	response.HandleSuccess(ctx, res.Value(), "Estoque atualizado com sucesso")
}

func (c *Controller) MudarLocal(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var cmd medapp.MudarLocal
	if err := ctx.ShouldBindJSON(&cmd); err != nil {
		response.HandleError(ctx, err, "Corpo da requisição inválido", http.StatusBadRequest)
		return
	}
	cmd.ID = id

	res, err := c.service.MudarLocal(ctxutil.WithRequestID(ctx), cmd)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if !res.Succeeded() {
		response.HandleFailure(ctx, res)
		return
	}
	response.HandleSuccess(ctx, res.Value(), "Local de armazenamento alterado com sucesso")
}

func (c *Controller) AlterarStatus(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var cmd medapp.AlterarStatus
	if err := ctx.ShouldBindJSON(&cmd); err != nil {
		response.HandleError(ctx, err, "Corpo da requisição inválido", http.StatusBadRequest)
		return
	}
	cmd.ID = id

	res, err := c.service.AlterarStatus(ctxutil.WithRequestID(ctx), cmd)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if !res.Succeeded() {
		response.HandleFailure(ctx, res)
		return
	}
	response.HandleNoContent(ctx)
}

func (c *Controller) Dashboard(ctx *gin.Context) {
	res, err := c.service.Dashboard(ctxutil.WithRequestID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if !res.Succeeded() {
		response.HandleFailure(ctx, res)
		return
	}
	response.HandleSuccess(ctx, res.Value(), "Dashboard gerado com sucesso")
}

func (c *Controller) SugestoesCompra(ctx *gin.Context) {
	res, err := c.service.SugestoesCompra(ctxutil.WithRequestID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if !res.Succeeded() {
		response.HandleFailure(ctx, res)
		return
	}
	response.HandleSuccess(ctx, res.Value(), "Sugestões de compra geradas com sucesso")
}
