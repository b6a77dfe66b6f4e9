// Package categoria exposes medication categories over HTTP.
package categoria

import (
	"net/http"
	"strconv"

	"meusmedicamentos/api/ctxutil"
	"meusmedicamentos/api/response"
	catapp "meusmedicamentos/application/categoria"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service *catapp.Service
}

func NewController(service *catapp.Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/categorias")
	{
		group.POST("", c.Criar)
		group.GET("", c.Listar)
		group.PUT("/:id", c.Atualizar)
		group.PATCH("/:id/status", c.AlterarStatus)
		group.DELETE("/:id", c.Remover)
	}
}

func pathID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		response.HandleError(ctx, err, "ID inválido", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (c *Controller) Criar(ctx *gin.Context) {
	var cmd catapp.CriarCategoria
	if err := ctx.ShouldBindJSON(&cmd); err != nil {
		response.HandleError(ctx, err, "Corpo da requisição inválido", http.StatusBadRequest)
		return
	}

	res, err := c.service.Criar(ctxutil.WithRequestID(ctx), cmd)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if !res.Succeeded() {
		response.HandleFailure(ctx, res)
		return
	}
	response.HandleCreated(ctx, res.Value(), "Categoria criada com sucesso")
}

func (c *Controller) Listar(ctx *gin.Context) {
	var q catapp.ListarCategorias
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
	response.HandleSuccess(ctx, res.Value(), "Categorias listadas com sucesso")
}

func (c *Controller) Atualizar(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var cmd catapp.AtualizarCategoria
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
	response.HandleSuccess(ctx, res.Value(), "Categoria atualizada com sucesso")
}

func (c *Controller) AlterarStatus(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var cmd catapp.AlterarStatusCategoria
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

func (c *Controller) Remover(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	res, err := c.service.Remover(ctxutil.WithRequestID(ctx), catapp.RemoverCategoria{ID: id})
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
