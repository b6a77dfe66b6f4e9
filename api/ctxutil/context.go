// Package ctxutil bridges gin contexts and the context.Context handed to services.
package ctxutil

import (
	"context"

	"meusmedicamentos/api/response"
	"meusmedicamentos/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

// WithRequestID returns the request context carrying the id set by the request id middleware.
func WithRequestID(ctx *gin.Context) context.Context {
	return persistence.ContextWithRequestID(ctx.Request.Context(), response.GetRequestID(ctx))
}

func RequestIDFromContext(ctx context.Context) string {
	return persistence.RequestIDFromContext(ctx)
}
