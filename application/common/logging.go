package common

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LoggingBehaviour records start, duration and outcome. The response and error pass through unchanged.
func LoggingBehaviour[Req Request, Res Outcome[Res]](logger *zap.Logger) Behaviour[Req, Res] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, req Req, next Next[Res]) (Res, error) {
		name := req.RequestName()
		logger.Info("Iniciando request "+name, zap.String("request", name))
		start := time.Now()

		res, err := next(ctx)
		elapsed := time.Since(start)
		if err != nil {
			logger.Error("Erro no request "+name,
				zap.String("request", name),
				zap.Int64("elapsed_ms", elapsed.Milliseconds()),
				zap.Error(err),
			)
			return res, err
		}

		logger.Info("Request "+name+" concluído",
			zap.String("request", name),
			zap.Int64("elapsed_ms", elapsed.Milliseconds()),
			zap.Bool("succeeded", res.Succeeded()),
		)
		return res, nil
	}
}
