package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notesapi/pkg/logger"
)

const (
	LogRequestStarted   = "request started"
	LogRequestBody      = "request body"
	LogRequestCompleted = "request completed"
	LogRequestFailed    = "request failed"
)

// NewLoggerMiddleware logs every request. The body is logged at debug level.
func NewLoggerMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		start := time.Now()

		log := logger.Log(requestCtx).With(
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.Path()),
			zap.String("ip", ctx.IP()),
		)

		log.Info(requestCtx, LogRequestStarted)
		if body := ctx.Body(); len(body) > 0 {
			log.Debug(requestCtx, LogRequestBody, zap.ByteString("body", body))
		}

		err := ctx.Next()

		fields := []zap.Field{
			zap.Int("status", ctx.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}

		if err != nil {
			log.Error(requestCtx, LogRequestFailed, append(fields, zap.Error(err))...)
			return err
		}

		log.Info(requestCtx, LogRequestCompleted, fields...)
		return nil
	}
}
