package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notesapi/pkg/logger"
)

const (
	LogServerPanic        = "server panic"
	LogPanicResponseError = "failed to send error response after panic"

	ErrMsgInternal = "internal server error"
)

// NewRecoveryMiddleware turns a panic in a later handler into a 500 response.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		requestCtx := ctx.Context()

		defer func() {
			if r := recover(); r != nil {
				log := logger.Log(requestCtx)
				log.Error(requestCtx, LogServerPanic,
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)

				if sendErr := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": ErrMsgInternal,
				}); sendErr != nil {
					log.Error(requestCtx, LogPanicResponseError, zap.Error(sendErr))
					err = sendErr
				}
			}
		}()

		return ctx.Next()
	}
}
