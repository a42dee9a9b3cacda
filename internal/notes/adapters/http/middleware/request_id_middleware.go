// Package middleware contains the fiber middleware of the notes HTTP surface.
package middleware

import (
	"github.com/gofiber/fiber/v3"

	"notesapi/pkg/logger"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = fiber.HeaderXRequestID

// NewRequestIDMiddleware puts the incoming X-Request-ID, or a fresh UUID,
// into the request context and echoes it on the response.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(HeaderRequestID))
		ctx.SetContext(requestCtx)

		if id, ok := logger.GetRequestID(requestCtx); ok {
			ctx.Set(HeaderRequestID, id)
		}

		return ctx.Next()
	}
}
