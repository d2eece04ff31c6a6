package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// RequestIDLocal is the fiber.Ctx locals key holding the request id.
const RequestIDLocal = "requestid"

// RequestID echoes an incoming X-Request-ID or assigns a fresh UUID.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: RequestIDLocal,
	})
}
