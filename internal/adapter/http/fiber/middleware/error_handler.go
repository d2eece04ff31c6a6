package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/jarvis-backend/internal/service/jarvis"
	"github.com/seu-repo/jarvis-backend/internal/validation"
)

func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Bad Request",
				"message": vErr.Messages(),
				"details": vErr.Fields,
			})
		}

		code := fiber.StatusInternalServerError

		var procErr *jarvis.ProcessingError
		var fErr *fiber.Error
		switch {
		case errors.As(err, &procErr):
			code = fiber.StatusBadRequest
			log.Warn("Question processing failed", zap.Error(err), zap.String("path", c.Path()))
		case errors.As(err, &fErr):
			code = fErr.Code
		}

		if code == fiber.StatusInternalServerError {
			log.Error("Internal Server Error", zap.Error(err), zap.String("path", c.Path()))
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
