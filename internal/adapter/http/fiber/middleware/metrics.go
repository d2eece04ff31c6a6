package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/seu-repo/jarvis-backend/internal/observability/telemetry"
)

// Metrics records request counts and latency per matched route. Errors are
// rendered here so the recorded status is the one the client sees.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		route := c.Route().Path
		method := c.Method()
		status := strconv.Itoa(c.Response().StatusCode())
		telemetry.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
		telemetry.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

		return nil
	}
}
