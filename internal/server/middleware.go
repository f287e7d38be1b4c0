package server

import (
	"fmt"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// corsMiddleware attaches the permissive CORS headers Stremio requires and
// answers preflight requests directly.
func corsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		c.Set(fiber.HeaderAccessControlAllowMethods, "GET, OPTIONS")
		c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type")
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusOK)
		}
		return c.Next()
	}
}

// createLoggingMiddleware logs one line per handled request.
func createLoggingMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		logger.Info("Handled request",
			zap.String("method", c.Method()),
			zap.String("url", c.OriginalURL()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)))
		return err
	}
}

// createMetricsMiddleware counts requests and measures their duration.
func createMetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		counter := fmt.Sprintf(`http_requests_total{path=%q,status="%d"}`, c.Route().Path, status)
		metrics.GetOrCreateCounter(counter).Inc()
		duration := fmt.Sprintf(`http_request_duration_seconds{path=%q}`, c.Route().Path)
		metrics.GetOrCreateSummary(duration).Update(time.Since(start).Seconds())
		return err
	}
}
