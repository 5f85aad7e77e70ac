package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gitlab.com/deployo/ai-backend/internal/logz"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// AuditLogger writes one line when a request arrives and one when it is answered.
// Bodies are never logged, only their sizes.
func AuditLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		ctx := c.UserContext()
		reqID := c.Get(HeaderRequestID)
		logger := logz.WithTrace(ctx, logz.NewLogger(), reqID)
		span := trace.SpanFromContext(ctx)

		reqBytes := len(c.Body())
		span.AddEvent("http.request", trace.WithAttributes(
			attribute.Int("body.bytes", reqBytes),
		))
		logger.Info("http_request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("req_body_bytes", reqBytes),
		)

		err := c.Next()

		status := c.Response().StatusCode()
		resBytes := len(c.Response().Body())
		durationMs := time.Since(start).Milliseconds()
		span.AddEvent("http.response", trace.WithAttributes(
			attribute.Int("status", status),
			attribute.Int64("duration_ms", durationMs),
			attribute.Int("body.bytes", resBytes),
		))

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Int64("duration_ms", durationMs),
			zap.Int("res_body_bytes", resBytes),
		}
		if status >= fiber.StatusInternalServerError {
			logger.Warn("http_response", fields...)
		} else {
			logger.Info("http_response", fields...)
		}

		return err
	}
}
