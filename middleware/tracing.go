package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// headerCarrier exposes fasthttp request headers to the otel propagator.
type headerCarrier struct{ h *fasthttp.RequestHeader }

func (c headerCarrier) Get(key string) string { return string(c.h.Peek(key)) }
func (c headerCarrier) Set(key, val string)   { c.h.Set(key, val) }
func (c headerCarrier) Keys() []string {
	keys := make([]string, 0)
	c.h.VisitAll(func(k, _ []byte) {
		keys = append(keys, string(k))
	})
	return keys
}

// OTelFiberMiddleware opens a server span per request and stores it in the
// fiber user context so handlers and vendor calls run under it.
func OTelFiberMiddleware(serviceName string) fiber.Handler {
	tr := otel.Tracer(serviceName)

	return func(c *fiber.Ctx) error {
		ctx := otel.GetTextMapPropagator().Extract(c.UserContext(), headerCarrier{h: &c.Context().Request.Header})

		ctx, span := tr.Start(ctx, spanName(c), trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()
		start := time.Now()

		c.SetUserContext(ctx)

		span.SetAttributes(
			attribute.String("http.method", c.Method()),
			attribute.String("http.target", c.OriginalURL()),
			attribute.String("http.scheme", c.Protocol()),
			attribute.String("net.peer.ip", c.IP()),
			attribute.String("user_agent", c.Get(fiber.HeaderUserAgent)),
			attribute.String("request.id", c.Get(HeaderRequestID)),
		)

		err := c.Next()

		status := c.Response().StatusCode()
		span.SetAttributes(
			attribute.String("http.route", c.Route().Path),
			attribute.Int("http.status_code", status),
			attribute.Int64("http.duration_ms", time.Since(start).Milliseconds()),
		)

		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case status >= 500:
			span.SetStatus(codes.Error, "server_error")
		case status >= 400:
			span.SetStatus(codes.Error, "client_error")
		default:
			span.SetStatus(codes.Ok, "")
		}

		return err
	}
}

func spanName(c *fiber.Ctx) string {
	return strings.ToUpper(c.Method()) + " " + c.Path()
}
