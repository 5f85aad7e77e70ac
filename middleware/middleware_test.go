package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetHeaderIDGenerates(t *testing.T) {
	var seenReqID, seenTraceID string
	app := fiber.New()
	app.Use(SetHeaderID())
	app.Get("/", func(c *fiber.Ctx) error {
		seenReqID = c.Get(HeaderRequestID)
		seenTraceID = c.Get(HeaderTraceID)
		return c.SendStatus(http.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	assert.NotEmpty(t, seenReqID)
	assert.NotEmpty(t, seenTraceID)
	assert.Equal(t, seenReqID, resp.Header.Get(HeaderRequestID))
}

func TestSetHeaderIDKeepsCallerID(t *testing.T) {
	app := fiber.New()
	app.Use(SetHeaderID())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "abc-123", resp.Header.Get(HeaderRequestID))
}

func TestAuditLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	undo := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(undo)

	app := fiber.New()
	app.Use(SetHeaderID(), AuditLogger())
	app.Get("/boom", func(c *fiber.Ctx) error {
		return c.Status(http.StatusInternalServerError).SendString("nope")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(HeaderRequestID, "req-9")
	_, err := app.Test(req)
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "http_request", entries[0].Message)
	assert.Equal(t, "http_response", entries[1].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)

	fields := entries[1].ContextMap()
	assert.Equal(t, "req-9", fields["request_id"])
	assert.EqualValues(t, http.StatusInternalServerError, fields["status"])
	assert.EqualValues(t, 4, fields["res_body_bytes"])
}

func TestOTelFiberMiddleware(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	var handlerSpan trace.SpanContext
	app := fiber.New()
	app.Use(OTelFiberMiddleware("deployo"))
	app.Post("/generate/", func(c *fiber.Ctx) error {
		handlerSpan = trace.SpanContextFromContext(c.UserContext())
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"detail": "x"})
	})

	_, err := app.Test(httptest.NewRequest(http.MethodPost, "/generate/", nil))
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "POST /generate/", span.Name())
	assert.Equal(t, trace.SpanKindServer, span.SpanKind())
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, span.SpanContext().SpanID(), handlerSpan.SpanID())
	assert.Contains(t, span.Attributes(), attribute.Int("http.status_code", http.StatusInternalServerError))
	assert.Contains(t, span.Attributes(), attribute.String("http.route", "/generate/"))
}
