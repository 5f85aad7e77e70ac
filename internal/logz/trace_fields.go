package logz

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// WithTrace returns l annotated with the request id and the active span, if any.
func WithTrace(ctx context.Context, l *zap.Logger, requestID string) *zap.Logger {
	if l == nil {
		l = zap.L()
	}
	fields := make([]zap.Field, 0, 3)
	if requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			zap.Stringer("trace_id", sc.TraceID()),
			zap.Stringer("span_id", sc.SpanID()),
		)
	}
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}
