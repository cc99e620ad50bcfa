package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Tracing opens a server span per request, continuing any trace carried in
// the incoming headers. The span is renamed to the matched chi route once
// routing is done, so /v1/meals/{mealId} groups all meal lookups.
func Tracing(next http.Handler) http.Handler {
	tracer := otel.Tracer("health-assistant/http")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			),
		)
		defer span.End()

		input := map[string]any{"method": r.Method, "path": r.URL.Path}
		if r.URL.RawQuery != "" {
			input["query"] = r.URL.RawQuery
		}
		if id := chimw.GetReqID(r.Context()); id != "" {
			input["request_id"] = id
		}
		setJSON(span, "langfuse.observation.input", input)

		// the wrapper keeps http.Hijacker so websocket upgrades still work
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(ctx))

		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				span.SetName(r.Method + " " + pattern)
				span.SetAttributes(attribute.String("http.route", pattern))
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
		setJSON(span, "langfuse.observation.output", map[string]any{
			"status_code": status,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	})
}

func setJSON(span trace.Span, key string, v any) {
	if b, err := json.Marshal(v); err == nil {
		span.SetAttributes(attribute.String(key, string(b)))
	}
}
