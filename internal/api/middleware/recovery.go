package middleware

import (
	"net/http"

	"github.com/crisphealth/health-assistant/pkg/envelope"
	"go.uber.org/zap"
)

// Recovery recovers from panics and returns a 500 envelope
func Recovery(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.Error("panic recovered",
						zap.Any("panic", err),
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.Stack("stack"),
					)
					envelope.InternalError().Write(w)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
