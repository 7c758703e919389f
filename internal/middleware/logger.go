// Package middleware содержит middleware для chi роутеров приложения.
package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// requestIDHeader совпадает с заголовком, который выставляет клиент
const requestIDHeader = "X-Request-ID"

// RequestLogger создает middleware, которое пишет в лог каждый обработанный запрос
func RequestLogger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Обертка нужна, чтобы узнать статус и размер ответа
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("Request processed",
				zap.String("path", r.URL.Path),
				zap.String("method", r.Method),
				zap.String("request_id", r.Header.Get(requestIDHeader)),
				zap.Duration("latency", time.Since(start)),
				zap.Int("status", ww.Status()),
				zap.Int("size", ww.BytesWritten()),
			)
		})
	}
}
