package middleware

import (
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Logging пишет строку лога на каждый запрос
func Logging(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			writer := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(writer, r)
			log.Info("request method=%s path=%s status=%d duration_ms=%d request_id=%s",
				r.Method, r.URL.Path, writer.status, time.Since(start).Milliseconds(), RequestIDFromContext(r.Context()))
		})
	}
}
