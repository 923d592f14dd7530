package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"
)

const traceHeader = "X-Trace-ID"

// LoggerMiddleware кладёт в контекст запроса логгер с trace_id и пишет итог запроса.
// В use case уходит логгер без http-полей, они нужны только в итоговой записи.
func LoggerMiddleware(logger port.LoggerPort) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := requestTraceID(r)
			w.Header().Set(traceHeader, traceID)

			reqLogger := logger.WithFields(port.Fields{"trace_id": traceID})
			ctx := contextkeys.ContextWithTraceID(
				contextkeys.ContextWithLogger(r.Context(), reqLogger),
				traceID,
			)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()
			next.ServeHTTP(ww, r.WithContext(ctx))

			logRequest(reqLogger, r, ww, time.Since(started))
		})
	}
}

// requestTraceID берёт trace id шлюза, если он валидный uuid, иначе выдаёт новый.
func requestTraceID(r *http.Request) string {
	if raw := r.Header.Get(traceHeader); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			return id.String()
		}
	}
	return uuid.NewString()
}

func logRequest(logger port.LoggerPort, r *http.Request, ww middleware.WrapResponseWriter, elapsed time.Duration) {
	fields := port.Fields{
		"http_method":   r.Method,
		"http_path":     r.URL.Path,
		"status_code":   ww.Status(),
		"bytes_written": ww.BytesWritten(),
		"duration_ms":   elapsed.Milliseconds(),
	}
	if session := r.Header.Get(sessionHeader); session != "" {
		fields["session_id"] = session
	}

	switch status := ww.Status(); {
	case status >= http.StatusInternalServerError:
		logger.Warn("Request failed", fields)
	case r.URL.Path == "/healthz":
		logger.Debug("Request finished", fields)
	default:
		logger.Info("Request finished", fields)
	}
}
