package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// HTTPObserver получает метрики каждого обслуженного запроса.
type HTTPObserver interface {
	ObserveHTTP(method, route string, code int, duration time.Duration)
}

// RequestLogger — middleware для логирования HTTP-запросов и сбора метрик.
// observer может быть nil.
func RequestLogger(logger *slog.Logger, observer HTTPObserver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetricsFn(w, func(ww http.ResponseWriter) {
				next.ServeHTTP(ww, r)
			})

			route := routePattern(r)
			if observer != nil {
				observer.ObserveHTTP(r.Method, route, m.Code, m.Duration)
			}

			attrs := []any{
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"route", route,
				"path", r.URL.Path,
				"status", m.Code,
				"bytes", m.Written,
				"duration_ms", m.Duration.Milliseconds(),
			}
			if m.Code >= http.StatusInternalServerError {
				logger.Error("http request", attrs...)
				return
			}
			logger.Info("http request", attrs...)
		})
	}
}

// routePattern возвращает шаблон маршрута chi, чтобы не плодить метки метрик по сырым путям.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
