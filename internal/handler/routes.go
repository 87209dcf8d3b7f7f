package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RouterConfig — параметры HTTP-маршрутизатора.
type RouterConfig struct {
	RequestTimeout time.Duration
	AllowedOrigins []string
	// Metrics отдаётся на /metrics, если не nil.
	Metrics http.Handler
	// Observer получает метрики запросов, может быть nil.
	Observer HTTPObserver
}

// NewRouter собирает маршруты и middleware HTTP-сервера.
func NewRouter(h *PhotoHandler, logger *slog.Logger, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(logger, cfg.Observer))
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/healthz", h.Health)
	r.Get("/photos/search", h.SearchPhotos)
	r.Post("/photos/search/async", h.EnqueueSearch)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	})

	return otelhttp.NewHandler(c.Handler(r), "http",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
