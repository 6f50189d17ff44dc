package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/picklewheel/picklewheel/internal/api/handlers"
	"github.com/picklewheel/picklewheel/internal/api/middleware"
	"github.com/picklewheel/picklewheel/internal/cache"
	"github.com/picklewheel/picklewheel/internal/config"
	"github.com/picklewheel/picklewheel/internal/service"
)

func NewRouter(services *service.Services, counters *cache.Counters, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	wheelHandler := handlers.NewWheelHandler(services.Wheel)
	adminHandler := handlers.NewAdminHandler(services.Metrics)

	// API routes: frontend secret gate first, then identity resolution
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.FrontendSecret(cfg.FrontendSecret, counters))
		r.Use(middleware.Auth(services.Auth))

		r.Route("/wheels", func(r chi.Router) {
			r.Get("/", wheelHandler.List)
			r.Post("/", wheelHandler.Create)
			r.Get("/{id}", wheelHandler.Get)
			r.Put("/{id}", wheelHandler.Update)
			r.Delete("/{id}", wheelHandler.Delete)
			r.Post("/{id}/spin", wheelHandler.Spin)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/metrics", adminHandler.Metrics)
		})
	})

	return r
}
