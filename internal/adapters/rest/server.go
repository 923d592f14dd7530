package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	core_port "listing-service/internal/core/port"
)

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// Handlers - все обработчики, которые монтирует роутер.
type Handlers struct {
	Listings     *ListingsHandler
	Favorites    *FavoritesHandler
	Translations *TranslationsHandler
}

// Server - наш REST API сервер.
type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// NewRouter собирает chi-роутер. Вынесен отдельно, чтобы тесты ходили в него через httptest.
func NewRouter(cfg ServerConfig, handlers Handlers, baseLogger core_port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", traceHeader, "X-User-ID", sessionHeader},
		ExposedHeaders:   []string{traceHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/listings", handlers.Listings.ListPublic)
		r.Get("/listings/session", handlers.Listings.Snapshot)
		r.Get("/admin/listings", handlers.Listings.ListAdmin)
		r.Get("/sort-options", SortOptions)

		r.Route("/favorites", func(r chi.Router) {
			r.Use(OwnerMiddleware)

			r.Get("/", handlers.Favorites.GetFavoritesIds)
			r.Post("/", handlers.Favorites.AddToFavorites)
			r.Get("/{propertyID}", handlers.Favorites.IsFavorite)
			r.Delete("/{propertyID}", handlers.Favorites.RemoveFromFavorites)
		})

		r.Post("/content/translations", handlers.Translations.RequestTranslation)
	})

	return r
}

func NewServer(cfg ServerConfig, handlers Handlers, baseLogger core_port.LoggerPort) *Server {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(cfg, handlers, baseLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     baseLogger,
	}
}

// Start запускает HTTP-сервер и блокируется до его остановки.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
