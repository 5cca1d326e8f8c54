package handlers

import (
	"BrainrotDex/internal/config"
	"BrainrotDex/internal/middleware"
	"BrainrotDex/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	catalog *service.Catalog,
	transfer *service.Transfer,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)

	h := NewBrainrotHandler(catalog, transfer, logger, config)

	// Catalog routes
	r.Route("/api/brainrots", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{ref}", h.Get)
		r.Patch("/{ref}", h.Update)
		r.Delete("/{ref}", h.Delete)
	})

	// Favorites routes
	r.Get("/api/favorites", h.Favorites)
	r.Post("/api/favorites/{ref}/toggle", h.ToggleFavorite)
	r.Delete("/api/favorites/{ref}", h.RemoveFavorite)

	// Data management routes
	r.Get("/api/export", h.Export)
	r.Post("/api/import", h.Import)
	r.Post("/api/samples", h.SeedSamples)
	r.Delete("/api/data", h.ClearAll)

	return &Handler{Router: r}
}
