package debug

import (
	"digistore_server/config"
	"digistore_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type DebugRoutesManager struct {
	logger       *gecho.Logger
	cacheService *services.CacheService
}

func NewDebugRoutesManager(logger *gecho.Logger, cacheService *services.CacheService) *DebugRoutesManager {
	return &DebugRoutesManager{
		logger:       logger,
		cacheService: cacheService,
	}
}

func (drm *DebugRoutesManager) RegisterRoutes(r chi.Router) {
	// Debug routes - only in non-production environments
	if !config.IsProduction() {
		r.Route("/debug", func(r chi.Router) {
			r.Post("/cache/clear", drm.ClearCache)
			r.Get("/cache/stats", drm.CacheStats)
			r.Get("/ratelimit/{bucket}", drm.RateLimitStatus)
		})
	}
}
