package content

import (
	"digistore_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// ContentRoutesManager serves the public testimonials, articles and store settings.
type ContentRoutesManager struct {
	logger             *gecho.Logger
	testimonialService *services.TestimonialService
	articleService     *services.ArticleService
	settingsService    *services.SettingsService
}

func NewContentRoutesManager(
	logger *gecho.Logger,
	testimonialService *services.TestimonialService,
	articleService *services.ArticleService,
	settingsService *services.SettingsService,
) *ContentRoutesManager {
	return &ContentRoutesManager{
		logger:             logger,
		testimonialService: testimonialService,
		articleService:     articleService,
		settingsService:    settingsService,
	}
}

func (crm *ContentRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/testimonials", crm.FetchTestimonials)
	r.Post("/testimonials", crm.SubmitTestimonial)
	r.Get("/articles", crm.FetchArticles)
	r.Get("/articles/{slug}", crm.FetchArticle)
	r.Get("/settings", crm.FetchSettings)
}
