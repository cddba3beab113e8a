package api

import (
	"digistore_server/api/admin"
	"digistore_server/api/content"
	"digistore_server/api/debug"
	"digistore_server/api/health"
	"digistore_server/api/middleware"
	"digistore_server/api/orders"
	"digistore_server/api/products"
	"digistore_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	productRoutes *products.ProductRoutesManager
	orderRoutes   *orders.OrderRoutesManager
	contentRoutes *content.ContentRoutesManager
	adminRoutes   *admin.AdminRoutesManager
	healthRoutes  *health.HealthRoutesManager
	debugRoutes   *debug.DebugRoutesManager
}

func NewRouterManager(logger *gecho.Logger, sm *services.ServiceManager, mw *middleware.Middleware) *routerManager {
	return &routerManager{
		productRoutes: products.NewProductRoutesManager(logger, sm.ProductService, sm.CategoryService, sm.PaymentService, sm.FlashSaleService),
		orderRoutes:   orders.NewOrderRoutesManager(logger, sm.OrderService, sm.DiscountService),
		contentRoutes: content.NewContentRoutesManager(logger, sm.TestimonialService, sm.ArticleService, sm.SettingsService),
		adminRoutes:   admin.NewAdminRoutesManager(logger, sm, mw),
		healthRoutes:  health.NewHealthRoutesManager(sm.HealthService),
		debugRoutes:   debug.NewDebugRoutesManager(logger, sm.CacheService),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.healthRoutes.RegisterRoutes(r)
	rm.debugRoutes.RegisterRoutes(r)

	r.Route("/api", func(r chi.Router) {
		rm.productRoutes.RegisterRoutes(r)
		rm.orderRoutes.RegisterRoutes(r)
		rm.contentRoutes.RegisterRoutes(r)
		rm.adminRoutes.RegisterRoutes(r)
	})
}
