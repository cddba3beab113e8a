package admin

import (
	"digistore_server/api/middleware"
	"digistore_server/services"
	"digistore_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AdminRoutesManager struct {
	logger             *gecho.Logger
	authService        *services.AuthService
	adminService       *services.AdminService
	productService     *services.ProductService
	categoryService    *services.CategoryService
	paymentService     *services.PaymentService
	discountService    *services.DiscountService
	flashSaleService   *services.FlashSaleService
	testimonialService *services.TestimonialService
	articleService     *services.ArticleService
	orderService       *services.OrderService
	settingsService    *services.SettingsService
	uploadService      *services.UploadService
	mw                 *middleware.Middleware
}

func NewAdminRoutesManager(logger *gecho.Logger, sm *services.ServiceManager, mw *middleware.Middleware) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:             logger,
		authService:        sm.AuthService,
		adminService:       sm.AdminService,
		productService:     sm.ProductService,
		categoryService:    sm.CategoryService,
		paymentService:     sm.PaymentService,
		discountService:    sm.DiscountService,
		flashSaleService:   sm.FlashSaleService,
		testimonialService: sm.TestimonialService,
		articleService:     sm.ArticleService,
		orderService:       sm.OrderService,
		settingsService:    sm.SettingsService,
		uploadService:      sm.UploadService,
		mw:                 mw,
	}
}

func (ar *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", ar.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(ar.mw.AdminAuthMiddleware)

			r.Post("/logout", ar.HandleLogout)
			r.Get("/me", ar.HandleMe)
			r.Put("/credentials", ar.HandleUpdateCredentials)

			r.With(ar.mw.RequirePermission(structs.PermissionProducts)).Route("/products", func(r chi.Router) {
				r.Get("/", ar.ListProducts)
				r.Post("/", ar.CreateProduct)
				r.Get("/{id}", ar.GetProduct)
				r.Put("/{id}", ar.UpdateProduct)
				r.Delete("/{id}", ar.DeleteProduct)
			})

			r.With(ar.mw.RequirePermission(structs.PermissionCategories)).Route("/categories", func(r chi.Router) {
				r.Get("/", ar.ListCategories)
				r.Post("/", ar.CreateCategory)
				r.Get("/{id}", ar.GetCategory)
				r.Put("/{id}", ar.UpdateCategory)
				r.Delete("/{id}", ar.DeleteCategory)
			})

			r.With(ar.mw.RequirePermission(structs.PermissionPayments)).Route("/payment-methods", func(r chi.Router) {
				r.Get("/", ar.ListPaymentMethods)
				r.Post("/", ar.CreatePaymentMethod)
				r.Get("/{id}", ar.GetPaymentMethod)
				r.Put("/{id}", ar.UpdatePaymentMethod)
				r.Delete("/{id}", ar.DeletePaymentMethod)
			})

			r.With(ar.mw.RequirePermission(structs.PermissionDiscounts)).Route("/discounts", func(r chi.Router) {
				r.Get("/", ar.ListDiscounts)
				r.Post("/", ar.CreateDiscount)
				r.Get("/{id}", ar.GetDiscount)
				r.Put("/{id}", ar.UpdateDiscount)
				r.Delete("/{id}", ar.DeleteDiscount)
			})

			r.With(ar.mw.RequirePermission(structs.PermissionFlashSales)).Route("/flash-sales", func(r chi.Router) {
				r.Get("/", ar.ListFlashSales)
				r.Post("/", ar.CreateFlashSale)
				r.Get("/{id}", ar.GetFlashSale)
				r.Put("/{id}", ar.UpdateFlashSale)
				r.Delete("/{id}", ar.DeleteFlashSale)
			})

			r.With(ar.mw.RequirePermission(structs.PermissionTestimonials)).Route("/testimonials", func(r chi.Router) {
				r.Get("/", ar.ListTestimonials)
				r.Get("/{id}", ar.GetTestimonial)
				r.Put("/{id}", ar.UpdateTestimonial)
				r.Delete("/{id}", ar.DeleteTestimonial)
			})

			r.With(ar.mw.RequirePermission(structs.PermissionArticles)).Route("/articles", func(r chi.Router) {
				r.Get("/", ar.ListArticles)
				r.Post("/", ar.CreateArticle)
				r.Get("/{id}", ar.GetArticle)
				r.Put("/{id}", ar.UpdateArticle)
				r.Delete("/{id}", ar.DeleteArticle)
			})

			r.With(ar.mw.RequirePermission(structs.PermissionOrders)).Route("/orders", func(r chi.Router) {
				r.Get("/", ar.ListOrders)
				r.Get("/analytics/summary", ar.GetOrderAnalytics)
				r.Get("/{id}", ar.GetOrderDetails)
				r.Put("/{id}", ar.UpdateOrderStatus)
				r.Put("/{id}/status", ar.UpdateOrderStatus)
				r.Delete("/{id}", ar.DeleteOrder)
			})

			r.With(ar.mw.RequirePermission(structs.PermissionSettings)).Route("/settings", func(r chi.Router) {
				r.Get("/", ar.GetSettings)
				r.Put("/", ar.UpdateSettings)
			})

			r.With(ar.mw.RequirePermission(structs.PermissionProducts, structs.PermissionArticles)).
				Post("/upload", ar.UploadImage)

			r.With(ar.mw.RequirePermission(structs.PermissionAdminUsers)).Route("/admins", func(r chi.Router) {
				r.Get("/", ar.ListAdmins)
				r.Post("/", ar.CreateAdmin)
				r.Get("/{id}", ar.GetAdmin)
				r.Put("/{id}", ar.UpdateAdmin)
				r.Delete("/{id}", ar.DeleteAdmin)
				r.Post("/{id}/restore", ar.RestoreAdmin)
			})
		})
	})
}
