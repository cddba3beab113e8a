package services

import (
	"digistore_server/database"
	"digistore_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	AuthService        *AuthService
	AdminService       *AdminService
	EmailService       *EmailService
	CacheService       *CacheService
	HealthService      *HealthService
	ProductService     *ProductService
	CategoryService    *CategoryService
	PaymentService     *PaymentService
	DiscountService    *DiscountService
	FlashSaleService   *FlashSaleService
	TestimonialService *TestimonialService
	ArticleService     *ArticleService
	SettingsService    *SettingsService
	OrderService       *OrderService
	UploadService      *UploadService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	cacheService := NewCacheService(logger, cfg)
	authService := NewAuthService(cfg, logger, db, cacheService)
	adminService := NewAdminService(logger, cfg, db, cacheService)
	emailService := NewEmailService(logger, cfg)
	healthService := NewHealthService(logger, db, cacheService)
	productService := NewProductService(logger, db, cacheService)
	categoryService := NewCategoryService(logger, db, cacheService)
	paymentService := NewPaymentService(logger, db, cacheService)
	discountService := NewDiscountService(logger, db)
	settingsService := NewSettingsService(logger, db, cacheService)
	orderService := NewOrderService(logger, cfg, db, discountService, paymentService, settingsService, emailService)

	return &ServiceManager{
		AuthService:        authService,
		AdminService:       adminService,
		EmailService:       emailService,
		CacheService:       cacheService,
		HealthService:      healthService,
		ProductService:     productService,
		CategoryService:    categoryService,
		PaymentService:     paymentService,
		DiscountService:    discountService,
		FlashSaleService:   NewFlashSaleService(logger, db),
		TestimonialService: NewTestimonialService(logger, db),
		ArticleService:     NewArticleService(logger, db),
		SettingsService:    settingsService,
		OrderService:       orderService,
		UploadService:      NewUploadService(logger, cfg),
	}
}
