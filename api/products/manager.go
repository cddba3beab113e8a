package products

import (
	"digistore_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ProductRoutesManager struct {
	logger           *gecho.Logger
	productService   *services.ProductService
	categoryService  *services.CategoryService
	paymentService   *services.PaymentService
	flashSaleService *services.FlashSaleService
}

func NewProductRoutesManager(
	logger *gecho.Logger,
	productService *services.ProductService,
	categoryService *services.CategoryService,
	paymentService *services.PaymentService,
	flashSaleService *services.FlashSaleService,
) *ProductRoutesManager {
	return &ProductRoutesManager{
		logger:           logger,
		productService:   productService,
		categoryService:  categoryService,
		paymentService:   paymentService,
		flashSaleService: flashSaleService,
	}
}

func (prm *ProductRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/products", prm.FetchAllProducts)
	r.Get("/products/{slug}", prm.FetchProductBySlug)
	r.Get("/categories", prm.FetchCategories)
	r.Get("/payment-methods", prm.FetchPaymentMethods)
	r.Get("/flash-sales", prm.FetchFlashSales)
}
