package orders

import (
	"digistore_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type OrderRoutesManager struct {
	logger          *gecho.Logger
	orderService    *services.OrderService
	discountService *services.DiscountService
}

func NewOrderRoutesManager(logger *gecho.Logger, orderService *services.OrderService, discountService *services.DiscountService) *OrderRoutesManager {
	return &OrderRoutesManager{
		logger:          logger,
		orderService:    orderService,
		discountService: discountService,
	}
}

func (orm *OrderRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", orm.CreateOrder)
		r.Post("/cart", orm.CreateCartOrder)
	})
	r.Post("/validate-discount", orm.ValidateDiscount)
}
