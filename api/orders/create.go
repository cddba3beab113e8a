package orders

import (
	"net/http"

	"digistore_server/api/health"
	"digistore_server/handling"
	"digistore_server/lib"
	"digistore_server/structs"

	"github.com/MonkyMars/gecho"
)

// CreateOrder handles POST /orders for a single product checkout.
func (orm *OrderRoutesManager) CreateOrder(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.OrderRequest](r)
	if err != nil {
		handling.HandleError(err, "Failed to create order", orm.logger, w)
		return
	}

	receipt, err := orm.orderService.Create(r.Context(), body)
	if err != nil {
		handling.HandleError(err, "Gagal membuat pesanan", orm.logger, w)
		return
	}

	health.OrdersCreated.WithLabelValues("single").Inc()

	gecho.Success(w,
		gecho.WithMessage("Pesanan berhasil dibuat"),
		gecho.WithData(receipt),
		gecho.Send(),
	)
}

// CreateCartOrder handles POST /orders/cart. All lines share one booking code.
func (orm *OrderRoutesManager) CreateCartOrder(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CartOrderRequest](r)
	if err != nil {
		handling.HandleError(err, "Failed to create order", orm.logger, w)
		return
	}

	receipt, err := orm.orderService.CreateCart(r.Context(), body)
	if err != nil {
		handling.HandleError(err, "Gagal membuat pesanan", orm.logger, w)
		return
	}

	health.OrdersCreated.WithLabelValues("cart").Inc()

	gecho.Success(w,
		gecho.WithMessage("Pesanan berhasil dibuat"),
		gecho.WithData(receipt),
		gecho.Send(),
	)
}
