package admin

import (
	"net/http"

	"digistore_server/handling"
	"digistore_server/lib"
	"digistore_server/structs"
	"digistore_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

// ListOrders handles GET /admin/orders?status=&search=&page=&pageSize=
func (ar *AdminRoutesManager) ListOrders(w http.ResponseWriter, r *http.Request) {
	opts, err := handling.ParseOrderListOptions(r)
	if err != nil {
		handling.HandleError(err, "Invalid query parameters", ar.logger, w)
		return
	}

	result, err := ar.orderService.List(r.Context(), opts)
	if err != nil {
		handling.HandleError(err, "Failed to fetch orders", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"orders":     result.Data,
			"pagination": result.Pagination,
		}),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) GetOrderDetails(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid order id", ar.logger, w)
		return
	}

	order, err := ar.orderService.Get(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "Failed to fetch order", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(order), gecho.Send())
}

// UpdateOrderStatus sets the status of every line sharing the order's code.
func (ar *AdminRoutesManager) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid order id", ar.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.OrderStatusRequest](r)
	if err != nil {
		handling.HandleError(err, "Failed to update order status", ar.logger, w)
		return
	}

	order, err := ar.orderService.UpdateStatus(r.Context(), id, tables.OrderStatus(body.Status))
	if err != nil {
		ar.logger.Error("Failed to update order status",
			gecho.Field("error", err),
			gecho.Field("order_id", id),
			gecho.Field("status", body.Status))
		handling.HandleError(err, "Failed to update order status", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Order status updated"),
		gecho.WithData(order),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid order id", ar.logger, w)
		return
	}

	if err := ar.orderService.Delete(r.Context(), id); err != nil {
		handling.HandleError(err, "Failed to delete order", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("Order deleted"), gecho.Send())
}

func (ar *AdminRoutesManager) GetOrderAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := ar.orderService.Analytics(r.Context())
	if err != nil {
		handling.HandleError(err, "Failed to compute analytics", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(analytics), gecho.Send())
}
