package admin

import (
	"net/http"

	"digistore_server/handling"
	"digistore_server/lib"
	"digistore_server/structs"

	"github.com/MonkyMars/gecho"
)

// ListPaymentMethods includes inactive methods.
func (ar *AdminRoutesManager) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := ar.paymentService.List(r.Context())
	if err != nil {
		handling.HandleError(err, "Failed to fetch payment methods", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(methods), gecho.Send())
}

func (ar *AdminRoutesManager) GetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid payment method id", ar.logger, w)
		return
	}

	method, err := ar.paymentService.Get(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "Failed to fetch payment method", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(method), gecho.Send())
}

func (ar *AdminRoutesManager) CreatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.PaymentMethodRequest](r)
	if err != nil {
		handling.HandleError(err, "Failed to create payment method", ar.logger, w)
		return
	}

	method, err := ar.paymentService.Create(r.Context(), body)
	if err != nil {
		handling.HandleError(err, "Failed to create payment method", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Payment method created"),
		gecho.WithData(method),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) UpdatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid payment method id", ar.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.PaymentMethodRequest](r)
	if err != nil {
		handling.HandleError(err, "Failed to update payment method", ar.logger, w)
		return
	}

	method, err := ar.paymentService.Update(r.Context(), id, body)
	if err != nil {
		handling.HandleError(err, "Failed to update payment method", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Payment method updated"),
		gecho.WithData(method),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) DeletePaymentMethod(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid payment method id", ar.logger, w)
		return
	}

	if err := ar.paymentService.Delete(r.Context(), id); err != nil {
		handling.HandleError(err, "Failed to delete payment method", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("Payment method deleted"), gecho.Send())
}
