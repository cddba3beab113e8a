package admin

import (
	"net/http"

	"digistore_server/handling"
	"digistore_server/lib"
	"digistore_server/structs"

	"github.com/MonkyMars/gecho"
)

func (ar *AdminRoutesManager) ListDiscounts(w http.ResponseWriter, r *http.Request) {
	discounts, err := ar.discountService.List(r.Context())
	if err != nil {
		handling.HandleError(err, "Failed to fetch discounts", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(discounts), gecho.Send())
}

func (ar *AdminRoutesManager) GetDiscount(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid discount id", ar.logger, w)
		return
	}

	discount, err := ar.discountService.Get(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "Failed to fetch discount", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(discount), gecho.Send())
}

func (ar *AdminRoutesManager) CreateDiscount(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.DiscountRequest](r)
	if err != nil {
		handling.HandleError(err, "Failed to create discount", ar.logger, w)
		return
	}

	discount, err := ar.discountService.Create(r.Context(), body)
	if err != nil {
		handling.HandleError(err, "Failed to create discount", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Discount created"),
		gecho.WithData(discount),
		gecho.Send(),
	)
}

// UpdateDiscount keeps the usage count of the code.
func (ar *AdminRoutesManager) UpdateDiscount(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid discount id", ar.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.DiscountRequest](r)
	if err != nil {
		handling.HandleError(err, "Failed to update discount", ar.logger, w)
		return
	}

	discount, err := ar.discountService.Update(r.Context(), id, body)
	if err != nil {
		handling.HandleError(err, "Failed to update discount", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Discount updated"),
		gecho.WithData(discount),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) DeleteDiscount(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid discount id", ar.logger, w)
		return
	}

	if err := ar.discountService.Delete(r.Context(), id); err != nil {
		handling.HandleError(err, "Failed to delete discount", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("Discount deleted"), gecho.Send())
}
