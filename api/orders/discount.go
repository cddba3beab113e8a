package orders

import (
	"net/http"

	"digistore_server/handling"
	"digistore_server/lib"
	"digistore_server/structs"

	"github.com/MonkyMars/gecho"
)

// ValidateDiscount quotes a discount code without consuming it.
func (orm *OrderRoutesManager) ValidateDiscount(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.ValidateDiscountRequest](r)
	if err != nil {
		handling.HandleError(err, "Failed to validate discount", orm.logger, w)
		return
	}

	quote, err := orm.discountService.Validate(r.Context(), body)
	if err != nil {
		handling.HandleError(err, "Gagal memvalidasi kode diskon", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(quote),
		gecho.Send(),
	)
}
