package admin

import (
	"net/http"

	"digistore_server/handling"
	"digistore_server/lib"
	"digistore_server/structs"

	"github.com/MonkyMars/gecho"
)

func (ar *AdminRoutesManager) ListFlashSales(w http.ResponseWriter, r *http.Request) {
	sales, err := ar.flashSaleService.List(r.Context())
	if err != nil {
		handling.HandleError(err, "Failed to fetch flash sales", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(sales), gecho.Send())
}

func (ar *AdminRoutesManager) GetFlashSale(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid flash sale id", ar.logger, w)
		return
	}

	sale, err := ar.flashSaleService.Get(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "Failed to fetch flash sale", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(sale), gecho.Send())
}

func (ar *AdminRoutesManager) CreateFlashSale(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.FlashSaleRequest](r)
	if err != nil {
		handling.HandleError(err, "Failed to create flash sale", ar.logger, w)
		return
	}

	sale, err := ar.flashSaleService.Create(r.Context(), body)
	if err != nil {
		handling.HandleError(err, "Failed to create flash sale", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Flash sale created"),
		gecho.WithData(sale),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) UpdateFlashSale(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid flash sale id", ar.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.FlashSaleRequest](r)
	if err != nil {
		handling.HandleError(err, "Failed to update flash sale", ar.logger, w)
		return
	}

	sale, err := ar.flashSaleService.Update(r.Context(), id, body)
	if err != nil {
		handling.HandleError(err, "Failed to update flash sale", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Flash sale updated"),
		gecho.WithData(sale),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) DeleteFlashSale(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid flash sale id", ar.logger, w)
		return
	}

	if err := ar.flashSaleService.Delete(r.Context(), id); err != nil {
		handling.HandleError(err, "Failed to delete flash sale", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("Flash sale deleted"), gecho.Send())
}
