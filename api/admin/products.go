package admin

import (
	"net/http"

	"digistore_server/handling"
	"digistore_server/lib"
	"digistore_server/structs"

	"github.com/MonkyMars/gecho"
)

// ListProducts lists every product, inactive ones included.
func (ar *AdminRoutesManager) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := ar.productService.List(r.Context(), handling.ParseProductListOptions(r))
	if err != nil {
		handling.HandleError(err, "Failed to fetch products", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(products), gecho.Send())
}

func (ar *AdminRoutesManager) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid product id", ar.logger, w)
		return
	}

	product, err := ar.productService.Get(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "Failed to fetch product", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(product), gecho.Send())
}

func (ar *AdminRoutesManager) CreateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.ProductRequest](r)
	if err != nil {
		handling.HandleError(err, "Failed to create product", ar.logger, w)
		return
	}

	product, err := ar.productService.Create(r.Context(), body)
	if err != nil {
		handling.HandleError(err, "Failed to create product", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product created"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

// UpdateProduct replaces the product fields and its variants.
func (ar *AdminRoutesManager) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid product id", ar.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ProductRequest](r)
	if err != nil {
		handling.HandleError(err, "Failed to update product", ar.logger, w)
		return
	}

	product, err := ar.productService.Update(r.Context(), id, body)
	if err != nil {
		handling.HandleError(err, "Failed to update product", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product updated"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid product id", ar.logger, w)
		return
	}

	if err := ar.productService.Delete(r.Context(), id); err != nil {
		handling.HandleError(err, "Failed to delete product", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("Product deleted"), gecho.Send())
}
