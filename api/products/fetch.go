package products

import (
	"net/http"
	"strings"

	"digistore_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// FetchAllProducts handles GET /products?category=&search=
func (prm *ProductRoutesManager) FetchAllProducts(w http.ResponseWriter, r *http.Request) {
	opts := handling.ParseProductListOptions(r)
	opts.OnlyActive = true

	products, err := prm.productService.List(r.Context(), opts)
	if err != nil {
		handling.HandleError(err, "Failed to fetch products", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(products),
		gecho.Send(),
	)
}

// FetchProductBySlug handles GET /products/{slug}. A numeric value also matches the id.
func (prm *ProductRoutesManager) FetchProductBySlug(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	if slug == "" {
		gecho.BadRequest(w, gecho.WithMessage("Product slug is required"), gecho.Send())
		return
	}

	product, err := prm.productService.GetBySlug(r.Context(), slug)
	if err != nil {
		handling.HandleError(err, "Failed to fetch product", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(product),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) FetchCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := prm.categoryService.List(r.Context())
	if err != nil {
		handling.HandleError(err, "Failed to fetch categories", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(categories),
		gecho.Send(),
	)
}

// FetchPaymentMethods lists the active payment methods only.
func (prm *ProductRoutesManager) FetchPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := prm.paymentService.ListActive(r.Context())
	if err != nil {
		handling.HandleError(err, "Failed to fetch payment methods", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(methods),
		gecho.Send(),
	)
}

// FetchFlashSales lists sales that are active and running right now, with prices.
func (prm *ProductRoutesManager) FetchFlashSales(w http.ResponseWriter, r *http.Request) {
	sales, err := prm.flashSaleService.ListRunning(r.Context())
	if err != nil {
		handling.HandleError(err, "Failed to fetch flash sales", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(sales),
		gecho.Send(),
	)
}
