package admin

import (
	"net/http"

	"digistore_server/handling"
	"digistore_server/lib"
	"digistore_server/structs"

	"github.com/MonkyMars/gecho"
)

func (ar *AdminRoutesManager) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := ar.categoryService.List(r.Context())
	if err != nil {
		handling.HandleError(err, "Failed to fetch categories", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(categories), gecho.Send())
}

func (ar *AdminRoutesManager) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid category id", ar.logger, w)
		return
	}

	category, err := ar.categoryService.Get(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "Failed to fetch category", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(category), gecho.Send())
}

func (ar *AdminRoutesManager) CreateCategory(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CategoryRequest](r)
	if err != nil {
		handling.HandleError(err, "Failed to create category", ar.logger, w)
		return
	}

	category, err := ar.categoryService.Create(r.Context(), body)
	if err != nil {
		handling.HandleError(err, "Failed to create category", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Category created"),
		gecho.WithData(category),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid category id", ar.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CategoryRequest](r)
	if err != nil {
		handling.HandleError(err, "Failed to update category", ar.logger, w)
		return
	}

	category, err := ar.categoryService.Update(r.Context(), id, body)
	if err != nil {
		handling.HandleError(err, "Failed to update category", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Category updated"),
		gecho.WithData(category),
		gecho.Send(),
	)
}

// DeleteCategory refuses while products still reference the category.
func (ar *AdminRoutesManager) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid category id", ar.logger, w)
		return
	}

	if err := ar.categoryService.Delete(r.Context(), id); err != nil {
		handling.HandleError(err, "Failed to delete category", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("Category deleted"), gecho.Send())
}
