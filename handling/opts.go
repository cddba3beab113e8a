package handling

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"digistore_server/lib"
	"digistore_server/structs"
	"digistore_server/structs/tables"

	"github.com/go-chi/chi/v5"
)

// ParseProductListOptions reads the catalog filters from the query string.
func ParseProductListOptions(r *http.Request) *structs.ProductListOptions {
	query := r.URL.Query()

	opts := &structs.ProductListOptions{
		CategorySlug: strings.TrimSpace(query.Get("category")),
		Search:       strings.TrimSpace(query.Get("search")),
	}

	return opts
}

// ParseOrderListOptions parses status, search and pagination parameters.
func ParseOrderListOptions(r *http.Request) (*structs.OrderListOptions, error) {
	query := r.URL.Query()

	opts := &structs.OrderListOptions{
		Search: strings.TrimSpace(query.Get("search")),
	}

	if status := strings.TrimSpace(query.Get("status")); status != "" && status != "all" {
		if !tables.OrderStatus(status).Valid() {
			return nil, lib.NewValidationError(map[string]string{"status": "is invalid"})
		}
		opts.Status = status
	}

	page, pageSize, err := ParsePagination(r)
	if err != nil {
		return nil, err
	}
	opts.Page = page
	opts.PageSize = pageSize

	return opts, nil
}

// ParsePagination reads page and pageSize (or page_size, limit). Zero means "use the default".
func ParsePagination(r *http.Request) (page, pageSize int, err error) {
	query := r.URL.Query()

	if raw := query.Get("page"); raw != "" {
		if page, err = strconv.Atoi(raw); err != nil || page < 1 {
			return 0, 0, lib.NewValidationError(map[string]string{"page": "must be a positive number"})
		}
	}

	for _, key := range []string{"pageSize", "page_size", "limit"} {
		raw := query.Get(key)
		if raw == "" {
			continue
		}
		if pageSize, err = strconv.Atoi(raw); err != nil || pageSize < 1 {
			return 0, 0, lib.NewValidationError(map[string]string{key: "must be a positive number"})
		}
		break
	}

	return page, pageSize, nil
}

// ParseID reads a positive int64 URL parameter.
func ParseID(r *http.Request, param string) (int64, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, lib.NewValidationError(map[string]string{param: fmt.Sprintf("%q is not a valid id", raw)})
	}
	return id, nil
}
