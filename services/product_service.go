package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"digistore_server/database"
	"digistore_server/lib"
	"digistore_server/structs"
	"digistore_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

type ProductService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewProductService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *ProductService {
	return &ProductService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

func orderVariants(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Order("v.id ASC")
}

func activeVariants(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Where("v.is_active = ?", true)
}

// productQuery selects products with their category and variants.
func productQuery(db bun.IDB, onlyActive bool) *database.QueryBuilder[tables.Product] {
	variants := []func(*bun.SelectQuery) *bun.SelectQuery{orderVariants}
	if onlyActive {
		variants = append(variants, activeVariants)
	}

	q := database.Query[tables.Product](db).
		With("Category").
		With("Variants", variants...)
	if onlyActive {
		q = q.Where("p.is_active", true)
	}
	return q
}

// List returns products matching opts, newest first. Unfiltered storefront
// listings are served from cache.
func (ps *ProductService) List(ctx context.Context, opts *structs.ProductListOptions) ([]tables.Product, error) {
	startTime := time.Now()
	if opts == nil {
		opts = &structs.ProductListOptions{}
	}

	cacheable := opts.OnlyActive && opts.Search == ""
	if cacheable {
		cached, err := GetCatalog[[]tables.Product](ctx, ps.cacheService, "products", opts.CategorySlug)
		if err != nil {
			ps.logger.Warn("Failed to get products from cache", gecho.Field("error", err))
		} else if cached != nil {
			return *cached, nil
		}
	}

	query := productQuery(ps.db, opts.OnlyActive)
	if opts.CategorySlug != "" && opts.CategorySlug != "all" {
		query = query.WhereRaw("p.category_id IN (SELECT id FROM categories WHERE slug = ?)", opts.CategorySlug)
	}
	if opts.Search != "" {
		query = query.WhereLike("p.name", opts.Search)
	}

	products, err := query.OrderBy("p.created_at", database.DESC).OrderBy("p.id", database.DESC).All(ctx)
	if err != nil {
		ps.logger.Error("Failed to fetch products",
			gecho.Field("error", err),
			gecho.Field("duration", time.Since(startTime)),
		)
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	if cacheable {
		if err := SetCatalog(ctx, ps.cacheService, products, "products", opts.CategorySlug); err != nil {
			ps.logger.Warn("Failed to cache products", gecho.Field("error", err))
		}
	}

	ps.logger.Debug("Products fetched",
		gecho.Field("count", len(products)),
		gecho.Field("duration", time.Since(startTime)),
	)
	return products, nil
}

// GetBySlug finds an active product by slug. A numeric value also matches the id.
func (ps *ProductService) GetBySlug(ctx context.Context, slug string) (*tables.Product, error) {
	query := productQuery(ps.db, true)
	if id, err := strconv.ParseInt(slug, 10, 64); err == nil {
		query = query.WhereRaw("(p.slug = ? OR p.id = ?)", slug, id)
	} else {
		query = query.Where("p.slug", slug)
	}

	product, err := query.First(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	if product == nil {
		return nil, &lib.NotFoundError{Resource: "product", Key: slug, Message: "Product not found"}
	}
	return product, nil
}

// Get loads any product by id, active or not.
func (ps *ProductService) Get(ctx context.Context, id int64) (*tables.Product, error) {
	product, err := productQuery(ps.db, false).Where("p.id", id).First(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	if product == nil {
		return nil, lib.NotFound("product", id)
	}
	return product, nil
}

func (ps *ProductService) checkCategory(ctx context.Context, db bun.IDB, id int64) error {
	exists, err := database.Query[tables.Category](db).Where("id", id).Exists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}
	if !exists {
		return lib.NewValidationError(map[string]string{"categoryId": "does not exist"})
	}
	return nil
}

func buildVariants(productID int64, reqs []structs.VariantRequest) []tables.Variant {
	variants := make([]tables.Variant, 0, len(reqs))
	for _, v := range reqs {
		variants = append(variants, tables.Variant{
			ProductID:     productID,
			Name:          v.Name,
			Price:         v.Price,
			OriginalPrice: v.OriginalPrice,
			IsWarranty:    v.IsWarranty,
			IsActive:      boolOr(v.IsActive, true),
		})
	}
	return variants
}

func (ps *ProductService) Create(ctx context.Context, req *structs.ProductRequest) (*tables.Product, error) {
	slug, err := slugOr(req.Slug, req.Name)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &tables.Product{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Image:       req.Image,
		Badge:       req.Badge,
		IsActive:    boolOr(req.IsActive, true),
		CategoryID:  req.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = database.Transaction(ctx, ps.db, func(ctx context.Context, tx bun.Tx) error {
		if err := ps.checkCategory(ctx, tx, req.CategoryID); err != nil {
			return err
		}
		if _, err := database.Create(tx, ctx, product); err != nil {
			return lib.Conflict(lib.MapDBError(err), "Slug produk sudah digunakan")
		}
		variants, err := database.Query[tables.Variant](tx).InsertMany(ctx, buildVariants(product.ID, req.Variants))
		if err != nil {
			return err
		}
		product.Variants = variants
		return nil
	})
	if err != nil {
		return nil, err
	}

	ps.cacheService.InvalidateCatalog(ctx)
	ps.logger.Info("Product created", gecho.Field("id", product.ID), gecho.Field("slug", product.Slug))

	return ps.Get(ctx, product.ID)
}

// Update replaces the product fields and recreates its variants.
func (ps *ProductService) Update(ctx context.Context, id int64, req *structs.ProductRequest) (*tables.Product, error) {
	slug, err := slugOr(req.Slug, req.Name)
	if err != nil {
		return nil, err
	}

	err = database.Transaction(ctx, ps.db, func(ctx context.Context, tx bun.Tx) error {
		product, err := findByID[tables.Product](ctx, tx, "product", id)
		if err != nil {
			return err
		}
		if err := ps.checkCategory(ctx, tx, req.CategoryID); err != nil {
			return err
		}

		product.Name = req.Name
		product.Slug = slug
		product.Description = req.Description
		product.Image = req.Image
		product.Badge = req.Badge
		product.IsActive = boolOr(req.IsActive, product.IsActive)
		product.CategoryID = req.CategoryID
		product.UpdatedAt = time.Now().UTC()

		if _, err := database.Query[tables.Product](tx).Where("id", id).Update(ctx, product); err != nil {
			return lib.Conflict(lib.MapDBError(err), "Slug produk sudah digunakan")
		}

		if _, err := database.Query[tables.Variant](tx).Where("product_id", id).Delete(ctx); err != nil {
			return err
		}
		_, err = database.Query[tables.Variant](tx).InsertMany(ctx, buildVariants(id, req.Variants))
		return err
	})
	if err != nil {
		return nil, err
	}

	ps.cacheService.InvalidateCatalog(ctx)
	return ps.Get(ctx, id)
}

// Delete removes the product together with its variants.
func (ps *ProductService) Delete(ctx context.Context, id int64) error {
	err := database.Transaction(ctx, ps.db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := database.Query[tables.Variant](tx).Where("product_id", id).Delete(ctx); err != nil {
			return err
		}
		return deleteByID[tables.Product](ctx, tx, "product", id)
	})
	if err != nil {
		return err
	}

	ps.cacheService.InvalidateCatalog(ctx)
	ps.logger.Info("Product deleted", gecho.Field("id", id))
	return nil
}
