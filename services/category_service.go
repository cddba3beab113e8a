package services

import (
	"context"
	"fmt"
	"time"

	"digistore_server/database"
	"digistore_server/lib"
	"digistore_server/structs"
	"digistore_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

const CodeCategoryInUse = "CATEGORY_IN_USE"

type CategoryService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewCategoryService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *CategoryService {
	return &CategoryService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

func (cs *CategoryService) List(ctx context.Context) ([]tables.Category, error) {
	if cached, err := GetCatalog[[]tables.Category](ctx, cs.cacheService, "categories"); err != nil {
		cs.logger.Warn("Failed to get categories from cache", gecho.Field("error", err))
	} else if cached != nil {
		return *cached, nil
	}

	categories, err := database.Query[tables.Category](cs.db).OrderBy("name", database.ASC).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	if err := SetCatalog(ctx, cs.cacheService, categories, "categories"); err != nil {
		cs.logger.Warn("Failed to cache categories", gecho.Field("error", err))
	}
	return categories, nil
}

func (cs *CategoryService) Get(ctx context.Context, id int64) (*tables.Category, error) {
	return findByID[tables.Category](ctx, cs.db, "category", id)
}

func (cs *CategoryService) Create(ctx context.Context, req *structs.CategoryRequest) (*tables.Category, error) {
	slug, err := slugOr(req.Slug, req.Name)
	if err != nil {
		return nil, err
	}

	category := &tables.Category{
		Name:      req.Name,
		Slug:      slug,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := database.Create(cs.db, ctx, category); err != nil {
		return nil, lib.Conflict(lib.MapDBError(err), "Slug kategori sudah digunakan")
	}

	cs.cacheService.InvalidateCatalog(ctx)
	return category, nil
}

func (cs *CategoryService) Update(ctx context.Context, id int64, req *structs.CategoryRequest) (*tables.Category, error) {
	category, err := cs.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	slug, err := slugOr(req.Slug, req.Name)
	if err != nil {
		return nil, err
	}

	category.Name = req.Name
	category.Slug = slug

	if _, err := database.Query[tables.Category](cs.db).Where("id", id).Update(ctx, category); err != nil {
		return nil, lib.Conflict(lib.MapDBError(err), "Slug kategori sudah digunakan")
	}

	cs.cacheService.InvalidateCatalog(ctx)
	return category, nil
}

// Delete removes a category that no product references.
func (cs *CategoryService) Delete(ctx context.Context, id int64) error {
	if _, err := cs.Get(ctx, id); err != nil {
		return err
	}

	inUse, err := database.Query[tables.Product](cs.db).Where("category_id", id).Exists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check category products: %w", err)
	}
	if inUse {
		return lib.NewRuleError(CodeCategoryInUse, "Kategori masih memiliki produk. Hapus atau pindahkan produk terlebih dahulu.")
	}

	if err := deleteByID[tables.Category](ctx, cs.db, "category", id); err != nil {
		return err
	}

	cs.cacheService.InvalidateCatalog(ctx)
	return nil
}

// slugOr returns slug normalised, or one derived from name when slug is blank.
func slugOr(slug, name string) (string, error) {
	if s := lib.Slugify(slug); s != "" {
		return s, nil
	}
	if s := lib.Slugify(name); s != "" {
		return s, nil
	}
	return "", lib.NewValidationError(map[string]string{"slug": "is required when the name has no letters or digits"})
}
