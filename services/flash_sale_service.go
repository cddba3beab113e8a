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

type FlashSaleService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewFlashSaleService(logger *gecho.Logger, db *database.DB) *FlashSaleService {
	return &FlashSaleService{
		logger: logger,
		db:     db,
	}
}

// ListRunning returns the active sales whose window contains now, ending soonest first.
func (fs *FlashSaleService) ListRunning(ctx context.Context) ([]tables.FlashSale, error) {
	sales, err := database.Query[tables.FlashSale](fs.db).
		Where("is_active", true).
		OrderBy("end_date", database.ASC).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list flash sales: %w", err)
	}

	now := time.Now().UTC()
	running := sales[:0]
	for _, sale := range sales {
		if sale.Running(now) {
			running = append(running, sale)
		}
	}

	if err := fs.attach(ctx, running); err != nil {
		return nil, err
	}
	for i := range running {
		priceFlashSale(&running[i])
	}
	return running, nil
}

// List returns every sale for the dashboard, newest first.
func (fs *FlashSaleService) List(ctx context.Context) ([]tables.FlashSale, error) {
	sales, err := database.Query[tables.FlashSale](fs.db).
		OrderBy("created_at", database.DESC).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list flash sales: %w", err)
	}
	if err := fs.attach(ctx, sales); err != nil {
		return nil, err
	}
	for i := range sales {
		priceFlashSale(&sales[i])
	}
	return sales, nil
}

func (fs *FlashSaleService) Get(ctx context.Context, id int64) (*tables.FlashSale, error) {
	sale, err := findByID[tables.FlashSale](ctx, fs.db, "flash sale", id)
	if err != nil {
		return nil, err
	}
	sales := []tables.FlashSale{*sale}
	if err := fs.attach(ctx, sales); err != nil {
		return nil, err
	}
	priceFlashSale(&sales[0])
	return &sales[0], nil
}

// attach loads the product (with its variants) and variant of each sale.
// Sales pointing at deleted rows keep nil relations.
func (fs *FlashSaleService) attach(ctx context.Context, sales []tables.FlashSale) error {
	if len(sales) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(sales))
	for _, sale := range sales {
		ids = append(ids, sale.ProductID)
	}

	products, err := database.Query[tables.Product](fs.db).
		With("Variants", orderVariants).
		WhereIn("p.id", ids).
		All(ctx)
	if err != nil {
		return fmt.Errorf("failed to load flash sale products: %w", err)
	}

	byID := make(map[int64]*tables.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for i := range sales {
		product, ok := byID[sales[i].ProductID]
		if !ok {
			continue
		}
		sales[i].Product = product
		if sales[i].VariantID == nil {
			continue
		}
		for j := range product.Variants {
			if product.Variants[j].ID == *sales[i].VariantID {
				sales[i].Variant = &product.Variants[j]
				break
			}
		}
	}
	return nil
}

// priceFlashSale fills the original and discounted price. The original price
// is the variant price, or the cheapest active variant of the product.
func priceFlashSale(sale *tables.FlashSale) {
	var original int64 = -1
	switch {
	case sale.Variant != nil:
		original = sale.Variant.Price
	case sale.Product != nil:
		for _, v := range sale.Product.Variants {
			if v.IsActive && (original < 0 || v.Price < original) {
				original = v.Price
			}
		}
	}

	if original < 0 {
		return
	}
	sale.OriginalPrice = original
	sale.DiscountedPrice = ApplyPercentOff(original, sale.DiscountPercent)
}

func (fs *FlashSaleService) validate(ctx context.Context, req *structs.FlashSaleRequest) error {
	product, err := database.Query[tables.Product](fs.db).Where("id", req.ProductID).First(ctx)
	if err != nil {
		return fmt.Errorf("failed to check product: %w", err)
	}
	if product == nil {
		return lib.NewValidationError(map[string]string{"productId": "does not exist"})
	}

	if req.VariantID != nil {
		exists, err := database.Query[tables.Variant](fs.db).
			Where("id", *req.VariantID).
			Where("product_id", req.ProductID).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("failed to check variant: %w", err)
		}
		if !exists {
			return lib.NewValidationError(map[string]string{"variantId": "does not belong to the product"})
		}
	}
	return nil
}

func applyFlashSaleRequest(sale *tables.FlashSale, req *structs.FlashSaleRequest) {
	sale.Title = req.Title
	sale.Description = req.Description
	sale.ProductID = req.ProductID
	sale.VariantID = req.VariantID
	sale.DiscountPercent = req.DiscountPercent
	sale.StartDate = req.StartDate.UTC()
	sale.EndDate = req.EndDate.UTC()
	sale.IsActive = boolOr(req.IsActive, sale.IsActive)
}

func (fs *FlashSaleService) Create(ctx context.Context, req *structs.FlashSaleRequest) (*tables.FlashSale, error) {
	if err := fs.validate(ctx, req); err != nil {
		return nil, err
	}

	sale := &tables.FlashSale{IsActive: true, CreatedAt: time.Now().UTC()}
	applyFlashSaleRequest(sale, req)

	if _, err := database.Create(fs.db, ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to create flash sale: %w", err)
	}

	fs.logger.Info("Flash sale created", gecho.Field("id", sale.ID), gecho.Field("product_id", sale.ProductID))
	return fs.Get(ctx, sale.ID)
}

func (fs *FlashSaleService) Update(ctx context.Context, id int64, req *structs.FlashSaleRequest) (*tables.FlashSale, error) {
	sale, err := findByID[tables.FlashSale](ctx, fs.db, "flash sale", id)
	if err != nil {
		return nil, err
	}
	if err := fs.validate(ctx, req); err != nil {
		return nil, err
	}
	applyFlashSaleRequest(sale, req)

	if _, err := database.Query[tables.FlashSale](fs.db).Where("id", id).Update(ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to update flash sale: %w", err)
	}
	return fs.Get(ctx, id)
}

func (fs *FlashSaleService) Delete(ctx context.Context, id int64) error {
	return deleteByID[tables.FlashSale](ctx, fs.db, "flash sale", id)
}
