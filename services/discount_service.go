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
	"github.com/uptrace/bun"
)

type DiscountService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewDiscountService(logger *gecho.Logger, db *database.DB) *DiscountService {
	return &DiscountService{
		logger: logger,
		db:     db,
	}
}

func (ds *DiscountService) findByCode(ctx context.Context, db bun.IDB, code string) (*tables.Discount, error) {
	d, err := database.Query[tables.Discount](db).Where("code", code).First(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load discount: %w", err)
	}
	return d, nil
}

// Validate checks a code against a purchase without consuming it.
func (ds *DiscountService) Validate(ctx context.Context, req *structs.ValidateDiscountRequest) (*structs.DiscountQuote, error) {
	code := NormalizeDiscountCode(req.Code)

	d, err := ds.findByCode(ctx, ds.db, code)
	if err != nil {
		return nil, err
	}

	return EvaluateDiscount(d, code, req.Subtotal, req.ProductID, time.Now().UTC())
}

// Redeem evaluates and consumes one use of a code inside tx. Losing the
// last use to a concurrent order reports the code as exhausted.
func (ds *DiscountService) Redeem(ctx context.Context, tx bun.IDB, code string, subtotal int64, productID *int64) (*structs.DiscountQuote, error) {
	code = NormalizeDiscountCode(code)

	d, err := ds.findByCode(ctx, tx, code)
	if err != nil {
		return nil, err
	}

	quote, err := EvaluateDiscount(d, code, subtotal, productID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	n, err := database.Query[tables.Discount](tx).
		Where("id", d.ID).
		Where("is_active", true).
		WhereRaw("(usage_limit IS NULL OR usage_count < usage_limit)").
		Update(ctx, map[string]any{"usage_count": bun.Safe("usage_count + 1")})
	if err != nil {
		return nil, fmt.Errorf("failed to consume discount: %w", err)
	}
	if n == 0 {
		return nil, discountExhausted()
	}

	if _, err := database.Query[tables.Discount](tx).
		Where("id", d.ID).
		WhereNotNull("usage_limit").
		WhereRaw("usage_count >= usage_limit").
		Update(ctx, map[string]any{"is_active": false}); err != nil {
		return nil, fmt.Errorf("failed to deactivate discount: %w", err)
	}

	if d.UsageLimit != nil && d.UsageCount+1 >= *d.UsageLimit {
		ds.logger.Info("Discount code used up", gecho.Field("code", code), gecho.Field("limit", *d.UsageLimit))
	}

	return quote, nil
}

func (ds *DiscountService) List(ctx context.Context) ([]tables.Discount, error) {
	discounts, err := database.Query[tables.Discount](ds.db).
		OrderBy("created_at", database.DESC).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list discounts: %w", err)
	}
	return discounts, nil
}

func (ds *DiscountService) Get(ctx context.Context, id int64) (*tables.Discount, error) {
	return findByID[tables.Discount](ctx, ds.db, "discount", id)
}

func applyDiscountRequest(d *tables.Discount, req *structs.DiscountRequest) error {
	scope := tables.DiscountScope(req.ApplyTo)
	if scope == "" {
		scope = tables.DiscountScopeAll
	}
	if scope == tables.DiscountScopeProducts && len(req.ProductIDs) == 0 {
		return lib.NewValidationError(map[string]string{"productIds": "is required when applyTo is products"})
	}
	if req.Type == string(tables.DiscountTypePercent) && req.Value > 100 {
		return lib.NewValidationError(map[string]string{"value": "must be at most 100 for percent discounts"})
	}

	productIDs := req.ProductIDs
	if scope == tables.DiscountScopeAll || productIDs == nil {
		productIDs = []int64{}
	}

	var expiresAt *time.Time
	if req.ExpiresAt != nil {
		t := req.ExpiresAt.UTC()
		expiresAt = &t
	}

	d.Code = NormalizeDiscountCode(req.Code)
	d.Name = req.Name
	d.Type = tables.DiscountType(req.Type)
	d.Value = req.Value
	d.MaxDiscount = req.MaxDiscount
	d.MinPurchase = req.MinPurchase
	d.ApplyTo = scope
	d.ProductIDs = productIDs
	d.UsageLimit = req.UsageLimit
	d.ExpiresAt = expiresAt
	d.IsActive = boolOr(req.IsActive, d.IsActive)
	return nil
}

func (ds *DiscountService) Create(ctx context.Context, req *structs.DiscountRequest) (*tables.Discount, error) {
	d := &tables.Discount{IsActive: true, CreatedAt: time.Now().UTC()}
	if err := applyDiscountRequest(d, req); err != nil {
		return nil, err
	}

	if _, err := database.Create(ds.db, ctx, d); err != nil {
		return nil, lib.Conflict(lib.MapDBError(err), "Kode diskon sudah digunakan")
	}

	ds.logger.Info("Discount created", gecho.Field("code", d.Code))
	return d, nil
}

// Update replaces the mutable fields. The usage counter is kept.
func (ds *DiscountService) Update(ctx context.Context, id int64, req *structs.DiscountRequest) (*tables.Discount, error) {
	d, err := ds.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyDiscountRequest(d, req); err != nil {
		return nil, err
	}

	if _, err := database.Query[tables.Discount](ds.db).Where("id", id).Update(ctx, d); err != nil {
		return nil, lib.Conflict(lib.MapDBError(err), "Kode diskon sudah digunakan")
	}
	return d, nil
}

func (ds *DiscountService) Delete(ctx context.Context, id int64) error {
	return deleteByID[tables.Discount](ctx, ds.db, "discount", id)
}
