package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"digistore_server/database"
	"digistore_server/structs"
	"digistore_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

const (
	defaultPaymentIcon     = "💳"
	defaultPaymentCurrency = "IDR"
)

type PaymentService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewPaymentService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *PaymentService {
	return &PaymentService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

// ListActive returns the methods shown at checkout.
func (ps *PaymentService) ListActive(ctx context.Context) ([]tables.PaymentMethod, error) {
	if cached, err := GetCatalog[[]tables.PaymentMethod](ctx, ps.cacheService, "payment-methods"); err != nil {
		ps.logger.Warn("Failed to get payment methods from cache", gecho.Field("error", err))
	} else if cached != nil {
		return *cached, nil
	}

	methods, err := database.Query[tables.PaymentMethod](ps.db).
		Where("is_active", true).
		OrderBy("id", database.ASC).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}

	if err := SetCatalog(ctx, ps.cacheService, methods, "payment-methods"); err != nil {
		ps.logger.Warn("Failed to cache payment methods", gecho.Field("error", err))
	}
	return methods, nil
}

func (ps *PaymentService) List(ctx context.Context) ([]tables.PaymentMethod, error) {
	methods, err := database.Query[tables.PaymentMethod](ps.db).OrderBy("id", database.ASC).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	return methods, nil
}

func (ps *PaymentService) Get(ctx context.Context, id int64) (*tables.PaymentMethod, error) {
	return findByID[tables.PaymentMethod](ctx, ps.db, "payment method", id)
}

// FindActiveByName looks up the active method a buyer picked, case-insensitively.
// It returns nil when no active method has that name.
func (ps *PaymentService) FindActiveByName(ctx context.Context, db bun.IDB, name string) (*tables.PaymentMethod, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	pm, err := database.Query[tables.PaymentMethod](db).
		WhereRaw("LOWER(name) = ?", strings.ToLower(name)).
		Where("is_active", true).
		First(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment method: %w", err)
	}
	return pm, nil
}

func applyPaymentRequest(pm *tables.PaymentMethod, req *structs.PaymentMethodRequest) {
	pm.Name = strings.TrimSpace(req.Name)
	pm.Icon = req.Icon
	if pm.Icon == "" {
		pm.Icon = defaultPaymentIcon
	}
	pm.AccountInfo = req.AccountInfo
	pm.FeeType = tables.FeeType(req.FeeType)
	if pm.FeeType == "" {
		pm.FeeType = tables.FeeTypeFixed
	}
	pm.Fees = req.Fees
	pm.Currency = strings.ToUpper(req.Currency)
	if pm.Currency == "" {
		pm.Currency = defaultPaymentCurrency
	}
	pm.IsActive = boolOr(req.IsActive, pm.IsActive)
}

func (ps *PaymentService) Create(ctx context.Context, req *structs.PaymentMethodRequest) (*tables.PaymentMethod, error) {
	pm := &tables.PaymentMethod{IsActive: true, CreatedAt: time.Now().UTC()}
	applyPaymentRequest(pm, req)

	if _, err := database.Create(ps.db, ctx, pm); err != nil {
		return nil, fmt.Errorf("failed to create payment method: %w", err)
	}

	ps.cacheService.InvalidateCatalog(ctx)
	return pm, nil
}

func (ps *PaymentService) Update(ctx context.Context, id int64, req *structs.PaymentMethodRequest) (*tables.PaymentMethod, error) {
	pm, err := ps.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyPaymentRequest(pm, req)

	if _, err := database.Query[tables.PaymentMethod](ps.db).Where("id", id).Update(ctx, pm); err != nil {
		return nil, fmt.Errorf("failed to update payment method: %w", err)
	}

	ps.cacheService.InvalidateCatalog(ctx)
	return pm, nil
}

func (ps *PaymentService) Delete(ctx context.Context, id int64) error {
	if err := deleteByID[tables.PaymentMethod](ctx, ps.db, "payment method", id); err != nil {
		return err
	}
	ps.cacheService.InvalidateCatalog(ctx)
	return nil
}
