package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"digistore_server/database"
	"digistore_server/lib"
	"digistore_server/structs"
	"digistore_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

const (
	maxCodeAttempts = 5
	topProductLimit = 5
)

type OrderService struct {
	logger          *gecho.Logger
	cfg             *structs.Config
	db              *database.DB
	discountService *DiscountService
	paymentService  *PaymentService
	settingsService *SettingsService
	emailService    *EmailService
}

func NewOrderService(
	logger *gecho.Logger,
	cfg *structs.Config,
	db *database.DB,
	discountService *DiscountService,
	paymentService *PaymentService,
	settingsService *SettingsService,
	emailService *EmailService,
) *OrderService {
	return &OrderService{
		logger:          logger,
		cfg:             cfg,
		db:              db,
		discountService: discountService,
		paymentService:  paymentService,
		settingsService: settingsService,
		emailService:    emailService,
	}
}

// uniqueCode picks the transfer surcharge, honouring a valid client value.
func (os *OrderService) uniqueCode(requested int) (int, error) {
	if requested >= 1 && requested <= lib.MaxUniqueCode {
		return requested, nil
	}
	return lib.GenerateUniqueCode(os.cfg.Orders.UniqueCodeMax)
}

// newCode draws codes from generate until one is not used by any order.
func (os *OrderService) newCode(ctx context.Context, tx bun.IDB, generate func() (string, error)) (string, error) {
	for range maxCodeAttempts {
		code, err := generate()
		if err != nil {
			return "", err
		}

		taken, err := database.Query[tables.Order](tx).Where("order_code", code).Exists(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to check order code: %w", err)
		}
		if !taken {
			return code, nil
		}
		os.logger.Warn("Order code collision, retrying", gecho.Field("code", code))
	}
	return "", fmt.Errorf("failed to generate a free order code after %d attempts", maxCodeAttempts)
}

// paymentFee prefers the fee of the active method named by the buyer over the
// client-supplied one.
func (os *OrderService) paymentFee(ctx context.Context, tx bun.IDB, name string, clientFee, subtotal int64) (int64, string, error) {
	pm, err := os.paymentService.FindActiveByName(ctx, tx, name)
	if err != nil {
		return 0, "", err
	}
	if pm == nil {
		return max(clientFee, 0), "", nil
	}
	return PaymentFee(pm, subtotal), pm.AccountInfo, nil
}

// Create checks out a single product. The discount use, if any, is consumed
// in the same transaction as the order insert.
func (os *OrderService) Create(ctx context.Context, req *structs.OrderRequest) (*structs.OrderReceipt, error) {
	settings, err := os.settingsService.CheckOpen(ctx)
	if err != nil {
		return nil, err
	}

	subtotal, err := LineAmount(req.Price, req.Quantity)
	if err != nil {
		return nil, err
	}
	uniqueCode, err := os.uniqueCode(0)
	if err != nil {
		return nil, err
	}

	order := &tables.Order{
		LineNo:        1,
		ProductName:   req.ProductName,
		VariantName:   req.VariantName,
		Quantity:      req.Quantity,
		Price:         req.Price,
		PaymentMethod: req.PaymentMethod,
		UniqueCode:    uniqueCode,
		BuyerMessage:  strings.TrimSpace(req.BuyerMessage),
		Status:        tables.OrderStatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	err = database.Transaction(ctx, os.db, func(ctx context.Context, tx bun.Tx) error {
		fee, accountInfo, err := os.paymentFee(ctx, tx, req.PaymentMethod, req.PaymentFee, subtotal)
		if err != nil {
			return err
		}
		order.PaymentFee = fee
		order.PaymentAccountInfo = accountInfo

		if code := NormalizeDiscountCode(req.DiscountCode); code != "" {
			quote, err := os.discountService.Redeem(ctx, tx, code, subtotal, req.ProductID)
			if err != nil {
				return err
			}
			order.DiscountCode = quote.Code
			order.DiscountAmount = min(quote.DiscountAmount, subtotal)
		}

		order.TotalPrice, err = OrderTotal(subtotal, order.PaymentFee, order.DiscountAmount, uniqueCode)
		if err != nil {
			return err
		}

		order.OrderCode, err = os.newCode(ctx, tx, func() (string, error) {
			return lib.GenerateOrderCode(os.cfg.Orders.OrderCodePrefix)
		})
		if err != nil {
			return err
		}

		_, err = database.Create(tx, ctx, order)
		return err
	})
	if err != nil {
		return nil, err
	}

	os.logger.Info("Order created",
		gecho.Field("order_code", order.OrderCode),
		gecho.Field("total", order.TotalPrice),
		gecho.Field("discount_code", order.DiscountCode),
	)

	message := lib.RenderMessage(settings.WhatsAppTemplate, lib.OrderMessage{
		StoreName:    settings.StoreName,
		OrderCode:    order.OrderCode,
		Product:      order.ProductName,
		Variant:      order.VariantName,
		Quantity:     order.Quantity,
		Price:        subtotal,
		Fee:          order.PaymentFee,
		Discount:     order.DiscountAmount,
		DiscountCode: order.DiscountCode,
		UniqueCode:   order.UniqueCode,
		Total:        order.TotalPrice,
		Payment:      order.PaymentMethod,
		Note:         order.BuyerMessage,
	})

	os.emailService.NotifyNewOrder([]tables.Order{*order})

	return &structs.OrderReceipt{
		Success:        true,
		OrderCode:      order.OrderCode,
		ItemCount:      1,
		UniqueCode:     order.UniqueCode,
		Subtotal:       subtotal,
		PaymentFee:     order.PaymentFee,
		DiscountAmount: order.DiscountAmount,
		TotalPrice:     order.TotalPrice,
		Message:        message,
		WhatsAppURL:    lib.WhatsAppURL(settings.WhatsAppNumber, message),
	}, nil
}

// CreateCart checks out several items under one booking code and one
// unique code. Every line stores the grand total.
func (os *OrderService) CreateCart(ctx context.Context, req *structs.CartOrderRequest) (*structs.OrderReceipt, error) {
	if len(req.Items) == 0 {
		return nil, lib.NewRuleError("CART_EMPTY", "Keranjang kosong")
	}

	settings, err := os.settingsService.CheckOpen(ctx)
	if err != nil {
		return nil, err
	}

	var subtotal int64
	for _, item := range req.Items {
		amount, err := LineAmount(item.Price, item.Quantity)
		if err != nil {
			return nil, err
		}
		if subtotal, err = AddAmount(subtotal, amount); err != nil {
			return nil, err
		}
	}

	uniqueCode, err := os.uniqueCode(req.UniqueCode)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	buyerMessage := strings.TrimSpace(req.BuyerMessage)
	var lines []tables.Order

	err = database.Transaction(ctx, os.db, func(ctx context.Context, tx bun.Tx) error {
		fee, accountInfo, err := os.paymentFee(ctx, tx, req.PaymentMethod, req.PaymentFee, subtotal)
		if err != nil {
			return err
		}
		total, err := OrderTotal(subtotal, fee, 0, uniqueCode)
		if err != nil {
			return err
		}

		code, err := os.newCode(ctx, tx, func() (string, error) {
			return lib.GenerateBookingCode(os.cfg.Orders.BookingCodePrefix, now)
		})
		if err != nil {
			return err
		}

		lines = make([]tables.Order, 0, len(req.Items))
		for i, item := range req.Items {
			lines = append(lines, tables.Order{
				OrderCode:          code,
				LineNo:             i + 1,
				ProductName:        item.ProductName,
				VariantName:        item.VariantName,
				Quantity:           item.Quantity,
				Price:              item.Price,
				PaymentMethod:      req.PaymentMethod,
				PaymentFee:         fee,
				PaymentAccountInfo: accountInfo,
				UniqueCode:         uniqueCode,
				TotalPrice:         total,
				BuyerMessage:       buyerMessage,
				Status:             tables.OrderStatusPending,
				CreatedAt:          now,
			})
		}

		lines, err = database.Query[tables.Order](tx).InsertMany(ctx, lines)
		return err
	})
	if err != nil {
		return nil, err
	}

	first := lines[0]
	os.logger.Info("Cart order created",
		gecho.Field("order_code", first.OrderCode),
		gecho.Field("items", len(lines)),
		gecho.Field("total", first.TotalPrice),
	)

	cart := lib.CartMessage{
		StoreName:   settings.StoreName,
		BookingCode: first.OrderCode,
		Subtotal:    subtotal,
		Fee:         first.PaymentFee,
		UniqueCode:  uniqueCode,
		Total:       first.TotalPrice,
		Payment:     req.PaymentMethod,
		Note:        buyerMessage,
	}
	for _, line := range lines {
		cart.Lines = append(cart.Lines, lib.CartLine{
			Product:  line.ProductName,
			Variant:  line.VariantName,
			Quantity: line.Quantity,
			Amount:   line.Price * int64(line.Quantity),
		})
	}
	message := lib.RenderCartMessage(cart)

	os.emailService.NotifyNewOrder(lines)

	return &structs.OrderReceipt{
		Success:     true,
		OrderCode:   first.OrderCode,
		ItemCount:   len(lines),
		UniqueCode:  uniqueCode,
		Subtotal:    subtotal,
		PaymentFee:  first.PaymentFee,
		TotalPrice:  first.TotalPrice,
		Message:     message,
		WhatsAppURL: lib.WhatsAppURL(settings.WhatsAppNumber, message),
	}, nil
}

// List returns order lines, newest first, filtered by status and by a
// search over order code and product name.
func (os *OrderService) List(ctx context.Context, opts *structs.OrderListOptions) (*database.PaginationResult[tables.Order], error) {
	query := database.Query[tables.Order](os.db)
	if opts.Status != "" {
		query = query.Where("status", opts.Status)
	}
	if opts.Search != "" {
		needle := "%" + strings.ToLower(opts.Search) + "%"
		query = query.WhereRaw("(LOWER(order_code) LIKE ? OR LOWER(product_name) LIKE ?)", needle, needle)
	}

	result, err := database.Paginate(
		query.OrderBy("created_at", database.DESC).OrderBy("id", database.DESC),
		ctx, opts.Page, opts.PageSize,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return result, nil
}

func (os *OrderService) Get(ctx context.Context, id int64) (*tables.Order, error) {
	order, err := findByID[tables.Order](ctx, os.db, "order", id)
	if errors.Is(err, lib.ErrNotFound) {
		return nil, &lib.NotFoundError{Resource: "order", Key: id, Message: "Order tidak ditemukan"}
	}
	return order, err
}

// UpdateStatus sets the status of the order the line belongs to. All lines
// sharing its code move together.
func (os *OrderService) UpdateStatus(ctx context.Context, id int64, status tables.OrderStatus) (*tables.Order, error) {
	if !status.Valid() {
		return nil, lib.NewValidationError(map[string]string{"status": "Status tidak valid"})
	}

	order, err := os.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := database.Query[tables.Order](os.db).
		Where("order_code", order.OrderCode).
		Update(ctx, map[string]any{"status": status}); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	os.logger.Info("Order status updated",
		gecho.Field("order_code", order.OrderCode),
		gecho.Field("from", order.Status),
		gecho.Field("to", status),
	)

	order.Status = status
	return order, nil
}

// Delete removes the order the line belongs to, including its other lines.
func (os *OrderService) Delete(ctx context.Context, id int64) error {
	order, err := os.Get(ctx, id)
	if err != nil {
		return err
	}

	if _, err := database.Query[tables.Order](os.db).Where("order_code", order.OrderCode).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	os.logger.Info("Order deleted", gecho.Field("order_code", order.OrderCode))
	return nil
}

const analyticsQueryTimeout = 30 * time.Second

// Analytics summarises orders. Revenue counts completed orders once per
// order code, so a cart contributes its grand total a single time.
func (os *OrderService) Analytics(ctx context.Context) (*structs.OrderAnalytics, error) {
	// full scan, allowed more time than a regular query
	lines, err := database.Query[tables.Order](os.db).
		OrderBy("order_code", database.ASC).
		OrderBy("line_no", database.ASC).
		Timeout(analyticsQueryTimeout).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	return summarizeOrders(lines, time.Now()), nil
}

func summarizeOrders(lines []tables.Order, now time.Time) *structs.OrderAnalytics {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := today.AddDate(0, 0, -7)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	out := &structs.OrderAnalytics{
		StatusCounts: make(map[string]int64),
		TopProducts:  []structs.ProductSales{},
		PaymentStats: []structs.PaymentStats{},
	}

	products := make(map[string]*structs.ProductSales)
	payments := make(map[string]*structs.PaymentStats)
	seen := make(map[string]bool)

	for _, line := range lines {
		completed := line.Status == tables.OrderStatusCompleted

		if completed {
			sales, ok := products[line.ProductName]
			if !ok {
				sales = &structs.ProductSales{ProductName: line.ProductName}
				products[line.ProductName] = sales
			}
			sales.Quantity += int64(line.Quantity)
			sales.Revenue += line.Price * int64(line.Quantity)
		}

		if seen[line.OrderCode] {
			continue
		}
		seen[line.OrderCode] = true

		out.TotalOrders++
		out.StatusCounts[string(line.Status)]++

		if !completed {
			continue
		}

		created := line.CreatedAt.In(now.Location())
		out.Revenue.Total += line.TotalPrice
		if !created.Before(today) {
			out.Revenue.Today += line.TotalPrice
		}
		if !created.Before(weekStart) {
			out.Revenue.Week += line.TotalPrice
		}
		if !created.Before(monthStart) {
			out.Revenue.Month += line.TotalPrice
		}

		stats, ok := payments[line.PaymentMethod]
		if !ok {
			stats = &structs.PaymentStats{PaymentMethod: line.PaymentMethod}
			payments[line.PaymentMethod] = stats
		}
		stats.Count++
		stats.Revenue += line.TotalPrice
	}

	for _, sales := range products {
		out.TopProducts = append(out.TopProducts, *sales)
	}
	slices.SortFunc(out.TopProducts, func(a, b structs.ProductSales) int {
		if c := cmp.Compare(b.Quantity, a.Quantity); c != 0 {
			return c
		}
		return strings.Compare(a.ProductName, b.ProductName)
	})
	if len(out.TopProducts) > topProductLimit {
		out.TopProducts = out.TopProducts[:topProductLimit]
	}

	for _, stats := range payments {
		out.PaymentStats = append(out.PaymentStats, *stats)
	}
	slices.SortFunc(out.PaymentStats, func(a, b structs.PaymentStats) int {
		if c := cmp.Compare(b.Revenue, a.Revenue); c != 0 {
			return c
		}
		return strings.Compare(a.PaymentMethod, b.PaymentMethod)
	})

	return out
}
