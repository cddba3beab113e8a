package services

import (
	"strings"
	"time"

	"digistore_server/lib"
	"digistore_server/structs"
	"digistore_server/structs/tables"

	"github.com/shopspring/decimal"
)

// Rule error codes returned by EvaluateDiscount.
const (
	CodeDiscountExpired      = "DISCOUNT_EXPIRED"
	CodeDiscountExhausted    = "DISCOUNT_EXHAUSTED"
	CodeDiscountMinPurchase  = "DISCOUNT_MIN_PURCHASE"
	CodeDiscountInapplicable = "DISCOUNT_INAPPLICABLE"
	CodeOrderTooLarge        = "ORDER_AMOUNT_TOO_LARGE"
)

// MaxOrderAmount bounds any rupiah amount an order carries, so sums of
// subtotal, fee and unique code stay far inside int64.
const MaxOrderAmount int64 = 1_000_000_000_000_000

var hundred = decimal.NewFromInt(100)

// NormalizeDiscountCode trims and upper-cases a discount code.
func NormalizeDiscountCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func discountNotFound(code string) error {
	return &lib.NotFoundError{Resource: "discount", Key: code, Message: "Kode diskon tidak ditemukan"}
}

func discountExhausted() error {
	return lib.NewRuleError(CodeDiscountExhausted, "Promo ini sudah habis terpakai")
}

// EvaluateDiscount checks d against a purchase and returns the quote, with the
// amount capped at subtotal. d may be nil when no row matched code. productID is nil for purchases not tied to a product.
func EvaluateDiscount(d *tables.Discount, code string, subtotal int64, productID *int64, now time.Time) (*structs.DiscountQuote, error) {
	if d == nil {
		return nil, discountNotFound(code)
	}

	if !d.IsActive {
		// codes switch themselves off once used up, report that instead of a missing code
		if d.Exhausted() {
			return nil, discountExhausted()
		}
		return nil, discountNotFound(code)
	}

	if d.ExpiresAt != nil && !now.Before(*d.ExpiresAt) {
		return nil, lib.NewRuleError(CodeDiscountExpired, "Kode diskon sudah kadaluarsa")
	}

	if d.Exhausted() {
		return nil, discountExhausted()
	}

	if d.MinPurchase != nil && subtotal < *d.MinPurchase {
		err := lib.NewRuleError(CodeDiscountMinPurchase, "Minimal pembelian "+lib.FormatRupiah(*d.MinPurchase))
		err.Data = map[string]any{"minPurchase": *d.MinPurchase}
		return nil, err
	}

	if d.ApplyTo == tables.DiscountScopeProducts && (productID == nil || !d.AppliesTo(*productID)) {
		return nil, lib.NewRuleError(CodeDiscountInapplicable, "Diskon tidak berlaku untuk produk ini")
	}

	return &structs.DiscountQuote{
		Code:           d.Code,
		Name:           d.Name,
		Type:           string(d.Type),
		Value:          d.Value,
		DiscountAmount: min(DiscountAmount(d, subtotal), max(subtotal, 0)),
	}, nil
}

// DiscountAmount computes the rupiah amount d takes off subtotal.
func DiscountAmount(d *tables.Discount, subtotal int64) int64 {
	if d.Type != tables.DiscountTypePercent {
		return d.Value
	}

	amount := decimal.NewFromInt(subtotal).
		Mul(decimal.NewFromInt(d.Value)).
		Div(hundred).
		Floor().
		IntPart()

	if d.MaxDiscount != nil && amount > *d.MaxDiscount {
		amount = *d.MaxDiscount
	}
	return amount
}

// PaymentFee computes the fee charged by a payment method on subtotal.
func PaymentFee(pm *tables.PaymentMethod, subtotal int64) int64 {
	if pm == nil {
		return 0
	}

	fees := decimal.NewFromFloat(pm.Fees)
	if pm.FeeType == tables.FeeTypePercent {
		return decimal.NewFromInt(subtotal).Mul(fees).Div(hundred).Round(0).IntPart()
	}
	return fees.Round(0).IntPart()
}

func orderTooLarge() error {
	return lib.NewRuleError(CodeOrderTooLarge, "Total pesanan melebihi batas")
}

// LineAmount is price * quantity.
func LineAmount(price int64, quantity int) (int64, error) {
	if price < 0 || quantity < 0 {
		return 0, lib.NewValidationError(map[string]string{"price": "must not be negative"})
	}
	if quantity > 0 && price > MaxOrderAmount/int64(quantity) {
		return 0, orderTooLarge()
	}
	return price * int64(quantity), nil
}

// AddAmount adds two non-negative amounts, failing past MaxOrderAmount.
func AddAmount(a, b int64) (int64, error) {
	if b > MaxOrderAmount-a {
		return 0, orderTooLarge()
	}
	return a + b, nil
}

// OrderTotal is subtotal + fee - discount + the unique transfer code.
func OrderTotal(subtotal, fee, discount int64, uniqueCode int) (int64, error) {
	if subtotal < 0 || fee < 0 || discount < 0 {
		return 0, lib.NewValidationError(map[string]string{"total": "amounts must not be negative"})
	}
	gross, err := AddAmount(subtotal, fee)
	if err != nil {
		return 0, err
	}
	return gross - min(discount, gross) + int64(uniqueCode), nil
}

// ApplyPercentOff returns price reduced by percent, rounded to whole rupiah.
func ApplyPercentOff(price int64, percent float64) int64 {
	factor := hundred.Sub(decimal.NewFromFloat(percent)).Div(hundred)
	return decimal.NewFromInt(price).Mul(factor).Round(0).IntPart()
}
