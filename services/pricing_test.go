package services

import (
	"errors"
	"math"
	"testing"
	"time"

	"digistore_server/lib"
	"digistore_server/structs/tables"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountAmount(t *testing.T) {
	tests := []struct {
		name     string
		discount tables.Discount
		subtotal int64
		want     int64
	}{
		{"percent rounds down", tables.Discount{Type: tables.DiscountTypePercent, Value: 10}, 90037, 9003},
		{"percent capped", tables.Discount{Type: tables.DiscountTypePercent, Value: 50, MaxDiscount: ptr(int64(20000))}, 100000, 20000},
		{"percent under cap", tables.Discount{Type: tables.DiscountTypePercent, Value: 10, MaxDiscount: ptr(int64(20000))}, 100000, 10000},
		{"fixed", tables.Discount{Type: tables.DiscountTypeFixed, Value: 10000}, 90000, 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiscountAmount(&tt.discount, tt.subtotal))
		})
	}
}

func TestPaymentFee(t *testing.T) {
	assert.Equal(t, int64(0), PaymentFee(nil, 100000))
	assert.Equal(t, int64(2500), PaymentFee(&tables.PaymentMethod{FeeType: tables.FeeTypeFixed, Fees: 2500}, 100000))
	assert.Equal(t, int64(700), PaymentFee(&tables.PaymentMethod{FeeType: tables.FeeTypePercent, Fees: 0.7}, 100000))
	assert.Equal(t, int64(675), PaymentFee(&tables.PaymentMethod{FeeType: tables.FeeTypePercent, Fees: 1.5}, 45001))
}

func TestOrderTotal(t *testing.T) {
	total, err := OrderTotal(45000*2, 0, 0, 37)
	require.NoError(t, err)
	assert.Equal(t, int64(90037), total)

	total, err = OrderTotal(90000, 2500, 10000, 37)
	require.NoError(t, err)
	assert.Equal(t, int64(82537), total)

	_, err = OrderTotal(MaxOrderAmount, math.MaxInt64, 0, 37)
	assert.Equal(t, CodeOrderTooLarge, ruleCode(t, err))
}

func TestLineAmount(t *testing.T) {
	amount, err := LineAmount(45000, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(135000), amount)

	_, err = LineAmount(9_300_000_000_000_000, 1000)
	assert.Equal(t, CodeOrderTooLarge, ruleCode(t, err))

	_, err = LineAmount(-1, 2)
	var validationErr *lib.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	sum, err := AddAmount(MaxOrderAmount-1, 1)
	require.NoError(t, err)
	assert.Equal(t, MaxOrderAmount, sum)

	_, err = AddAmount(MaxOrderAmount, 1)
	assert.Equal(t, CodeOrderTooLarge, ruleCode(t, err))
}

func TestApplyPercentOff(t *testing.T) {
	assert.Equal(t, int64(85000), ApplyPercentOff(100000, 15))
	assert.Equal(t, int64(30015), ApplyPercentOff(45000, 33.3))
	assert.Equal(t, int64(0), ApplyPercentOff(45000, 100))
}

func TestNormalizeDiscountCode(t *testing.T) {
	assert.Equal(t, "HEMAT10", NormalizeDiscountCode("  hemat10 "))
}

func ruleCode(t *testing.T, err error) string {
	t.Helper()

	var re *lib.RuleError
	require.True(t, errors.As(err, &re), "expected a rule error, got %v", err)
	return re.Code
}

func TestEvaluateDiscount(t *testing.T) {
	now := time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC)
	productID := int64(3)

	t.Run("missing code", func(t *testing.T) {
		_, err := EvaluateDiscount(nil, "NOPE", 50000, nil, now)
		assert.ErrorIs(t, err, lib.ErrNotFound)
	})

	t.Run("inactive code", func(t *testing.T) {
		d := &tables.Discount{Code: "OFF", IsActive: false}
		_, err := EvaluateDiscount(d, "OFF", 50000, nil, now)
		assert.ErrorIs(t, err, lib.ErrNotFound)
	})

	t.Run("inactive because used up", func(t *testing.T) {
		d := &tables.Discount{Code: "OFF", IsActive: false, UsageCount: 5, UsageLimit: ptr(5)}
		_, err := EvaluateDiscount(d, "OFF", 50000, nil, now)
		assert.Equal(t, CodeDiscountExhausted, ruleCode(t, err))
	})

	t.Run("expired", func(t *testing.T) {
		d := &tables.Discount{Code: "OLD", IsActive: true, ExpiresAt: ptr(now)}
		_, err := EvaluateDiscount(d, "OLD", 50000, nil, now)
		assert.Equal(t, CodeDiscountExpired, ruleCode(t, err))
	})

	t.Run("below minimum purchase", func(t *testing.T) {
		d := &tables.Discount{Code: "BIG", IsActive: true, MinPurchase: ptr(int64(100000))}
		_, err := EvaluateDiscount(d, "BIG", 50000, nil, now)
		assert.Equal(t, CodeDiscountMinPurchase, ruleCode(t, err))
		assert.EqualError(t, err, "Minimal pembelian Rp 100.000")
	})

	t.Run("other product", func(t *testing.T) {
		d := &tables.Discount{Code: "CANVA", IsActive: true, ApplyTo: tables.DiscountScopeProducts, ProductIDs: []int64{1, 2}}
		_, err := EvaluateDiscount(d, "CANVA", 50000, &productID, now)
		assert.Equal(t, CodeDiscountInapplicable, ruleCode(t, err))

		_, err = EvaluateDiscount(d, "CANVA", 50000, nil, now)
		assert.Equal(t, CodeDiscountInapplicable, ruleCode(t, err))
	})

	t.Run("valid", func(t *testing.T) {
		d := &tables.Discount{
			Code:       "HEMAT",
			Name:       "Hemat",
			Type:       tables.DiscountTypePercent,
			Value:      10,
			IsActive:   true,
			ApplyTo:    tables.DiscountScopeProducts,
			ProductIDs: []int64{productID},
			ExpiresAt:  ptr(now.Add(time.Hour)),
			UsageCount: 4,
			UsageLimit: ptr(5),
		}
		quote, err := EvaluateDiscount(d, "HEMAT", 90000, &productID, now)
		require.NoError(t, err)
		assert.Equal(t, "HEMAT", quote.Code)
		assert.Equal(t, "percent", quote.Type)
		assert.Equal(t, int64(9000), quote.DiscountAmount)
	})
}
