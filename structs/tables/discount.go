package tables

import (
	"time"

	"github.com/uptrace/bun"
)

type DiscountType string

const (
	DiscountTypePercent DiscountType = "percent"
	DiscountTypeFixed   DiscountType = "fixed"
)

type DiscountScope string

const (
	DiscountScopeAll      DiscountScope = "all"
	DiscountScopeProducts DiscountScope = "products"
)

type Discount struct {
	bun.BaseModel `bun:"table:discounts,alias:d"`
	ID            int64         `bun:"id,pk,autoincrement" json:"id"`
	Code          string        `bun:"code,notnull,unique" json:"code"` // always upper case
	Name          string        `bun:"name,notnull" json:"name"`
	Type          DiscountType  `bun:"type,notnull" json:"type"`
	Value         int64         `bun:"value,notnull" json:"value"`
	MaxDiscount   *int64        `bun:"max_discount" json:"maxDiscount,omitempty"`
	MinPurchase   *int64        `bun:"min_purchase" json:"minPurchase,omitempty"`
	ApplyTo       DiscountScope `bun:"apply_to,notnull" json:"applyTo"`
	ProductIDs    []int64       `bun:"product_ids" json:"productIds"`
	UsageCount    int           `bun:"usage_count,notnull" json:"usageCount"`
	UsageLimit    *int          `bun:"usage_limit" json:"usageLimit,omitempty"`
	ExpiresAt     *time.Time    `bun:"expires_at" json:"expiresAt,omitempty"`
	IsActive      bool          `bun:"is_active,notnull" json:"isActive"`
	CreatedAt     time.Time     `bun:"created_at,notnull" json:"createdAt"`
}

// Exhausted reports whether the usage limit has been reached.
func (d *Discount) Exhausted() bool {
	return d.UsageLimit != nil && d.UsageCount >= *d.UsageLimit
}

func (d *Discount) AppliesTo(productID int64) bool {
	if d.ApplyTo != DiscountScopeProducts {
		return true
	}
	for _, id := range d.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}
