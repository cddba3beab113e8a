package tables

import (
	"time"

	"github.com/uptrace/bun"
)

// FlashSale is a time-windowed percentage discount on a product or one of its variants.
type FlashSale struct {
	bun.BaseModel   `bun:"table:flash_sales,alias:fs"`
	ID              int64     `bun:"id,pk,autoincrement" json:"id"`
	Title           string    `bun:"title,notnull" json:"title"`
	Description     string    `bun:"description" json:"description"`
	ProductID       int64     `bun:"product_id,notnull" json:"productId"`
	VariantID       *int64    `bun:"variant_id" json:"variantId,omitempty"`
	DiscountPercent float64   `bun:"discount_percent,notnull" json:"discountPercent"`
	StartDate       time.Time `bun:"start_date,notnull" json:"startDate"`
	EndDate         time.Time `bun:"end_date,notnull" json:"endDate"`
	IsActive        bool      `bun:"is_active,notnull" json:"isActive"`
	CreatedAt       time.Time `bun:"created_at,notnull" json:"createdAt"`

	Product *Product `bun:"rel:belongs-to,join:product_id=id" json:"product,omitempty"`
	Variant *Variant `bun:"rel:belongs-to,join:variant_id=id" json:"variant,omitempty"`

	OriginalPrice   int64 `bun:"-" json:"originalPrice"`
	DiscountedPrice int64 `bun:"-" json:"discountedPrice"`
}

// Running reports whether the sale window contains now.
func (f *FlashSale) Running(now time.Time) bool {
	return f.IsActive && !now.Before(f.StartDate) && !now.After(f.EndDate)
}
