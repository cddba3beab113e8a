package tables

import (
	"time"

	"github.com/uptrace/bun"
)

type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Name          string    `bun:"name,notnull" json:"name"`
	Slug          string    `bun:"slug,notnull,unique" json:"slug"`
	CreatedAt     time.Time `bun:"created_at,notnull" json:"createdAt"`
}

type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Name          string    `bun:"name,notnull" json:"name"`
	Slug          string    `bun:"slug,notnull,unique" json:"slug"`
	Description   string    `bun:"description" json:"description"`
	Image         string    `bun:"image" json:"image"`
	Badge         string    `bun:"badge" json:"badge,omitempty"` // e.g. "Best Seller"
	IsActive      bool      `bun:"is_active,notnull" json:"isActive"`
	CategoryID    int64     `bun:"category_id,notnull" json:"categoryId"`
	CreatedAt     time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt     time.Time `bun:"updated_at,notnull" json:"updatedAt"`

	Category *Category `bun:"rel:belongs-to,join:category_id=id" json:"category,omitempty"`
	Variants []Variant `bun:"rel:has-many,join:id=product_id" json:"variants"`
}

// Variant is a purchasable SKU of a product, e.g. "1 Bulan" or "3 Bulan".
type Variant struct {
	bun.BaseModel `bun:"table:variants,alias:v"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	ProductID     int64  `bun:"product_id,notnull" json:"productId"`
	Name          string `bun:"name,notnull" json:"name"`
	Price         int64  `bun:"price,notnull" json:"price"`
	OriginalPrice *int64 `bun:"original_price" json:"originalPrice,omitempty"` // strike-through price
	IsWarranty    bool   `bun:"is_warranty,notnull" json:"isWarranty"`
	IsActive      bool   `bun:"is_active,notnull" json:"isActive"`
}

// CategoryName is what the storefront shows next to a product.
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}
