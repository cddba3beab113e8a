package tables

import (
	"time"

	"github.com/uptrace/bun"
)

type Testimonial struct {
	bun.BaseModel `bun:"table:testimonials,alias:t"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	OrderCode     string    `bun:"order_code,notnull,unique" json:"orderCode"`
	Name          string    `bun:"name,notnull" json:"name"`
	Content       string    `bun:"content,notnull" json:"content"`
	Rating        int       `bun:"rating,notnull" json:"rating"`
	ProductName   string    `bun:"product_name" json:"productName"`
	IsApproved    bool      `bun:"is_approved,notnull" json:"isApproved"`
	CreatedAt     time.Time `bun:"created_at,notnull" json:"createdAt"`
}

type Article struct {
	bun.BaseModel `bun:"table:articles,alias:a"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Title         string    `bun:"title,notnull" json:"title"`
	Slug          string    `bun:"slug,notnull,unique" json:"slug"`
	Content       string    `bun:"content" json:"content"`
	Image         string    `bun:"image" json:"image"`
	IsPublished   bool      `bun:"is_published,notnull" json:"isPublished"`
	CreatedAt     time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt     time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

// StoreSetting is one key/value row backing structs.StoreSettings.
type StoreSetting struct {
	bun.BaseModel `bun:"table:store_settings,alias:ss"`
	Key           string    `bun:"key,pk" json:"key"`
	Value         string    `bun:"value" json:"value"`
	UpdatedAt     time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}
