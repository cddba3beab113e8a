package database

import (
	"context"
	"fmt"

	"digistore_server/structs/tables"

	"github.com/uptrace/bun"
)

// Models lists every table in creation order.
func Models() []any {
	return []any{
		(*tables.Category)(nil),
		(*tables.Product)(nil),
		(*tables.Variant)(nil),
		(*tables.PaymentMethod)(nil),
		(*tables.Discount)(nil),
		(*tables.FlashSale)(nil),
		(*tables.Order)(nil),
		(*tables.Testimonial)(nil),
		(*tables.Article)(nil),
		(*tables.StoreSetting)(nil),
		(*tables.Admin)(nil),
	}
}

type index struct {
	name    string
	model   any
	columns []string
}

var indexes = []index{
	{"idx_products_category_id", (*tables.Product)(nil), []string{"category_id"}},
	{"idx_variants_product_id", (*tables.Variant)(nil), []string{"product_id"}},
	{"idx_orders_status", (*tables.Order)(nil), []string{"status"}},
	{"idx_orders_created_at", (*tables.Order)(nil), []string{"created_at"}},
	{"idx_flash_sales_window", (*tables.FlashSale)(nil), []string{"start_date", "end_date"}},
}

// Migrate creates any missing tables and indexes. It is idempotent.
func Migrate(ctx context.Context, db bun.IDB) error {
	for _, model := range Models() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", model, err)
		}
	}

	for _, idx := range indexes {
		_, err := db.NewCreateIndex().
			Model(idx.model).
			Index(idx.name).
			Column(idx.columns...).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
