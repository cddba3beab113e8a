package tables

import (
	"time"

	"github.com/uptrace/bun"
)

type FeeType string

const (
	FeeTypeFixed   FeeType = "fixed"
	FeeTypePercent FeeType = "percent"
)

type PaymentMethod struct {
	bun.BaseModel `bun:"table:payment_methods,alias:pm"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Name          string    `bun:"name,notnull" json:"name"`
	Icon          string    `bun:"icon" json:"icon"`
	AccountInfo   string    `bun:"account_info" json:"accountInfo"`
	FeeType       FeeType   `bun:"fee_type,notnull" json:"feeType"`
	Fees          float64   `bun:"fees,notnull" json:"fees"` // rupiah for fixed, percentage for percent
	Currency      string    `bun:"currency,notnull" json:"currency"`
	IsActive      bool      `bun:"is_active,notnull" json:"isActive"`
	CreatedAt     time.Time `bun:"created_at,notnull" json:"createdAt"`
}
