package tables

import (
	"time"

	"github.com/uptrace/bun"
)

// Order is a single line of a checkout. A cart checkout writes one row per
// line, all sharing the same order code and unique code.
type Order struct {
	bun.BaseModel      `bun:"table:orders,alias:o"`
	ID                 int64       `bun:"id,pk,autoincrement" json:"id"`
	OrderCode          string      `bun:"order_code,notnull,unique:orders_code_line" json:"orderCode"`
	LineNo             int         `bun:"line_no,notnull,unique:orders_code_line" json:"lineNo"`
	ProductName        string      `bun:"product_name,notnull" json:"productName"`
	VariantName        string      `bun:"variant_name" json:"variantName"`
	Quantity           int         `bun:"quantity,notnull" json:"quantity"`
	Price              int64       `bun:"price,notnull" json:"price"` // unit price
	PaymentMethod      string      `bun:"payment_method,notnull" json:"paymentMethod"`
	PaymentFee         int64       `bun:"payment_fee,notnull" json:"paymentFee"`
	PaymentAccountInfo string      `bun:"payment_account_info" json:"paymentAccountInfo,omitempty"`
	DiscountCode       string      `bun:"discount_code" json:"discountCode,omitempty"`
	DiscountAmount     int64       `bun:"discount_amount,notnull" json:"discountAmount"`
	UniqueCode         int         `bun:"unique_code,notnull" json:"uniqueCode"`
	TotalPrice         int64       `bun:"total_price,notnull" json:"totalPrice"`
	BuyerMessage       string      `bun:"buyer_message" json:"buyerMessage,omitempty"`
	Status             OrderStatus `bun:"status,notnull" json:"status"`
	CreatedAt          time.Time   `bun:"created_at,notnull" json:"createdAt"`
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}
