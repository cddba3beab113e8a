package structs

import "time"

type ValidateDiscountRequest struct {
	Code      string `json:"code" validate:"required,max=50"`
	ProductID *int64 `json:"productId" validate:"omitempty,gt=0"`
	Subtotal  int64  `json:"subtotal" validate:"gte=0"`
}

type DiscountQuote struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	Value          int64  `json:"value"`
	DiscountAmount int64  `json:"discountAmount"`
}

type DiscountRequest struct {
	Code        string     `json:"code" validate:"required,min=3,max=50"`
	Name        string     `json:"name" validate:"required,max=100"`
	Type        string     `json:"type" validate:"required,oneof=percent fixed"`
	Value       int64      `json:"value" validate:"gt=0"`
	MaxDiscount *int64     `json:"maxDiscount" validate:"omitempty,gt=0"`
	MinPurchase *int64     `json:"minPurchase" validate:"omitempty,gte=0"`
	ApplyTo     string     `json:"applyTo" validate:"omitempty,oneof=all products"`
	ProductIDs  []int64    `json:"productIds" validate:"dive,gt=0"`
	UsageLimit  *int       `json:"usageLimit" validate:"omitempty,gt=0"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	IsActive    *bool      `json:"isActive"`
}

type FlashSaleRequest struct {
	Title           string    `json:"title" validate:"required,max=200"`
	Description     string    `json:"description"`
	ProductID       int64     `json:"productId" validate:"required,gt=0"`
	VariantID       *int64    `json:"variantId" validate:"omitempty,gt=0"`
	DiscountPercent float64   `json:"discountPercent" validate:"gt=0,lte=100"`
	StartDate       time.Time `json:"startDate" validate:"required"`
	EndDate         time.Time `json:"endDate" validate:"required,gtfield=StartDate"`
	IsActive        *bool     `json:"isActive"`
}
