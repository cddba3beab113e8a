package structs

// ProductListOptions filters the catalog listing.
type ProductListOptions struct {
	CategorySlug string
	Search       string
	OnlyActive   bool
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Slug string `json:"slug" validate:"omitempty,max=120"`
}

type VariantRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	Price         int64  `json:"price" validate:"gte=0"`
	OriginalPrice *int64 `json:"originalPrice" validate:"omitempty,gte=0"`
	IsWarranty    bool   `json:"isWarranty"`
	IsActive      *bool  `json:"isActive"`
}

type ProductRequest struct {
	Name        string           `json:"name" validate:"required,max=200"`
	Slug        string           `json:"slug" validate:"omitempty,max=220"`
	Description string           `json:"description"`
	Image       string           `json:"image" validate:"omitempty,max=500"`
	Badge       string           `json:"badge" validate:"omitempty,max=50"`
	IsActive    *bool            `json:"isActive"`
	CategoryID  int64            `json:"categoryId" validate:"required,gt=0"`
	Variants    []VariantRequest `json:"variants" validate:"dive"`
}

type PaymentMethodRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Icon        string  `json:"icon" validate:"omitempty,max=200"`
	AccountInfo string  `json:"accountInfo" validate:"omitempty,max=500"`
	FeeType     string  `json:"feeType" validate:"omitempty,oneof=fixed percent"`
	Fees        float64 `json:"fees" validate:"gte=0"`
	Currency    string  `json:"currency" validate:"omitempty,len=3"`
	IsActive    *bool   `json:"isActive"`
}
