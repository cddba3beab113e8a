package structs

type OrderRequest struct {
	ProductID      *int64 `json:"productId" validate:"omitempty,gt=0"`
	ProductName    string `json:"productName" validate:"required,max=200"`
	VariantName    string `json:"variantName" validate:"omitempty,max=100"`
	Quantity       int    `json:"quantity" validate:"required,gte=1,lte=1000"`
	Price          int64  `json:"price" validate:"gte=0,lte=1000000000000"`
	PaymentMethod  string `json:"paymentMethod" validate:"required,max=100"`
	PaymentFee     int64  `json:"paymentFee" validate:"gte=0,lte=1000000000000"`
	DiscountCode   string `json:"discountCode" validate:"omitempty,max=50"`
	DiscountAmount int64  `json:"discountAmount"` // ignored, the server recomputes it
	BuyerMessage   string `json:"buyerMessage" validate:"omitempty,max=1000"`
}

type CartItem struct {
	ProductName string `json:"productName" validate:"required,max=200"`
	VariantName string `json:"variantName" validate:"omitempty,max=100"`
	Quantity    int    `json:"quantity" validate:"required,gte=1,lte=1000"`
	Price       int64  `json:"price" validate:"gte=0,lte=1000000000000"`
}

type CartOrderRequest struct {
	Items         []CartItem `json:"items" validate:"required,min=1,max=50,dive"`
	PaymentMethod string     `json:"paymentMethod" validate:"required,max=100"`
	PaymentFee    int64      `json:"paymentFee" validate:"gte=0,lte=1000000000000"`
	UniqueCode    int        `json:"uniqueCode" validate:"omitempty,gte=1,lte=999"`
	BuyerMessage  string     `json:"buyerMessage" validate:"omitempty,max=1000"`
}

// OrderReceipt is returned to the buyer after checkout.
type OrderReceipt struct {
	Success        bool   `json:"success"`
	OrderCode      string `json:"orderCode"`
	ItemCount      int    `json:"itemCount"`
	UniqueCode     int    `json:"uniqueCode"`
	Subtotal       int64  `json:"subtotal"`
	PaymentFee     int64  `json:"paymentFee"`
	DiscountAmount int64  `json:"discountAmount"`
	TotalPrice     int64  `json:"totalPrice"`
	Message        string `json:"message"`
	WhatsAppURL    string `json:"whatsappUrl"`
}

type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed processing shipped completed cancelled"`
}

type OrderListOptions struct {
	Status   string
	Search   string // order code or product name
	Page     int
	PageSize int
}

type RevenueSummary struct {
	Total int64 `json:"total"`
	Today int64 `json:"today"`
	Week  int64 `json:"week"`
	Month int64 `json:"month"`
}

type ProductSales struct {
	ProductName string `json:"productName"`
	Quantity    int64  `json:"quantity"`
	Revenue     int64  `json:"revenue"`
}

type PaymentStats struct {
	PaymentMethod string `json:"paymentMethod"`
	Count         int64  `json:"count"`
	Revenue       int64  `json:"revenue"`
}

type OrderAnalytics struct {
	Revenue      RevenueSummary   `json:"revenue"`
	StatusCounts map[string]int64 `json:"statusCounts"`
	TotalOrders  int64            `json:"totalOrders"`
	TopProducts  []ProductSales   `json:"topProducts"`
	PaymentStats []PaymentStats   `json:"paymentStats"`
}
