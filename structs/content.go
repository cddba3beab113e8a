package structs

type TestimonialRequest struct {
	OrderCode string `json:"orderCode" validate:"required,max=50"`
	Name      string `json:"name" validate:"required,max=100"`
	Content   string `json:"content" validate:"required,max=2000"`
	Rating    int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

type TestimonialUpdateRequest struct {
	Name       *string `json:"name" validate:"omitempty,max=100"`
	Content    *string `json:"content" validate:"omitempty,max=2000"`
	Rating     *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	IsApproved *bool   `json:"isApproved"`
}

type ArticleRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Slug        string `json:"slug" validate:"omitempty,max=220"`
	Content     string `json:"content"`
	Image       string `json:"image" validate:"omitempty,max=500"`
	IsPublished bool   `json:"isPublished"`
}

type UploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}
