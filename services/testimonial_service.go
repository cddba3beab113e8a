package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"digistore_server/database"
	"digistore_server/lib"
	"digistore_server/structs"
	"digistore_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

const (
	CodeTestimonialExists = "TESTIMONIAL_EXISTS"

	publicTestimonialLimit = 20
	defaultRating          = 5
)

type TestimonialService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewTestimonialService(logger *gecho.Logger, db *database.DB) *TestimonialService {
	return &TestimonialService{
		logger: logger,
		db:     db,
	}
}

// ListApproved returns the newest approved testimonials.
func (ts *TestimonialService) ListApproved(ctx context.Context) ([]tables.Testimonial, error) {
	testimonials, err := database.Query[tables.Testimonial](ts.db).
		Where("is_approved", true).
		OrderBy("created_at", database.DESC).
		Limit(publicTestimonialLimit).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	return testimonials, nil
}

func (ts *TestimonialService) List(ctx context.Context) ([]tables.Testimonial, error) {
	testimonials, err := database.Query[tables.Testimonial](ts.db).
		OrderBy("created_at", database.DESC).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	return testimonials, nil
}

func (ts *TestimonialService) Get(ctx context.Context, id int64) (*tables.Testimonial, error) {
	return findByID[tables.Testimonial](ctx, ts.db, "testimonial", id)
}

// Submit stores a buyer testimonial for an existing order. It waits for
// approval before it shows up publicly.
func (ts *TestimonialService) Submit(ctx context.Context, req *structs.TestimonialRequest) (*tables.Testimonial, error) {
	code := strings.TrimSpace(req.OrderCode)

	order, err := database.Query[tables.Order](ts.db).
		Where("order_code", code).
		OrderBy("line_no", database.ASC).
		First(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up order: %w", err)
	}
	if order == nil {
		return nil, &lib.NotFoundError{Resource: "order", Key: code, Message: "Kode pemesanan tidak valid"}
	}

	exists, err := database.Query[tables.Testimonial](ts.db).Where("order_code", code).Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check testimonial: %w", err)
	}
	if exists {
		return nil, lib.NewRuleError(CodeTestimonialExists, "Testimoni untuk pesanan ini sudah ada")
	}

	rating := req.Rating
	if rating == 0 {
		rating = defaultRating
	}

	testimonial := &tables.Testimonial{
		OrderCode:   code,
		Name:        req.Name,
		Content:     req.Content,
		Rating:      rating,
		ProductName: order.ProductName,
		IsApproved:  false,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := database.Create(ts.db, ctx, testimonial); err != nil {
		// lost a race with a concurrent submission for the same order
		if errors.Is(lib.MapDBError(err), lib.ErrConflict) {
			return nil, lib.NewRuleError(CodeTestimonialExists, "Testimoni untuk pesanan ini sudah ada")
		}
		return nil, fmt.Errorf("failed to create testimonial: %w", err)
	}

	ts.logger.Info("Testimonial submitted", gecho.Field("order_code", code))
	return testimonial, nil
}

// Update edits or approves a testimonial. Nil fields are left untouched.
func (ts *TestimonialService) Update(ctx context.Context, id int64, req *structs.TestimonialUpdateRequest) (*tables.Testimonial, error) {
	testimonial, err := ts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		testimonial.Name = *req.Name
	}
	if req.Content != nil {
		testimonial.Content = *req.Content
	}
	if req.Rating != nil {
		testimonial.Rating = *req.Rating
	}
	if req.IsApproved != nil {
		testimonial.IsApproved = *req.IsApproved
	}

	if _, err := database.Query[tables.Testimonial](ts.db).Where("id", id).Update(ctx, testimonial); err != nil {
		return nil, fmt.Errorf("failed to update testimonial: %w", err)
	}
	return testimonial, nil
}

func (ts *TestimonialService) Delete(ctx context.Context, id int64) error {
	return deleteByID[tables.Testimonial](ctx, ts.db, "testimonial", id)
}
