package services

import (
	"context"
	"testing"
	"time"

	"digistore_server/database"
	"digistore_server/lib"
	"digistore_server/structs"
	"digistore_server/structs/tables"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryDeleteBlockedWhileInUse(t *testing.T) {
	sm := newTestServices(t)
	ctx := context.Background()

	category, err := sm.CategoryService.Create(ctx, &structs.CategoryRequest{Name: "Streaming Video"})
	require.NoError(t, err)
	assert.Equal(t, "streaming-video", category.Slug)

	now := time.Now().UTC()
	product := &tables.Product{Name: "Netflix", Slug: "netflix", IsActive: true, CategoryID: category.ID, CreatedAt: now, UpdatedAt: now}
	_, err = database.Create(sm.CategoryService.db, ctx, product)
	require.NoError(t, err)

	err = sm.CategoryService.Delete(ctx, category.ID)
	assert.Equal(t, CodeCategoryInUse, ruleCode(t, err))

	_, err = database.DeleteByID[tables.Product](sm.CategoryService.db, ctx, product.ID)
	require.NoError(t, err)

	require.NoError(t, sm.CategoryService.Delete(ctx, category.ID))
	assert.ErrorIs(t, sm.CategoryService.Delete(ctx, category.ID), lib.ErrNotFound)
}

func TestCategoryDuplicateSlug(t *testing.T) {
	sm := newTestServices(t)
	ctx := context.Background()

	_, err := sm.CategoryService.Create(ctx, &structs.CategoryRequest{Name: "Musik"})
	require.NoError(t, err)

	_, err = sm.CategoryService.Create(ctx, &structs.CategoryRequest{Name: "Musik Lain", Slug: "musik"})
	assert.ErrorIs(t, err, lib.ErrConflict)
}

func TestSubmitTestimonial(t *testing.T) {
	sm := newTestServices(t)
	ctx := context.Background()

	_, err := sm.TestimonialService.Submit(ctx, &structs.TestimonialRequest{OrderCode: "ORD-NOPE00", Name: "Budi", Content: "Mantap"})
	assert.ErrorIs(t, err, lib.ErrNotFound)

	receipt, err := sm.OrderService.Create(ctx, &structs.OrderRequest{ProductName: "Canva Pro", Quantity: 1, Price: 45000, PaymentMethod: "Dana"})
	require.NoError(t, err)

	testimonial, err := sm.TestimonialService.Submit(ctx, &structs.TestimonialRequest{OrderCode: receipt.OrderCode, Name: "Budi", Content: "Mantap"})
	require.NoError(t, err)
	assert.False(t, testimonial.IsApproved)
	assert.Equal(t, 5, testimonial.Rating)
	assert.Equal(t, "Canva Pro", testimonial.ProductName)

	_, err = sm.TestimonialService.Submit(ctx, &structs.TestimonialRequest{OrderCode: receipt.OrderCode, Name: "Budi", Content: "Lagi"})
	assert.Equal(t, CodeTestimonialExists, ruleCode(t, err))

	approved, err := sm.TestimonialService.ListApproved(ctx)
	require.NoError(t, err)
	assert.Empty(t, approved)

	_, err = sm.TestimonialService.Update(ctx, testimonial.ID, &structs.TestimonialUpdateRequest{IsApproved: ptr(true)})
	require.NoError(t, err)

	approved, err = sm.TestimonialService.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "Mantap", approved[0].Content)
}

func TestSettingsUpdate(t *testing.T) {
	sm := newTestServices(t)
	ctx := context.Background()

	settings, err := sm.SettingsService.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, structs.SiteModeLive, settings.SiteMode)

	n, err := sm.SettingsService.EnsureDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(settings.ToMap()), n)

	name := "Toko Baru"
	settings, err = sm.SettingsService.Update(ctx, &structs.SettingsPatch{StoreName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Toko Baru", settings.StoreName)

	n, err = sm.SettingsService.EnsureDefaults(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	settings, err = sm.SettingsService.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Toko Baru", settings.StoreName)

	bad := "minggu depan"
	_, err = sm.SettingsService.Update(ctx, &structs.SettingsPatch{ComingSoonDate: &bad})
	var ve *lib.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestValidateDiscountDoesNotConsume(t *testing.T) {
	sm := newTestServices(t)
	ctx := context.Background()

	seedDiscount(t, sm.DiscountService.db, tables.Discount{Code: "PERSEN", Name: "Persen", Type: tables.DiscountTypePercent, Value: 10, UsageLimit: ptr(1)})

	for range 2 {
		quote, err := sm.DiscountService.Validate(ctx, &structs.ValidateDiscountRequest{Code: "persen", Subtotal: 90037})
		require.NoError(t, err)
		assert.Equal(t, int64(9003), quote.DiscountAmount)
	}

	d, err := database.Query[tables.Discount](sm.DiscountService.db).Where("code", "PERSEN").First(ctx)
	require.NoError(t, err)
	assert.Zero(t, d.UsageCount)
}

func TestValidateDiscountQuotesAppliedAmount(t *testing.T) {
	sm := newTestServices(t)
	ctx := context.Background()

	seedDiscount(t, sm.DiscountService.db, tables.Discount{Code: "BESAR", Name: "Besar", Type: tables.DiscountTypeFixed, Value: 50000})

	quote, err := sm.DiscountService.Validate(ctx, &structs.ValidateDiscountRequest{Code: "besar", Subtotal: 30000})
	require.NoError(t, err)
	assert.Equal(t, int64(30000), quote.DiscountAmount)

	receipt, err := sm.OrderService.Create(ctx, &structs.OrderRequest{
		ProductName: "Netflix", Quantity: 1, Price: 30000, PaymentMethod: "Dana", DiscountCode: "BESAR",
	})
	require.NoError(t, err)
	assert.Equal(t, quote.DiscountAmount, receipt.DiscountAmount)
	assert.Equal(t, int64(receipt.UniqueCode), receipt.TotalPrice)
}
