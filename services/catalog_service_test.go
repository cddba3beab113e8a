package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"digistore_server/database"
	"digistore_server/lib"
	"digistore_server/structs"
	"digistore_server/structs/tables"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCatalog creates two categories with three products, one of them hidden.
func seedCatalog(t *testing.T, sm *ServiceManager) (streaming, design *tables.Category) {
	t.Helper()
	ctx := context.Background()

	streaming, err := sm.CategoryService.Create(ctx, &structs.CategoryRequest{Name: "Streaming"})
	require.NoError(t, err)
	design, err = sm.CategoryService.Create(ctx, &structs.CategoryRequest{Name: "Design Tools"})
	require.NoError(t, err)

	for _, req := range []structs.ProductRequest{
		{Name: "Netflix Premium", CategoryID: streaming.ID, Variants: []structs.VariantRequest{{Name: "1 Bulan", Price: 30000}}},
		{Name: "Spotify Family", CategoryID: streaming.ID, IsActive: ptr(false), Variants: []structs.VariantRequest{{Name: "1 Bulan", Price: 20000}}},
		{Name: "Canva Pro", CategoryID: design.ID, Variants: []structs.VariantRequest{{Name: "1 Tahun", Price: 45000}}},
	} {
		_, err := sm.ProductService.Create(ctx, &req)
		require.NoError(t, err)
	}
	return streaming, design
}

func productNames(products []tables.Product) []string {
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	return names
}

func TestProductListFilters(t *testing.T) {
	sm := newTestServices(t)
	ctx := context.Background()

	streaming, design := seedCatalog(t, sm)
	assert.Equal(t, "design-tools", design.Slug)

	tests := []struct {
		name string
		opts structs.ProductListOptions
		want []string
	}{
		{"storefront", structs.ProductListOptions{OnlyActive: true}, []string{"Canva Pro", "Netflix Premium"}},
		{"all keyword", structs.ProductListOptions{OnlyActive: true, CategorySlug: "all"}, []string{"Canva Pro", "Netflix Premium"}},
		{"category slug", structs.ProductListOptions{OnlyActive: true, CategorySlug: streaming.Slug}, []string{"Netflix Premium"}},
		{"dashboard sees hidden", structs.ProductListOptions{CategorySlug: streaming.Slug}, []string{"Spotify Family", "Netflix Premium"}},
		{"search", structs.ProductListOptions{Search: "PRO"}, []string{"Canva Pro"}},
		{"unknown category", structs.ProductListOptions{OnlyActive: true, CategorySlug: "games"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := sm.ProductService.List(ctx, &tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, productNames(products))
		})
	}

	products, err := sm.ProductService.List(ctx, &structs.ProductListOptions{OnlyActive: true, CategorySlug: design.Slug})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Design Tools", products[0].CategoryName())
	require.Len(t, products[0].Variants, 1)
	assert.Equal(t, int64(45000), products[0].Variants[0].Price)
}

func TestProductGetBySlugOrID(t *testing.T) {
	sm := newTestServices(t)
	ctx := context.Background()
	seedCatalog(t, sm)

	bySlug, err := sm.ProductService.GetBySlug(ctx, "netflix-premium")
	require.NoError(t, err)
	assert.Equal(t, "Netflix Premium", bySlug.Name)

	byID, err := sm.ProductService.GetBySlug(ctx, strconv.FormatInt(bySlug.ID, 10))
	require.NoError(t, err)
	assert.Equal(t, bySlug.ID, byID.ID)

	_, err = sm.ProductService.GetBySlug(ctx, "spotify-family")
	assert.ErrorIs(t, err, lib.ErrNotFound)

	_, err = sm.ProductService.GetBySlug(ctx, "9999")
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestProductUpdateReplacesVariants(t *testing.T) {
	sm := newTestServices(t)
	db := sm.ProductService.db
	ctx := context.Background()

	streaming, design := seedCatalog(t, sm)

	product, err := sm.ProductService.Create(ctx, &structs.ProductRequest{
		Name:       "YouTube Premium",
		CategoryID: streaming.ID,
		Variants: []structs.VariantRequest{
			{Name: "1 Bulan", Price: 15000},
			{Name: "3 Bulan", Price: 40000},
		},
	})
	require.NoError(t, err)
	require.Len(t, product.Variants, 2)

	updated, err := sm.ProductService.Update(ctx, product.ID, &structs.ProductRequest{
		Name:       "YouTube Premium Family",
		Slug:       "yt-family",
		CategoryID: design.ID,
		Variants: []structs.VariantRequest{
			{Name: "6 Bulan", Price: 75000, OriginalPrice: ptr(int64(90000))},
			{Name: "12 Bulan", Price: 140000, IsActive: ptr(false)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "yt-family", updated.Slug)
	assert.Equal(t, design.ID, updated.CategoryID)
	require.Len(t, updated.Variants, 2)
	assert.Equal(t, "6 Bulan", updated.Variants[0].Name)
	assert.Equal(t, int64(90000), *updated.Variants[0].OriginalPrice)

	count, err := database.Query[tables.Variant](db).Where("product_id", product.ID).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	storefront, err := sm.ProductService.GetBySlug(ctx, "yt-family")
	require.NoError(t, err)
	require.Len(t, storefront.Variants, 1)
	assert.Equal(t, "6 Bulan", storefront.Variants[0].Name)

	_, err = sm.ProductService.Update(ctx, product.ID, &structs.ProductRequest{Name: "X", CategoryID: 999})
	var ve *lib.ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = sm.ProductService.Update(ctx, product.ID, &structs.ProductRequest{Name: "X", Slug: "canva-pro", CategoryID: design.ID})
	assert.ErrorIs(t, err, lib.ErrConflict)

	count, err = database.Query[tables.Variant](db).Where("product_id", product.ID).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, sm.ProductService.Delete(ctx, product.ID))
	count, err = database.Query[tables.Variant](db).Where("product_id", product.ID).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestProductSlugFromName(t *testing.T) {
	sm := newTestServices(t)
	ctx := context.Background()
	streaming, _ := seedCatalog(t, sm)

	product, err := sm.ProductService.Create(ctx, &structs.ProductRequest{Name: "Kopi Café Crème", CategoryID: streaming.ID})
	require.NoError(t, err)
	assert.Equal(t, "kopi-cafe-creme", product.Slug)
	assert.Empty(t, product.Variants)

	_, err = sm.ProductService.Create(ctx, &structs.ProductRequest{Name: "!!!", CategoryID: streaming.ID})
	var ve *lib.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "slug", ve.Errors[0].Field)
}

func TestFlashSaleListRunning(t *testing.T) {
	sm := newTestServices(t)
	ctx := context.Background()
	streaming, _ := seedCatalog(t, sm)

	product, err := sm.ProductService.Create(ctx, &structs.ProductRequest{
		Name:       "Disney Hotstar",
		CategoryID: streaming.ID,
		Variants: []structs.VariantRequest{
			{Name: "1 Bulan", Price: 30000},
			{Name: "1 Tahun", Price: 250000},
			{Name: "Promo", Price: 10000, IsActive: ptr(false)},
		},
	})
	require.NoError(t, err)
	yearly := product.Variants[1].ID

	now := time.Now().UTC()
	for _, req := range []structs.FlashSaleRequest{
		{Title: "Kilat", ProductID: product.ID, DiscountPercent: 10, StartDate: now.Add(-time.Hour), EndDate: now.Add(time.Hour)},
		{Title: "Tahunan", ProductID: product.ID, VariantID: &yearly, DiscountPercent: 20, StartDate: now.Add(-time.Hour), EndDate: now.Add(2 * time.Hour)},
		{Title: "Lewat", ProductID: product.ID, DiscountPercent: 50, StartDate: now.Add(-3 * time.Hour), EndDate: now.Add(-2 * time.Hour)},
		{Title: "Nanti", ProductID: product.ID, DiscountPercent: 50, StartDate: now.Add(time.Hour), EndDate: now.Add(2 * time.Hour)},
		{Title: "Mati", ProductID: product.ID, DiscountPercent: 50, StartDate: now.Add(-time.Hour), EndDate: now.Add(time.Hour), IsActive: ptr(false)},
	} {
		_, err := sm.FlashSaleService.Create(ctx, &req)
		require.NoError(t, err)
	}

	running, err := sm.FlashSaleService.ListRunning(ctx)
	require.NoError(t, err)
	require.Len(t, running, 2)

	assert.Equal(t, "Kilat", running[0].Title)
	assert.Equal(t, int64(30000), running[0].OriginalPrice)
	assert.Equal(t, int64(27000), running[0].DiscountedPrice)
	require.NotNil(t, running[0].Product)
	assert.Equal(t, "Disney Hotstar", running[0].Product.Name)

	assert.Equal(t, "Tahunan", running[1].Title)
	require.NotNil(t, running[1].Variant)
	assert.Equal(t, int64(250000), running[1].OriginalPrice)
	assert.Equal(t, int64(200000), running[1].DiscountedPrice)

	all, err := sm.FlashSaleService.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	other, err := sm.ProductService.GetBySlug(ctx, "netflix-premium")
	require.NoError(t, err)
	_, err = sm.FlashSaleService.Create(ctx, &structs.FlashSaleRequest{
		Title: "Salah", ProductID: other.ID, VariantID: &yearly, DiscountPercent: 10,
		StartDate: now, EndDate: now.Add(time.Hour),
	})
	var ve *lib.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestArticlePublishedFilter(t *testing.T) {
	sm := newTestServices(t)
	ctx := context.Background()

	published, err := sm.ArticleService.Create(ctx, &structs.ArticleRequest{Title: "Cara Order", Content: "...", IsPublished: true})
	require.NoError(t, err)
	draft, err := sm.ArticleService.Create(ctx, &structs.ArticleRequest{Title: "Draft Promo", Content: "..."})
	require.NoError(t, err)

	articles, err := sm.ArticleService.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, published.ID, articles[0].ID)

	got, err := sm.ArticleService.GetPublished(ctx, "cara-order")
	require.NoError(t, err)
	assert.Equal(t, "Cara Order", got.Title)

	_, err = sm.ArticleService.GetPublished(ctx, draft.Slug)
	assert.ErrorIs(t, err, lib.ErrNotFound)

	all, err := sm.ArticleService.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestFindActivePaymentMethod(t *testing.T) {
	sm := newTestServices(t)
	db := sm.PaymentService.db
	ctx := context.Background()

	qris, err := sm.PaymentService.Create(ctx, &structs.PaymentMethodRequest{Name: " QRIS ", FeeType: "percent", Fees: 0.7})
	require.NoError(t, err)
	assert.Equal(t, "QRIS", qris.Name)
	assert.Equal(t, "IDR", qris.Currency)
	_, err = sm.PaymentService.Create(ctx, &structs.PaymentMethodRequest{Name: "OVO", Fees: 1000, IsActive: ptr(false)})
	require.NoError(t, err)

	pm, err := sm.PaymentService.FindActiveByName(ctx, db, " qris ")
	require.NoError(t, err)
	require.NotNil(t, pm)
	assert.Equal(t, tables.FeeTypePercent, pm.FeeType)
	assert.Equal(t, int64(700), PaymentFee(pm, 100000))

	pm, err = sm.PaymentService.FindActiveByName(ctx, db, "ovo")
	require.NoError(t, err)
	assert.Nil(t, pm)

	pm, err = sm.PaymentService.FindActiveByName(ctx, db, "")
	require.NoError(t, err)
	assert.Nil(t, pm)

	receipt, err := sm.OrderService.Create(ctx, &structs.OrderRequest{
		ProductName: "Canva Pro", Quantity: 1, Price: 100000, PaymentMethod: "Qris", PaymentFee: 5000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(700), receipt.PaymentFee)
	assert.Equal(t, int64(100700)+int64(receipt.UniqueCode), receipt.TotalPrice)

	active, err := sm.PaymentService.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, qris.ID, active[0].ID)
}
