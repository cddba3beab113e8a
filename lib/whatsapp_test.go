package lib

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "90.037", FormatNumber(90037))
	assert.Equal(t, "Rp 1.250.000", FormatRupiah(1250000))
	assert.Equal(t, "Rp 0", FormatRupiah(0))
}

func TestRenderMessageDefaultTemplate(t *testing.T) {
	msg := RenderMessage("", OrderMessage{
		OrderCode:  "ORD-AB12CD",
		Product:    "Spotify Premium",
		Variant:    "1 Bulan",
		Quantity:   2,
		Price:      45000,
		UniqueCode: 37,
		Total:      90037,
		Payment:    "BCA",
	})

	assert.Contains(t, msg, "*KODE PEMESANAN: ORD-AB12CD*")
	assert.Contains(t, msg, "📦 Produk: Spotify Premium")
	assert.Contains(t, msg, "🔢 Jumlah: 2")
	assert.Contains(t, msg, "💰 Harga: Rp 45.000")
	assert.Contains(t, msg, "🎲 Kode Unik: +Rp 37")
	assert.Contains(t, msg, "💳 Total: Rp 90.037")
	assert.NotContains(t, msg, "{")
	assert.NotContains(t, msg, "Catatan")
}

func TestRenderMessageCustomTemplate(t *testing.T) {
	tmpl := "{store_name}: {product} x{quantity} - {discount_code} -{discount} +{fee} = {total} ({product})"

	msg := RenderMessage(tmpl, OrderMessage{
		StoreName:    "Toko",
		Product:      "Canva",
		Quantity:     1,
		Fee:          2500,
		Discount:     10000,
		DiscountCode: "HEMAT",
		Total:        42500,
		Note:         "  tolong cepat  ",
	})

	assert.Equal(t, "Toko: Canva x1 - HEMAT -10.000 +2.500 = 42.500 (Canva)\n\n💬 Catatan: tolong cepat", msg)
}

func TestRenderCartMessage(t *testing.T) {
	msg := RenderCartMessage(CartMessage{
		StoreName:   "Digistore",
		BookingCode: "TFQ-20250307-0042",
		Lines: []CartLine{
			{Product: "Netflix", Variant: "1 Bulan", Quantity: 1, Amount: 50000},
			{Product: "Canva", Quantity: 2, Amount: 20000},
		},
		Subtotal:   70000,
		UniqueCode: 12,
		Total:      70012,
		Payment:    "DANA",
	})

	assert.True(t, strings.HasPrefix(msg, "Halo Digistore! 👋"))
	assert.Contains(t, msg, "*KODE BOOKING: TFQ-20250307-0042*")
	assert.Contains(t, msg, "1. *Netflix*\n   📦 Varian: 1 Bulan\n")
	assert.Contains(t, msg, "2. *Canva*\n   🔢 Jumlah: 2\n")
	assert.Contains(t, msg, "*TOTAL BAYAR: Rp 70.012*")
	assert.NotContains(t, msg, "Biaya")
}

func TestWhatsAppURL(t *testing.T) {
	link := WhatsAppURL("+62 812-3456-7890", "Halo kak & admin\nBaris 2")

	require.True(t, strings.HasPrefix(link, "https://wa.me/6281234567890?text="))
	assert.NotContains(t, link, "+")

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Halo kak & admin\nBaris 2", parsed.Query().Get("text"))
}
