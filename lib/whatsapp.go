package lib

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const DefaultMessageTemplate = "Halo kak, saya mau pesan:\n\n" +
	"🎫 *KODE PEMESANAN: {order_code}*\n\n" +
	"📦 Produk: {product}\n" +
	"📋 Varian: {variant}\n" +
	"🔢 Jumlah: {quantity}\n" +
	"💰 Harga: Rp {price}\n" +
	"🎲 Kode Unik: +Rp {unique_code}\n" +
	"💳 Total: Rp {total}\n" +
	"📱 Pembayaran: {payment}"

// OrderMessage holds the values substituted into a checkout template.
type OrderMessage struct {
	StoreName    string
	OrderCode    string
	Product      string
	Variant      string
	Quantity     int
	Price        int64
	Fee          int64
	Discount     int64
	DiscountCode string
	UniqueCode   int
	Total        int64
	Payment      string
	Note         string
}

// RenderMessage replaces every placeholder occurrence in template.
// An empty template falls back to DefaultMessageTemplate.
func RenderMessage(template string, m OrderMessage) string {
	if strings.TrimSpace(template) == "" {
		template = DefaultMessageTemplate
	}

	r := strings.NewReplacer(
		"{product}", m.Product,
		"{variant}", m.Variant,
		"{quantity}", strconv.Itoa(m.Quantity),
		"{price}", FormatNumber(m.Price),
		"{unique_code}", strconv.Itoa(m.UniqueCode),
		"{total}", FormatNumber(m.Total),
		"{payment}", m.Payment,
		"{order_code}", m.OrderCode,
		"{fee}", FormatNumber(m.Fee),
		"{discount}", FormatNumber(m.Discount),
		"{discount_code}", m.DiscountCode,
		"{store_name}", m.StoreName,
	)

	return appendNote(r.Replace(template), m.Note)
}

// CartLine is one item of a combined cart message.
type CartLine struct {
	Product  string
	Variant  string
	Quantity int
	Amount   int64
}

// CartMessage holds the values of a multi-item checkout.
type CartMessage struct {
	StoreName   string
	BookingCode string
	Lines       []CartLine
	Subtotal    int64
	Fee         int64
	UniqueCode  int
	Total       int64
	Payment     string
	Note        string
}

// RenderCartMessage builds the single message sent for a whole cart.
func RenderCartMessage(m CartMessage) string {
	const rule = "━━━━━━━━━━━━━━━\n"

	var sb strings.Builder
	greeting := "Halo!"
	if m.StoreName != "" {
		greeting = "Halo " + m.StoreName + "!"
	}
	sb.WriteString(greeting + " 👋\n\n")
	fmt.Fprintf(&sb, "📋 *KODE BOOKING: %s*\n\n", m.BookingCode)
	sb.WriteString("Saya mau pesan:\n")
	sb.WriteString(rule)

	for i, line := range m.Lines {
		fmt.Fprintf(&sb, "%d. *%s*\n", i+1, line.Product)
		if line.Variant != "" {
			fmt.Fprintf(&sb, "   📦 Varian: %s\n", line.Variant)
		}
		fmt.Fprintf(&sb, "   🔢 Jumlah: %d\n", line.Quantity)
		fmt.Fprintf(&sb, "   💰 Harga: %s\n\n", FormatRupiah(line.Amount))
	}

	sb.WriteString(rule)
	fmt.Fprintf(&sb, "💵 Subtotal: %s\n", FormatRupiah(m.Subtotal))
	if m.Fee > 0 {
		fmt.Fprintf(&sb, "🧾 Biaya: +%s\n", FormatRupiah(m.Fee))
	}
	fmt.Fprintf(&sb, "🔑 Kode Unik: +Rp %d\n", m.UniqueCode)
	fmt.Fprintf(&sb, "💳 Pembayaran: %s\n", m.Payment)
	sb.WriteString(rule)
	fmt.Fprintf(&sb, "💰 *TOTAL BAYAR: %s*\n\n", FormatRupiah(m.Total))
	sb.WriteString("Mohon diproses ya, terima kasih! 🙏")

	return appendNote(sb.String(), m.Note)
}

func appendNote(message, note string) string {
	if note = strings.TrimSpace(note); note != "" {
		message += "\n\n💬 Catatan: " + note
	}
	return message
}

// WhatsAppURL builds the wa.me deep link with the message as prefilled text.
func WhatsAppURL(number, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)

	// wa.me does not decode '+' as a space
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + digits + "?text=" + text
}
