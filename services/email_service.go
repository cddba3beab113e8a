package services

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"digistore_server/lib"
	"digistore_server/structs"
	"digistore_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

const notifyTimeout = 15 * time.Second

// EmailService notifies the merchant about new orders through Resend.
// It is a no-op unless an API key, sender and merchant address are configured.
type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	es := &EmailService{
		logger: logger,
		cfg:    cfg,
	}
	if cfg.Email != nil && cfg.Email.APIKey != "" {
		es.client = resend.NewClient(cfg.Email.APIKey)
	}
	return es
}

func (es *EmailService) Enabled() bool {
	return es.client != nil && es.cfg.Email.From != "" && es.cfg.Email.MerchantEmail != ""
}

func (es *EmailService) SendEmail(ctx context.Context, to []string, subject string, body string) error {
	if es.client == nil {
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	if _, err := es.client.Emails.SendWithContext(ctx, params); err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// NotifyNewOrder emails the merchant in the background, detached from the
// request that created the order. Failures are logged only.
func (es *EmailService) NotifyNewOrder(lines []tables.Order) {
	if !es.Enabled() || len(lines) == 0 {
		return
	}

	go func() {
		defer func() {
			if p := recover(); p != nil {
				es.logger.Error("Recovered from panic while sending order email", gecho.Field("panic", p))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		subject := fmt.Sprintf("Pesanan baru %s - %s", lines[0].OrderCode, lib.FormatRupiah(lines[0].TotalPrice))
		if err := es.SendEmail(ctx, []string{es.cfg.Email.MerchantEmail}, subject, orderEmailBody(lines)); err != nil {
			return
		}
		es.logger.Info("Order notification sent", gecho.Field("order_code", lines[0].OrderCode))
	}()
}

func orderEmailBody(lines []tables.Order) string {
	first := lines[0]

	var items strings.Builder
	for _, line := range lines {
		name := line.ProductName
		if line.VariantName != "" {
			name += " (" + line.VariantName + ")"
		}
		fmt.Fprintf(&items, "<li>%dx %s - %s</li>",
			line.Quantity, html.EscapeString(name), lib.FormatRupiah(line.Price*int64(line.Quantity)))
	}

	var extra strings.Builder
	if first.PaymentFee > 0 {
		fmt.Fprintf(&extra, "<p>Biaya pembayaran: %s</p>", lib.FormatRupiah(first.PaymentFee))
	}
	if first.DiscountCode != "" {
		fmt.Fprintf(&extra, "<p>Diskon %s: -%s</p>", html.EscapeString(first.DiscountCode), lib.FormatRupiah(first.DiscountAmount))
	}
	if first.BuyerMessage != "" {
		fmt.Fprintf(&extra, "<p>Catatan pembeli: %s</p>", html.EscapeString(first.BuyerMessage))
	}

	return fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				ul { list-style-type: none; padding: 0; }
				li { padding: 5px 0; border-bottom: 1px solid #eee; }
			</style>
		</head>
		<body>
			<h2>Pesanan baru: %s</h2>
			<ul>%s</ul>
			<p>Pembayaran: %s</p>
			%s
			<p>Kode unik: %d</p>
			<p><strong>Total: %s</strong></p>
		</body>
		</html>
	`, html.EscapeString(first.OrderCode), items.String(), html.EscapeString(first.PaymentMethod),
		extra.String(), first.UniqueCode, lib.FormatRupiah(first.TotalPrice))
}
