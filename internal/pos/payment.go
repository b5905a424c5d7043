package pos

import (
	"context"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"restaurant-pos/internal/database/models"
)

const qrServiceURL = "https://api.qrserver.com/v1/create-qr-code/?size=220x220&data="

// BuildPaymentRequest assembles the UPI deep link for amount and picks the
// QR image: the configured override when set, else a generated code image.
// The amount is left out of the link when it is not positive.
func BuildPaymentRequest(settings models.Settings, payee string, amount decimal.Decimal) models.PaymentRequest {
	link := "upi://pay?pa=" + url.QueryEscape(settings.UPIID) + "&pn=" + url.QueryEscape(payee)
	if amount.IsPositive() {
		link += "&am=" + amount.StringFixed(2) + "&cu=INR"
	}

	qr := qrServiceURL + url.QueryEscape(link)
	if settings.QRURLOverride != nil && strings.TrimSpace(*settings.QRURLOverride) != "" {
		qr = *settings.QRURLOverride
	}

	return models.PaymentRequest{
		UPIID:      settings.UPIID,
		PayeeName:  payee,
		Amount:     amount,
		DeepLink:   link,
		QRImageURL: qr,
	}
}

// PaymentRequest builds the request for the current cart total.
func (s *Service) PaymentRequest(ctx context.Context) models.PaymentRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.loadCart(ctx)
	amount := decimal.Zero
	if !cart.IsEmpty() {
		amount = cart.Total
	}
	return BuildPaymentRequest(s.loadSettings(ctx), s.opts.ShopName, amount)
}
