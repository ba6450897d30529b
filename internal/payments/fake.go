package payments

import (
	"context"
	"strings"

	"github.com/cartercs66-svg/qr-ticket/internal/app"
	"github.com/cartercs66-svg/qr-ticket/internal/domain"
)

// FakeVerifier stands in for the processor during local development.
// Every reference counts as paid unless it carries the unpaid_ prefix,
// which lets the payment-required path be exercised without a real
// checkout.
type FakeVerifier struct{}

func NewFakeVerifier() *FakeVerifier {
	return &FakeVerifier{}
}

func (v *FakeVerifier) Confirm(_ context.Context, sessionRef string) (app.PaymentConfirmation, error) {
	if strings.HasPrefix(sessionRef, "unpaid_") {
		return app.PaymentConfirmation{}, domain.ErrPaymentNotCompleted
	}
	return app.PaymentConfirmation{Reference: sessionRef, Status: "paid"}, nil
}
