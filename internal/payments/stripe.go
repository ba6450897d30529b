// Package payments implements the confirmation lookup against the
// payment processor. The rest of the system only sees app.PaymentVerifier.
package payments

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"github.com/cartercs66-svg/qr-ticket/internal/app"
	"github.com/cartercs66-svg/qr-ticket/internal/domain"
)

// StripeVerifier confirms payment by retrieving the checkout session
// the customer was redirected from.
type StripeVerifier struct {
	api *client.API
}

func NewStripeVerifier(secretKey string) *StripeVerifier {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeVerifier{api: api}
}

func (v *StripeVerifier) Confirm(ctx context.Context, sessionRef string) (app.PaymentConfirmation, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := v.api.CheckoutSessions.Get(sessionRef, params)
	if err != nil {
		return app.PaymentConfirmation{}, fmt.Errorf("retrieve checkout session: %w", err)
	}
	if sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return app.PaymentConfirmation{}, domain.ErrPaymentNotCompleted
	}
	return app.PaymentConfirmation{
		Reference: sess.ID,
		Status:    string(sess.PaymentStatus),
	}, nil
}
